package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lteman/internal/state"
	"lteman/internal/testutil"
)

func TestSetGetDelete(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, state.KeyMMEAddr)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, state.KeyMMEAddr, "1.2.3.4"))

	value, ok, err := store.Get(ctx, state.KeyMMEAddr)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.2.3.4", value)

	require.NoError(t, store.Delete(ctx, state.KeyMMEAddr))
	_, ok, err = store.Get(ctx, state.KeyMMEAddr)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, state.KeyMMEAddr, "1.2.3.4"))
	require.NoError(t, store.Set(ctx, state.KeyMMEAddr, "5.6.7.8"))

	value, _, err := store.Get(ctx, state.KeyMMEAddr)
	require.NoError(t, err)
	assert.Equal(t, "5.6.7.8", value)
}

func TestDeleteMissingKey(t *testing.T) {
	store := testutil.SetupTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), "never-set"))
}

func TestBoolFacts(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	installed, err := store.GetBool(ctx, state.KeyInstalled)
	require.NoError(t, err)
	assert.False(t, installed)

	require.NoError(t, store.SetBool(ctx, state.KeyInstalled, true))
	installed, err = store.GetBool(ctx, state.KeyInstalled)
	require.NoError(t, err)
	assert.True(t, installed)

	// Garbage values read as false rather than failing.
	require.NoError(t, store.Set(ctx, state.KeyInstalled, "garbage"))
	installed, err = store.GetBool(ctx, state.KeyInstalled)
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestCredentials(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	facts, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, facts.Credentials())

	require.NoError(t, store.SetCredentials(ctx, "001010123456789", "secret", "opcval"))
	facts, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, facts.Credentials())
	assert.Equal(t, "001010123456789", facts.UsimIMSI)
	assert.Equal(t, "secret", facts.UsimK)
	assert.Equal(t, "opcval", facts.UsimOPC)

	require.NoError(t, store.ClearCredentials(ctx))
	facts, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, facts.Credentials())
	assert.Empty(t, facts.UsimIMSI)
}

func TestLoadSnapshot(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, state.KeyMMEAddr, "1.2.3.4"))
	require.NoError(t, store.Set(ctx, state.KeyBindAddr, "10.0.0.8"))
	require.NoError(t, store.SetBool(ctx, state.KeyInstalled, true))
	require.NoError(t, store.SetBool(ctx, state.KeyStarted, true))

	facts, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", facts.MMEAddr)
	assert.Equal(t, "10.0.0.8", facts.BindAddr)
	assert.True(t, facts.Installed)
	assert.True(t, facts.Started)
	assert.False(t, facts.UeAttached)
}

func TestReset(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, state.KeyMMEAddr, "1.2.3.4"))
	require.NoError(t, store.SetBool(ctx, state.KeyInstalled, true))

	require.NoError(t, store.Reset(ctx))

	facts, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Facts{}, facts)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testutil.SetupTestStore(t)
	assert.NoError(t, store.Migrate())
}

func TestHealthCheck(t *testing.T) {
	store := testutil.SetupTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}
