package operations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/operations"
)

func attachedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)
	f.announceCore(t, "1.2.3.4")
	f.dispatch(t, operations.EventStart)
	f.resolver.IfaceAddrs = map[string]string{constants.UeInterface: "172.16.0.2"}
	return f
}

func TestAttachRequiresFullTriplet(t *testing.T) {
	f := newFixture(t)

	_, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrPreconditionNotMet))
	assert.Empty(t, f.svc.MutatingCalls())
}

func TestAttachRequiresRunningEnb(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)

	_, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrPreconditionNotMet))

	// Credentials from a rejected attach are never persisted.
	facts, loadErr := f.store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.False(t, facts.Credentials())
	assert.Zero(t, f.svc.Restarts[constants.UeService])
}

func TestAttachSuccess(t *testing.T) {
	f := attachedFixture(t)

	result, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "172.16.0.2", result.IP)

	ue := f.svc.Unit(constants.UeService)
	assert.Contains(t, ue, "--usim.imsi=001010123456789")
	assert.Contains(t, ue, "--usim.k=secret")
	assert.Contains(t, ue, "--usim.opc=opcval")
	assert.Equal(t, 1, f.svc.Restarts[constants.UeService])

	facts, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, facts.UeAttached)
	assert.True(t, facts.Credentials())
}

func TestAttachPollsUntilInterfaceAppears(t *testing.T) {
	f := attachedFixture(t)
	f.resolver.IfaceAfter = 3

	result, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.2", result.IP)
	assert.Len(t, f.clock.Sleeps, 3)
}

func TestAttachTimeout(t *testing.T) {
	f := attachedFixture(t)
	f.resolver.IfaceAddrs = nil

	_, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAttachTimeout))
	// 10s budget at a 2s interval.
	assert.Len(t, f.clock.Sleeps, 5)

	facts, loadErr := f.store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.False(t, facts.UeAttached)
}

func TestAttachRejectedWhileAttached(t *testing.T) {
	f := attachedFixture(t)

	_, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.NoError(t, err)

	_, err = f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrPreconditionNotMet))
	assert.Equal(t, 1, f.svc.Restarts[constants.UeService])
}

func TestDetachIsIdempotent(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		result, err := f.ops.DetachUE(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", result.Status)
	}
}

func TestDetachClearsAttachment(t *testing.T) {
	f := attachedFixture(t)

	_, err := f.ops.AttachUE(context.Background(), "001010123456789", "secret", "opcval")
	require.NoError(t, err)

	result, err := f.ops.DetachUE(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.False(t, f.svc.Active[constants.UeService])

	// The converged unit carries no subscriber identity anymore.
	assert.NotContains(t, f.svc.Unit(constants.UeService), "--usim.imsi")

	facts, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, facts.UeAttached)
	assert.False(t, facts.Credentials())
}

func TestRemoveDefaultGWAlwaysSucceeds(t *testing.T) {
	f := newFixture(t)

	result, err := f.ops.RemoveDefaultGW(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.True(t, f.resolver.RouteRemoved)

	f.resolver.RouteErr = assert.AnError
	result, err = f.ops.RemoveDefaultGW(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
}
