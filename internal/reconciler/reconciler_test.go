package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/testutil"
)

func TestConvergeIdempotent(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	rec := New(svc)
	spec, _ := ComputeEnbSpec(config.Default(), Connectivity{MMEAddr: "1.2.3.4", BindAddr: "10.0.0.8"})

	result, err := rec.Converge(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	result, err = rec.Converge(context.Background(), spec)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestConvergeReportsSpecChange(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	rec := New(svc)
	cfg := config.Default()

	spec, _ := ComputeEnbSpec(cfg, Connectivity{MMEAddr: "1.2.3.4", BindAddr: "10.0.0.8"})
	_, err := rec.Converge(context.Background(), spec)
	require.NoError(t, err)

	spec, _ = ComputeEnbSpec(cfg, Connectivity{MMEAddr: "5.6.7.8", BindAddr: "10.0.0.8"})
	result, err := rec.Converge(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Contains(t, svc.Unit(constants.EnbService), "--enb.mme_addr=5.6.7.8")
}

func TestRestartIfActiveSkipsInactive(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	rec := New(svc)

	require.NoError(t, rec.RestartIfActive(context.Background(), constants.EnbService))
	require.NoError(t, rec.RestartIfActive(context.Background(), constants.EnbService))

	assert.Zero(t, svc.Restarts[constants.EnbService])
}

func TestRestartIfActiveRestartsActive(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	svc.Active[constants.EnbService] = true
	rec := New(svc)

	require.NoError(t, rec.RestartIfActive(context.Background(), constants.EnbService))

	assert.Equal(t, 1, svc.Restarts[constants.EnbService])
}

func TestStartStopReflectActivation(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	rec := New(svc)
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx, constants.EnbService))
	assert.True(t, rec.IsActive(ctx, constants.EnbService))

	require.NoError(t, rec.Stop(ctx, constants.EnbService))
	assert.False(t, rec.IsActive(ctx, constants.EnbService))
}

func TestDeleteUnknownService(t *testing.T) {
	svc := testutil.NewFakeServiceManager()
	rec := New(svc)

	assert.NoError(t, rec.Delete(context.Background(), "srsue"))
}
