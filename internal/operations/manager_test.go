package operations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/operations"
	"lteman/internal/reconciler"
	"lteman/internal/state"
	"lteman/internal/testutil"
)

type fixture struct {
	ops       *operations.Manager
	svc       *testutil.FakeServiceManager
	store     *state.Store
	resolver  *testutil.FakeResolver
	installer *testutil.FakeInstaller
	clock     *testutil.FakeClock
	cfg       *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.Attach.Timeout = 10 * time.Second
	cfg.Attach.Interval = 2 * time.Second

	f := &fixture{
		cfg:       cfg,
		svc:       testutil.NewFakeServiceManager(),
		store:     testutil.SetupTestStore(t),
		resolver:  &testutil.FakeResolver{Addr: "10.0.0.8", OK: true},
		installer: testutil.NewFakeInstaller(),
		clock:     testutil.NewFakeClock(time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.ops = operations.NewManager(cfg, f.store, reconciler.New(f.svc), f.installer, f.resolver)
	f.ops.SetClock(f.clock)
	return f
}

func (f *fixture) dispatch(t *testing.T, event operations.Event) {
	t.Helper()
	require.NoError(t, f.ops.Dispatch(context.Background(), operations.Trigger{Event: event}))
}

func (f *fixture) announceCore(t *testing.T, addr string) {
	t.Helper()
	require.NoError(t, f.ops.Dispatch(context.Background(), operations.Trigger{
		Event:   operations.EventCoreAddressChanged,
		Address: addr,
	}))
}

func TestInstallRunsFullPipeline(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, operations.EventInstall)

	assert.Equal(t, []string{"packages", "reset", "fetch", "build", "copy"}, f.installer.Steps)
	assert.Contains(t, f.svc.Units, constants.EnbService)
	assert.Contains(t, f.svc.Units, constants.UeService)
	assert.True(t, f.svc.Enabled[constants.EnbService])

	status, err := f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.False(t, status.Started)
}

func TestInstallWritesUnitsWithResolvedBindAddress(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, operations.EventInstall)

	enb := f.svc.Unit(constants.EnbService)
	assert.Contains(t, enb, "--enb.gtp_bind_addr=10.0.0.8")
	assert.Contains(t, enb, "--enb.s1c_bind_addr=10.0.0.8")
	// No core-network address yet.
	assert.NotContains(t, enb, "--enb.mme_addr")
}

func TestInstallHaltsOnFailedStep(t *testing.T) {
	f := newFixture(t)
	f.installer.Errs["fetch"] = assert.AnError

	err := f.ops.Dispatch(context.Background(), operations.Trigger{Event: operations.EventInstall})
	require.Error(t, err)
	assert.Equal(t, []string{"packages", "reset", "fetch"}, f.installer.Steps)
	assert.Empty(t, f.svc.Units)

	status, statusErr := f.ops.Status(context.Background())
	require.NoError(t, statusErr)
	assert.False(t, status.Installed)
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)

	f.dispatch(t, operations.EventStart)
	assert.True(t, f.svc.Active[constants.EnbService])

	status, err := f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Started)

	f.dispatch(t, operations.EventStop)
	assert.False(t, f.svc.Active[constants.EnbService])

	status, err = f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Started)
}

func TestConfigChangedDefersWithoutCoreAddress(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, operations.EventConfigChanged)

	// Nothing converged while the core-network address is unknown.
	assert.Empty(t, f.svc.Units)
	assert.Empty(t, f.svc.MutatingCalls())
}

func TestCoreAddressTriggersConvergence(t *testing.T) {
	f := newFixture(t)

	f.announceCore(t, "1.2.3.4")

	enb := f.svc.Unit(constants.EnbService)
	assert.Contains(t, enb, "--enb.mme_addr=1.2.3.4")
	// Inactive service is not restarted.
	assert.Zero(t, f.svc.Restarts[constants.EnbService])
}

func TestCoreAddressMalformedIgnored(t *testing.T) {
	f := newFixture(t)

	f.announceCore(t, "not-an-ip")
	f.announceCore(t, "2001:db8::1")

	assert.Empty(t, f.svc.Units)

	status, err := f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.CoreAddressKnown)
}

func TestCoreAddressChangeRestartsActiveService(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)
	f.announceCore(t, "1.2.3.4")
	f.dispatch(t, operations.EventStart)

	f.announceCore(t, "5.6.7.8")

	assert.Contains(t, f.svc.Unit(constants.EnbService), "--enb.mme_addr=5.6.7.8")
	assert.Equal(t, 1, f.svc.Restarts[constants.EnbService])
}

func TestUnchangedAddressSkipsRestart(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)
	f.announceCore(t, "1.2.3.4")
	f.dispatch(t, operations.EventStart)

	f.announceCore(t, "1.2.3.4")
	f.announceCore(t, "1.2.3.4")

	assert.Zero(t, f.svc.Restarts[constants.EnbService])
}

func TestRemoveTearsEverythingDown(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, operations.EventInstall)
	f.announceCore(t, "1.2.3.4")
	f.dispatch(t, operations.EventStart)

	f.dispatch(t, operations.EventRemove)

	assert.Empty(t, f.svc.Units)
	assert.False(t, f.svc.Active[constants.EnbService])
	// The environment reset runs once on install and once on remove.
	assert.Equal(t, []string{"packages", "reset", "fetch", "build", "copy", "reset"}, f.installer.Steps)

	status, err := f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Installed)
	assert.False(t, status.CoreAddressKnown)
	assert.Empty(t, status.Message)
}

func TestDispatchUnknownEvent(t *testing.T) {
	f := newFixture(t)

	err := f.ops.Dispatch(context.Background(), operations.Trigger{Event: operations.Event("bogus")})
	assert.Error(t, err)
}

func TestUpdateStatusEvent(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.ops.Dispatch(context.Background(), operations.Trigger{Event: operations.EventUpdateStatus}))
}

func TestStatusMessageComposition(t *testing.T) {
	f := newFixture(t)

	status, err := f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Message)

	f.dispatch(t, operations.EventInstall)
	status, err = f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SW installed.", status.Message)

	f.dispatch(t, operations.EventStart)
	status, err = f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SW installed. srsenb started. waiting for core-network address.", status.Message)

	f.announceCore(t, "1.2.3.4")
	status, err = f.ops.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SW installed. srsenb started. mme: 1.2.3.4.", status.Message)
}
