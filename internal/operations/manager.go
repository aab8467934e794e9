// Package operations implements the lifecycle handlers and operator
// actions. Each handler derives desired state from the configuration and
// persisted facts, then asks the reconciler to converge.
package operations

import (
	"context"
	"sync"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/logger"
	"lteman/internal/netif"
	"lteman/internal/reconciler"
	"lteman/internal/state"
)

// Installer is the install pipeline the install/remove handlers drive
type Installer interface {
	InstallPackages(ctx context.Context) error
	ResetEnvironment() error
	Fetch(ctx context.Context) error
	Build(ctx context.Context) error
	CopyConfigFiles() error
}

// AddressResolver resolves bind addresses and manipulates routes
type AddressResolver interface {
	Resolve(override, bindSubnet string) (string, bool)
	InterfaceAddr(name string) (string, error)
	RemoveDefaultGateway() error
}

// Manager owns every lifecycle handler and action
type Manager struct {
	cfg       *config.Config
	store     *state.Store
	rec       *reconciler.Reconciler
	installer Installer
	resolver  AddressResolver
	clock     Clock
	mu        sync.Mutex
}

// NewManager wires the operations manager
func NewManager(cfg *config.Config, store *state.Store, rec *reconciler.Reconciler, installer Installer, resolver AddressResolver) *Manager {
	return &Manager{
		cfg:       cfg,
		store:     store,
		rec:       rec,
		installer: installer,
		resolver:  resolver,
		clock:     WallClock{},
	}
}

// SetClock overrides the clock used for the attach wait
func (m *Manager) SetClock(clock Clock) {
	m.clock = clock
}

// install runs the full install pipeline and writes the initial unit
// definitions. Any step failing halts the pass; the next trigger retries
// from current host state.
func (m *Manager) install(ctx context.Context) error {
	if err := m.installer.InstallPackages(ctx); err != nil {
		return err
	}
	if err := m.installer.ResetEnvironment(); err != nil {
		return err
	}
	if err := m.installer.Fetch(ctx); err != nil {
		return err
	}
	if err := m.installer.Build(ctx); err != nil {
		return err
	}
	if err := m.installer.CopyConfigFiles(); err != nil {
		return err
	}

	facts, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	bindAddr := m.resolveBindAddr(ctx, facts)
	if bindAddr != facts.BindAddr {
		if err := m.store.Set(ctx, state.KeyBindAddr, bindAddr); err != nil {
			return err
		}
	}

	// Initial unit definitions. The eNodeB spec may not be ready yet (no
	// core-network address); the unit is still written so enable/start
	// have something to act on, matching delete-then-create semantics.
	enbSpec, _ := reconciler.ComputeEnbSpec(m.cfg, reconciler.Connectivity{
		MMEAddr:  facts.MMEAddr,
		BindAddr: bindAddr,
	})
	if _, err := m.rec.Converge(ctx, enbSpec); err != nil {
		return err
	}
	if _, err := m.rec.Converge(ctx, reconciler.ComputeUeSpec(m.cfg, reconciler.Credentials{})); err != nil {
		return err
	}

	if err := m.rec.Enable(ctx, constants.EnbService); err != nil {
		return err
	}
	if err := m.store.SetBool(ctx, state.KeyInstalled, true); err != nil {
		return err
	}

	logger.Info("install complete")
	return nil
}

// start brings up the eNodeB service
func (m *Manager) start(ctx context.Context) error {
	if err := m.rec.Start(ctx, constants.EnbService); err != nil {
		return err
	}
	return m.store.SetBool(ctx, state.KeyStarted, true)
}

// stop brings down the eNodeB service
func (m *Manager) stop(ctx context.Context) error {
	if err := m.rec.Stop(ctx, constants.EnbService); err != nil {
		return err
	}
	return m.store.SetBool(ctx, state.KeyStarted, false)
}

// configChanged re-resolves the bind address and reconciles the eNodeB
func (m *Manager) configChanged(ctx context.Context) error {
	facts, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	bindAddr := m.resolveBindAddr(ctx, facts)
	if bindAddr != facts.BindAddr {
		if err := m.store.Set(ctx, state.KeyBindAddr, bindAddr); err != nil {
			return err
		}
		facts.BindAddr = bindAddr
	}

	return m.reconcileEnb(ctx, facts)
}

// coreAddressChanged records a newly announced core-network address and
// reconciles the eNodeB. A malformed address is ignored, matching the
// relation semantics: partial peer data is not an error.
func (m *Manager) coreAddressChanged(ctx context.Context, addr string) error {
	if !netif.IsIPv4(addr) {
		logger.WithField("address", addr).Warn("ignoring malformed core-network address")
		return nil
	}
	if err := m.store.Set(ctx, state.KeyMMEAddr, addr); err != nil {
		return err
	}

	facts, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	return m.reconcileEnb(ctx, facts)
}

// remove tears everything down and clears persisted facts
func (m *Manager) remove(ctx context.Context) error {
	for _, name := range []string{constants.UeService, constants.EnbService} {
		if m.rec.IsActive(ctx, name) {
			if err := m.rec.Stop(ctx, name); err != nil {
				return err
			}
		}
		if err := m.rec.Delete(ctx, name); err != nil {
			return err
		}
	}
	if err := m.installer.ResetEnvironment(); err != nil {
		return err
	}
	return m.store.Reset(ctx)
}

// reconcileEnb converges the eNodeB unit and restarts it if it is already
// running. While the core-network address is unknown the pass blocks:
// nothing is converged and the status reads as waiting, rather than
// restarting the service into a known-bad configuration.
func (m *Manager) reconcileEnb(ctx context.Context, facts state.Facts) error {
	spec, ready := reconciler.ComputeEnbSpec(m.cfg, reconciler.Connectivity{
		MMEAddr:  facts.MMEAddr,
		BindAddr: facts.BindAddr,
	})
	if !ready {
		logger.Info("core-network address unknown, convergence deferred")
		return nil
	}

	result, err := m.rec.Converge(ctx, spec)
	if err != nil {
		return err
	}
	if !result.Changed {
		logger.Debug("unit definition unchanged, restart skipped")
		return nil
	}
	return m.rec.RestartIfActive(ctx, constants.EnbService)
}

func (m *Manager) resolveBindAddr(ctx context.Context, facts state.Facts) string {
	addr, ok := m.resolver.Resolve(m.cfg.Network.BindAddress, m.cfg.Network.BindSubnet)
	if !ok {
		// Keep whatever we had; "could not resolve" is not fatal here.
		return facts.BindAddr
	}
	return addr
}
