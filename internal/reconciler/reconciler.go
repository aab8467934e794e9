// Package reconciler converges observed OS service state with a desired
// ServiceSpec. It owns the one policy every trigger path shares: restart
// only if the service is already running.
package reconciler

import (
	"context"

	"lteman/internal/logger"
	"lteman/internal/systemd"
)

// ServiceManager is the slice of the systemd manager the reconciler drives
type ServiceManager interface {
	Create(ctx context.Context, spec systemd.ServiceSpec) (bool, error)
	Delete(ctx context.Context, name string) error
	Enable(ctx context.Context, name string) error
	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string) error
	Restart(ctx context.Context, name string) error
	IsActive(ctx context.Context, name string) bool
}

// ConvergeResult reports what a convergence pass did
type ConvergeResult struct {
	// Changed is true when the on-disk unit definition moved
	Changed bool
}

// Reconciler converges systemd units to desired service specs
type Reconciler struct {
	services ServiceManager
}

// New creates a reconciler over the given service manager
func New(services ServiceManager) *Reconciler {
	return &Reconciler{services: services}
}

// Converge renders spec and writes the unit definition, reloading the
// service manager. It never decides about (re)starts; that is the explicit
// policy in RestartIfActive. Converging an identical spec twice yields a
// byte-identical artifact.
func (r *Reconciler) Converge(ctx context.Context, spec systemd.ServiceSpec) (ConvergeResult, error) {
	changed, err := r.services.Create(ctx, spec)
	if err != nil {
		return ConvergeResult{}, err
	}
	return ConvergeResult{Changed: changed}, nil
}

// RestartIfActive restarts the named service only when it is currently
// active. A service that was never started stays untouched; its
// preconditions may never have been satisfied.
func (r *Reconciler) RestartIfActive(ctx context.Context, name string) error {
	if !r.services.IsActive(ctx, name) {
		logger.WithField("service", name).Debug("not active, restart skipped")
		return nil
	}
	return r.services.Restart(ctx, name)
}

// Enable enables the named service
func (r *Reconciler) Enable(ctx context.Context, name string) error {
	return r.services.Enable(ctx, name)
}

// Start starts the named service
func (r *Reconciler) Start(ctx context.Context, name string) error {
	return r.services.Start(ctx, name)
}

// Stop stops the named service
func (r *Reconciler) Stop(ctx context.Context, name string) error {
	return r.services.Stop(ctx, name)
}

// Restart restarts the named service unconditionally
func (r *Reconciler) Restart(ctx context.Context, name string) error {
	return r.services.Restart(ctx, name)
}

// Delete removes the named service; removing a nonexistent service is a
// no-op, not an error
func (r *Reconciler) Delete(ctx context.Context, name string) error {
	return r.services.Delete(ctx, name)
}

// IsActive reports whether the named service is running. Unknown services
// read as not running.
func (r *Reconciler) IsActive(ctx context.Context, name string) bool {
	return r.services.IsActive(ctx, name)
}
