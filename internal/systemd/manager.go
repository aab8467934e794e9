// Package systemd writes unit files and drives the systemd manager over
// D-Bus. It exposes the small set of idempotent primitives the reconciler
// composes into its convergence policy.
package systemd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/logger"
)

// Manager controls systemd units under a single unit directory
type Manager struct {
	unitDir string
	newConn ConnFactory
}

// NewManager returns a manager for /etc/systemd/system using the system bus
func NewManager() *Manager {
	return New(constants.SystemdUnitDir, NewDBusConn)
}

// New returns a manager with a custom unit directory and connection factory
func New(unitDir string, factory ConnFactory) *Manager {
	return &Manager{
		unitDir: unitDir,
		newConn: factory,
	}
}

func (m *Manager) unitPath(name string) string {
	return filepath.Join(m.unitDir, name+".service")
}

// Create renders the spec and writes the unit file, then daemon-reloads.
// Writing the same spec twice produces an identical on-disk artifact; the
// returned changed flag reports whether the file content actually moved.
func (m *Manager) Create(ctx context.Context, spec ServiceSpec) (bool, error) {
	if !spec.Valid() {
		return false, errors.ServiceRenderFailed(spec.Name, nil)
	}

	data, err := Render(spec)
	if err != nil {
		return false, errors.ServiceRenderFailed(spec.Name, err)
	}

	path := m.unitPath(spec.Name)
	existing, err := os.ReadFile(path)
	changed := err != nil || !bytes.Equal(existing, data)

	if changed {
		if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
			return false, errors.ServiceRenderFailed(spec.Name, err)
		}
	}

	if err := m.DaemonReload(ctx); err != nil {
		return changed, err
	}

	logger.WithFields(logger.Fields{"service": spec.Name, "changed": changed}).Debug("unit file converged")
	return changed, nil
}

// Delete removes the unit file and disables the unit. Deleting a service
// that was never created is a no-op.
func (m *Manager) Delete(ctx context.Context, name string) error {
	path := m.unitPath(name)
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.ServiceControlFailed(name, "delete", err)
		}
		return nil
	}

	conn, err := m.newConn(ctx)
	if err != nil {
		return errors.ServiceControlFailed(name, "delete", err)
	}
	defer conn.Close()

	if _, err := conn.DisableUnitFilesContext(ctx, []string{name + ".service"}, false); err != nil {
		// The unit file is already gone; a failed disable is not fatal.
		logger.WithField("service", name).Warnf("disable after delete failed: %v", err)
	}
	if err := conn.ReloadContext(ctx); err != nil {
		return errors.ServiceControlFailed(name, "daemon-reload", err)
	}

	logger.WithField("service", name).Info("service deleted")
	return nil
}

// DaemonReload reloads the systemd manager configuration
func (m *Manager) DaemonReload(ctx context.Context) error {
	conn, err := m.newConn(ctx)
	if err != nil {
		return errors.ServiceControlFailed("systemd", "daemon-reload", err)
	}
	defer conn.Close()

	if err := conn.ReloadContext(ctx); err != nil {
		return errors.ServiceControlFailed("systemd", "daemon-reload", err)
	}
	return nil
}

// Enable enables the unit so it starts on boot
func (m *Manager) Enable(ctx context.Context, name string) error {
	conn, err := m.newConn(ctx)
	if err != nil {
		return errors.ServiceControlFailed(name, "enable", err)
	}
	defer conn.Close()

	path := m.unitPath(name)
	if _, _, err := conn.EnableUnitFilesContext(ctx, []string{path}, false, true); err != nil {
		return errors.ServiceControlFailed(name, "enable", err)
	}

	logger.WithField("service", name).Info("service enabled")
	return nil
}

// Start starts the unit and waits for the job to finish
func (m *Manager) Start(ctx context.Context, name string) error {
	return m.job(ctx, name, "start")
}

// Stop stops the unit and waits for the job to finish
func (m *Manager) Stop(ctx context.Context, name string) error {
	return m.job(ctx, name, "stop")
}

// Restart restarts the unit and waits for the job to finish
func (m *Manager) Restart(ctx context.Context, name string) error {
	return m.job(ctx, name, "restart")
}

func (m *Manager) job(ctx context.Context, name, action string) error {
	conn, err := m.newConn(ctx)
	if err != nil {
		return errors.ServiceControlFailed(name, action, err)
	}
	defer conn.Close()

	unitName := name + ".service"
	ch := make(chan string, 1)

	switch action {
	case "start":
		_, err = conn.StartUnitContext(ctx, unitName, "replace", ch)
	case "stop":
		_, err = conn.StopUnitContext(ctx, unitName, "replace", ch)
	case "restart":
		_, err = conn.RestartUnitContext(ctx, unitName, "replace", ch)
	}
	if err != nil {
		return errors.ServiceControlFailed(name, action, err)
	}

	select {
	case status := <-ch:
		if status != "done" {
			return errors.ServiceControlFailed(name, action, nil).WithContext("job_status", status)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.WithFields(logger.Fields{"service": name, "action": action}).Info("service manager call completed")
	return nil
}

// IsActive reports whether the unit is currently active. Query failures and
// unknown units both read as not active.
func (m *Manager) IsActive(ctx context.Context, name string) bool {
	conn, err := m.newConn(ctx)
	if err != nil {
		return false
	}
	defer conn.Close()

	units, err := conn.ListUnitsByNamesContext(ctx, []string{name + ".service"})
	if err != nil {
		return false
	}
	for _, u := range units {
		if u.Name == name+".service" {
			return u.LoadState == "loaded" && u.ActiveState == "active"
		}
	}
	return false
}
