package systemd

import (
	"context"

	"github.com/coreos/go-systemd/v22/dbus"
)

// Conn is the slice of the systemd D-Bus API the manager needs. Production
// code talks to the real system bus; tests substitute a stub.
type Conn interface {
	Close()
	ReloadContext(ctx context.Context) error
	StartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	StopUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	RestartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	EnableUnitFilesContext(ctx context.Context, files []string, runtime bool, force bool) (bool, []dbus.EnableUnitFileChange, error)
	DisableUnitFilesContext(ctx context.Context, files []string, runtime bool) ([]dbus.DisableUnitFileChange, error)
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]dbus.UnitStatus, error)
}

// ConnFactory creates a systemd D-Bus connection
type ConnFactory func(ctx context.Context) (Conn, error)

// NewDBusConn connects to the systemd manager on the system bus
func NewDBusConn(ctx context.Context) (Conn, error) {
	return dbus.NewWithContext(ctx)
}
