package systemd

import (
	"io"

	"github.com/coreos/go-systemd/v22/unit"
)

// ServiceSpec is the desired state of one managed service. Command must be
// the fully assembled invocation with every flag already substituted; an
// empty optional field means the corresponding unit directive is omitted.
type ServiceSpec struct {
	Name            string
	Command         string
	User            string
	Description     string
	PostStopCommand string
}

// Valid reports whether the spec can be rendered at all
func (s ServiceSpec) Valid() bool {
	return s.Name != "" && s.Command != ""
}

// UnitName returns the systemd unit file name for the spec
func (s ServiceSpec) UnitName() string {
	return s.Name + ".service"
}

// Render serializes the spec into a systemd unit file. Option order is
// fixed, so equal specs always produce byte-identical output.
func Render(spec ServiceSpec) ([]byte, error) {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", spec.Description),
		unit.NewUnitOption("Unit", "After", "network.target"),
		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "User", spec.User),
		unit.NewUnitOption("Service", "ExecStart", spec.Command),
		unit.NewUnitOption("Service", "Restart", "always"),
		unit.NewUnitOption("Service", "RestartSec", "10"),
	}
	if spec.PostStopCommand != "" {
		opts = append(opts, unit.NewUnitOption("Service", "ExecStopPost", spec.PostStopCommand))
	}
	opts = append(opts, unit.NewUnitOption("Install", "WantedBy", "multi-user.target"))

	return io.ReadAll(unit.Serialize(opts))
}
