// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// Managed services
const (
	// EnbService is the systemd unit name of the eNodeB emulator
	EnbService = "srsenb"

	// UeService is the systemd unit name of the UE emulator
	UeService = "srsue"

	// ServiceUser is the OS user the emulator services run as
	ServiceUser = "root"

	// UeInterface is the tunnel interface srsue brings up once attached
	UeInterface = "tun_srsue"
)

// Source and build layout
const (
	// SourceRepoURL is the upstream emulator repository
	SourceRepoURL = "https://github.com/srsLTE/srsLTE.git"

	// SourceRepoReference is the pinned tag to build from
	SourceRepoReference = "release_20_10"

	// SourcePath is where the emulator source tree is cloned
	SourcePath = "/srsLTE"

	// BuildPath is the out-of-tree cmake build directory
	BuildPath = "/build"

	// ConfigPath holds the emulator runtime configuration files
	ConfigPath = "/config"

	// EnbBinary is the built eNodeB executable
	EnbBinary = BuildPath + "/srsenb/src/srsenb"

	// UeBinary is the built UE executable
	UeBinary = BuildPath + "/srsue/src/srsue"
)

// SystemdUnitDir is where rendered unit files are written
const SystemdUnitDir = "/etc/systemd/system"

// File System Permissions
const (
	// DirPermissions is the standard directory permissions for lteman directories
	DirPermissions = 0755

	// FilePermissions is the standard file permissions for rendered unit files
	FilePermissions = 0644
)

// Attach polling bounds
const (
	// DefaultAttachTimeout bounds the wait for the UE tunnel interface
	DefaultAttachTimeout = 60 * time.Second

	// DefaultAttachInterval is the poll interval while waiting for the interface
	DefaultAttachInterval = 2 * time.Second
)

// Database Configuration
const (
	// DefaultMaxOpenConnections is the default maximum number of database connections
	DefaultMaxOpenConnections = 5

	// DefaultMaxIdleConnections is the default maximum number of idle database connections
	DefaultMaxIdleConnections = 2

	// DefaultConnectionTimeout is the default database connection timeout
	DefaultConnectionTimeout = 5 * time.Minute
)

// HTTP Configuration
const (
	// DefaultServerPort is the default port for the lteman control API
	DefaultServerPort = 7787

	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second

	// DefaultServerWriteTimeout is the default server write timeout
	DefaultServerWriteTimeout = 10 * time.Second

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 30 * time.Second
)

// AptPackages are the build dependencies installed before the source build.
var AptPackages = []string{
	"git",
	"libzmq3-dev",
	"cmake",
	"build-essential",
	"libmbedtls-dev",
	"libboost-program-options-dev",
	"libsctp-dev",
	"libconfig++-dev",
	"libfftw3-dev",
	"net-tools",
}

// EmulatorConfigFiles maps a config key to its example file in the source
// tree and its runtime destination. Copied verbatim after the build.
var EmulatorConfigFiles = map[string]struct{ Origin, Dest string }{
	"enb":       {SourcePath + "/srsenb/enb.conf.example", ConfigPath + "/enb.conf"},
	"drb":       {SourcePath + "/srsenb/drb.conf.example", ConfigPath + "/drb.conf"},
	"rr":        {SourcePath + "/srsenb/rr.conf.example", ConfigPath + "/rr.conf"},
	"sib":       {SourcePath + "/srsenb/sib.conf.example", ConfigPath + "/sib.conf"},
	"sib.mbsfn": {SourcePath + "/srsenb/sib.conf.mbsfn.example", ConfigPath + "/sib.mbsfn.conf"},
	"ue":        {SourcePath + "/srsue/ue.conf.example", ConfigPath + "/ue.conf"},
}
