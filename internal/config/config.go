// Package config loads and validates the lteman configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/xdg"
)

// Config represents the lteman configuration
type Config struct {
	Enb     EnbConfig     `toml:"enb"`
	Ue      UeConfig      `toml:"ue"`
	Network NetworkConfig `toml:"network"`
	Source  SourceConfig  `toml:"source"`
	Attach  AttachConfig  `toml:"attach"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// EnbConfig holds the eNodeB identity and radio front-end parameters
type EnbConfig struct {
	Name         string `toml:"name"`
	MCC          string `toml:"mcc"`
	MNC          string `toml:"mnc"`
	RFDeviceName string `toml:"rf_device_name"`
	RFDeviceArgs string `toml:"rf_device_args"`
}

// UeConfig holds the UE emulator parameters that are not per-attach
type UeConfig struct {
	UsimAlgo   string `toml:"usim_algo"`
	NasAPN     string `toml:"nas_apn"`
	DeviceName string `toml:"device_name"`
	DeviceArgs string `toml:"device_args"`
}

// NetworkConfig controls local bind address resolution
type NetworkConfig struct {
	BindAddress string `toml:"bind_address"` // explicit override, used verbatim
	BindSubnet  string `toml:"bind_subnet"`  // pick the first local address in this subnet
}

// SourceConfig pins the emulator source to fetch and build
type SourceConfig struct {
	RepoURL   string `toml:"repo_url"`
	Reference string `toml:"reference"`
	Depth     int    `toml:"depth"`
}

// AttachConfig bounds the wait for the UE tunnel interface
type AttachConfig struct {
	Timeout  time.Duration `toml:"timeout"`
	Interval time.Duration `toml:"interval"`
}

// ServerConfig configures the control API
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Enb: EnbConfig{
			Name:         "dummyENB01",
			MCC:          "901",
			MNC:          "70",
			RFDeviceName: "zmq",
			RFDeviceArgs: "fail_on_disconnect=true,id=enb,base_srate=23.04e6,tx_port=tcp://*:2000,rx_port=tcp://localhost:2001",
		},
		Ue: UeConfig{
			UsimAlgo:   "milenage",
			NasAPN:     "default",
			DeviceName: "zmq",
			DeviceArgs: "tx_port=tcp://*:2001,rx_port=tcp://localhost:2000,id=ue,base_srate=23.04e6",
		},
		Source: SourceConfig{
			RepoURL:   constants.SourceRepoURL,
			Reference: constants.SourceRepoReference,
			Depth:     1,
		},
		Attach: AttachConfig{
			Timeout:  constants.DefaultAttachTimeout,
			Interval: constants.DefaultAttachInterval,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: constants.DefaultServerPort,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the XDG-compliant configuration file path
func DefaultPath() (string, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the configuration from path. A missing file is not an error:
// defaults are returned so a fresh host works without any setup.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigParseError(err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigParseError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.ConfigParseError(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, data, constants.FilePermissions)
}

// Validate checks the configuration for obviously broken values
func (c *Config) Validate() error {
	if c.Enb.Name == "" {
		return errors.ConfigValidationError("enb.name", "must not be empty")
	}
	if c.Enb.MCC == "" || c.Enb.MNC == "" {
		return errors.ConfigValidationError("enb.mcc/enb.mnc", "must not be empty")
	}
	if c.Source.RepoURL == "" {
		return errors.ConfigValidationError("source.repo_url", "must not be empty")
	}
	if c.Source.Depth < 0 {
		return errors.ConfigValidationError("source.depth", "must not be negative")
	}
	if c.Attach.Timeout <= 0 {
		c.Attach.Timeout = constants.DefaultAttachTimeout
	}
	if c.Attach.Interval <= 0 {
		c.Attach.Interval = constants.DefaultAttachInterval
	}
	if c.Server.Port == 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	return nil
}
