package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DeviceConfig describes the switchable device and the commands that drive it.
// The device name is appended as the final argument of every command line.
type DeviceConfig struct {
	// Name identifies the device to the on/off/state commands.
	Name string `yaml:"name"`
	// StateCommand prints the current device state (on/off) on stdout.
	StateCommand string `yaml:"state_command"`
	// OnCommand switches the device on.
	OnCommand string `yaml:"on_command"`
	// OffCommand switches the device off.
	OffCommand string `yaml:"off_command"`
}

// Config holds policy thresholds, file locations and the weekly schedule
// shared by all modes of the lamp-warden binary.
type Config struct {
	// Device is the switchable device and its driver commands.
	Device DeviceConfig `yaml:"device"`
	// HistoryFile is the path to the JSON file storing the state history.
	HistoryFile string `yaml:"history_file"`
	// LockFile guards the history file across concurrent invocations.
	// Defaults to HistoryFile + ".lock" when empty.
	LockFile string `yaml:"lock_file"`
	// ForceOffMarker is a path whose presence forces the device off in watch mode.
	ForceOffMarker string `yaml:"force_off_marker"`
	// DiagnosticLog is an optional append-only file for policy diagnostics.
	DiagnosticLog string `yaml:"diagnostic_log"`
	// MaxOnTime is the maximum cumulative on-duration tolerated by the watchdog.
	MaxOnTime time.Duration `yaml:"max_on_time"`
	// RestTime is the minimum off-duration before an alert may turn the device on.
	RestTime time.Duration `yaml:"rest_time"`
	// ManualOffset is how far in the past a manually induced state change
	// is assumed to have happened when it is first observed.
	ManualOffset time.Duration `yaml:"manual_offset"`
	// Schedule maps lowercase weekday names to "H:MM-H:MM" windows during
	// which the device is allowed to be on.
	Schedule map[string][]string `yaml:"schedule"`
}

const (
	// DefaultConfigFilename is the default filename for lamp-warden settings.
	DefaultConfigFilename = "lamp-warden-settings.yaml"

	// DefaultHistoryFilename is the default filename for the state history JSON.
	DefaultHistoryFilename = "lamp-warden-history.json"

	// DefaultMaxOnTime is the default cumulative on-duration limit.
	DefaultMaxOnTime = 3 * time.Hour

	// DefaultRestTime is the default required off-duration between alert activations.
	DefaultRestTime = 1 * time.Hour

	// DefaultManualOffset is the default back-dating offset for manual changes.
	DefaultManualOffset = 5 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errDeviceNameRequired is returned when the device name is missing.
	errDeviceNameRequired = errors.New("device name must be provided")
	// errDeviceCommandsRequired is returned when a device command line is missing.
	errDeviceCommandsRequired = errors.New("device state, on and off commands must be provided")
	// errNegativeDuration is returned when a policy threshold is negative.
	errNegativeDuration = errors.New("policy durations must not be negative")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Device.Name == "" {
		return errDeviceNameRequired
	}

	if cfg.Device.StateCommand == "" || cfg.Device.OnCommand == "" || cfg.Device.OffCommand == "" {
		return errDeviceCommandsRequired
	}

	if cfg.MaxOnTime < 0 || cfg.RestTime < 0 || cfg.ManualOffset < 0 {
		return errNegativeDuration
	}

	// Set default thresholds if not specified.
	if cfg.MaxOnTime == 0 {
		cfg.MaxOnTime = DefaultMaxOnTime
	}

	if cfg.RestTime == 0 {
		cfg.RestTime = DefaultRestTime
	}

	if cfg.ManualOffset == 0 {
		cfg.ManualOffset = DefaultManualOffset
	}

	// Set default history file if not specified.
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryFilename
	}

	if cfg.LockFile == "" {
		cfg.LockFile = cfg.HistoryFile + ".lock"
	}

	return nil
}
