// Package config defines the settings shared by all lamp-warden modes and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the device driver commands, policy thresholds and
// the weekly on-time schedule.
package config
