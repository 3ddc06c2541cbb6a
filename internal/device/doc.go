// Package device abstracts the switchable device behind the Switcher
// interface and provides the command-line driver used in production plus a
// Fake for tests.
package device
