// Package common holds helpers shared by the mode services.
//
// It provides the locked history Session spanning one invocation, the
// manual-change reconciler and the force-off marker probe.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
