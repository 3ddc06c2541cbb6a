// Package lamp contains core domain types for the lamp policy logic.
//
// It defines Entry (one recorded state change), Mode (what produced it) and
// Log (the append-only history), plus the pure policy calculations: the
// cumulative on-duration guard and the manual-change timestamp estimate.
package lamp
