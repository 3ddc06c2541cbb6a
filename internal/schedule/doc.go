// Package schedule implements the weekly admission table: per-weekday
// time-of-day windows during which the device is allowed to be on.
//
// Windows are same-day intervals, inclusive at both ends, evaluated against
// the host's local clock.
package schedule
