// Package watcher implements the cron-driven watchdog mode: it forces the
// device off when the force-off signal is raised, the current time falls
// outside the weekly schedule, or the cumulative on-time limit is reached.
package watcher
