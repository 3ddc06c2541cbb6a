// Package notifier implements the alert-notification mode invoked by the
// monitoring system: problem and custom alerts turn the device on (subject
// to the rest-time guard), recovery alerts turn it off unconditionally.
package notifier
