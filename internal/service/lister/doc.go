// Package lister implements the read-only listing mode: it renders the
// recorded state history without touching the device or the log.
package lister
