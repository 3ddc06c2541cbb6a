// Package diag provides the append-only, best-effort diagnostic sink used
// to record policy outcomes (guard fired, rest period pending) outside the
// structured log stream.
package diag
