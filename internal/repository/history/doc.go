// Package history implements persistence for the state-change Log.
//
// The FileRepository stores the log as JSON on disk, guarded by a blocking
// exclusive advisory lock so concurrent invocations serialize their whole
// read-decide-append-write cycle, and replaced atomically on persist.
package history
