package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// TestSessionCommitPersists verifies the lock-load-append-commit cycle
// writes the appended entry to disk.
func TestSessionCommitPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "history.json")
	repo := history.NewFileRepository(file, "")

	sess, err := Begin(ctx, repo)
	require.NoError(t, err)

	sess.Log.Append(lamp.Entry{Timestamp: 42, IsOn: true, Mode: lamp.ModeNotif})
	require.NoError(t, sess.Commit(ctx))

	reloaded, err := history.NewFileRepository(file, "").Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
}

// TestSessionCloseDiscardsChanges verifies that abandoning a session leaves
// the store exactly as it was before the invocation began.
func TestSessionCloseDiscardsChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "history.json")
	repo := history.NewFileRepository(file, "")

	// Seed one entry.
	seed, err := Begin(ctx, repo)
	require.NoError(t, err)
	seed.Log.Append(lamp.Entry{Timestamp: 42, IsOn: true, Mode: lamp.ModeNotif})
	require.NoError(t, seed.Commit(ctx))

	before, err := os.ReadFile(file)
	require.NoError(t, err)

	// Simulated abort: append in memory, then bail without committing.
	sess, err := Begin(ctx, repo)
	require.NoError(t, err)
	sess.Log.Append(lamp.Entry{Timestamp: 43, IsOn: false, Mode: lamp.ModeWatch})
	sess.Close(ctx)

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, before, after)

	// The lock is free again.
	next, err := Begin(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, 1, next.Log.Len())
	next.Close(ctx)
}

// TestSessionCloseAfterCommitIsNoop ensures the usual defer pattern does not
// double-release.
func TestSessionCloseAfterCommitIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := history.NewFileRepository(filepath.Join(t.TempDir(), "history.json"), "")

	sess, err := Begin(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, sess.Commit(ctx))
	sess.Close(ctx)
}

// TestForceOffActive checks the marker file probe.
func TestForceOffActive(t *testing.T) {
	t.Parallel()

	require.False(t, ForceOffActive(""))

	marker := filepath.Join(t.TempDir(), "force-off")
	require.False(t, ForceOffActive(marker))

	require.NoError(t, os.WriteFile(marker, nil, 0o600))
	require.True(t, ForceOffActive(marker))
}
