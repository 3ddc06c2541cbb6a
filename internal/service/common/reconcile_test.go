package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
)

// TestReconcileManualNoop covers the empty log and matching state cases.
func TestReconcileManualNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(10_000, 0)

	var empty lamp.Log
	require.False(t, ReconcileManual(ctx, &empty, true, now, time.Minute))
	require.Zero(t, empty.Len())

	matching := lamp.Log{Entries: []lamp.Entry{
		{Timestamp: 9_000, IsOn: true, Mode: lamp.ModeNotif},
	}}
	require.False(t, ReconcileManual(ctx, &matching, true, now, time.Minute))
	require.Equal(t, 1, matching.Len())
}

// TestReconcileManualAppends verifies a mismatch synthesizes a manual entry
// whose timestamp is strictly after the previous entry and not in the future.
func TestReconcileManualAppends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(10_000, 0)

	l := lamp.Log{Entries: []lamp.Entry{
		{Timestamp: 9_990, IsOn: true, Mode: lamp.ModeNotif},
	}}

	require.True(t, ReconcileManual(ctx, &l, false, now, 5*time.Minute))
	require.Equal(t, 2, l.Len())

	entry, ok := l.Last()
	require.True(t, ok)
	require.False(t, entry.IsOn)
	require.Equal(t, lamp.ModeManual, entry.Mode)
	require.Greater(t, entry.Timestamp, int64(9_990))
	require.LessOrEqual(t, entry.Timestamp, now.Unix())
}

// TestReconcileManualBackdatesByOffset checks the plain now-offset estimate
// when the previous entry is old enough.
func TestReconcileManualBackdatesByOffset(t *testing.T) {
	t.Parallel()

	now := time.Unix(10_000, 0)

	l := lamp.Log{Entries: []lamp.Entry{
		{Timestamp: 1_000, IsOn: false, Mode: lamp.ModeWatch},
	}}

	require.True(t, ReconcileManual(context.Background(), &l, true, now, 5*time.Minute))

	entry, _ := l.Last()
	require.Equal(t, now.Unix()-300, entry.Timestamp)
}
