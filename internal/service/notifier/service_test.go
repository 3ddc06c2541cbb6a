package notifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/device"
	"github.com/oshokin/lamp-warden/internal/diag"
	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// newTestService wires a notifier service around a fake device and a
// temporary history store.
func newTestService(t *testing.T, fake *device.Fake, alert Alert, clock time.Time) (*service, string) {
	t.Helper()

	dir := t.TempDir()
	historyFile := filepath.Join(dir, "history.json")

	cfg := &config.Config{
		Device: config.DeviceConfig{
			Name:         "desk-lamp",
			StateCommand: "true",
			OnCommand:    "true",
			OffCommand:   "true",
		},
		HistoryFile:   historyFile,
		DiagnosticLog: filepath.Join(dir, "diag.log"),
		MaxOnTime:     2 * time.Hour,
		RestTime:      time.Hour,
		ManualOffset:  5 * time.Minute,
	}
	require.NoError(t, config.Validate(cfg))

	return &service{
		cfg:    cfg,
		alert:  alert,
		label:  "alert-42",
		device: fake,
		sink:   diag.NewSink(cfg.DiagnosticLog, "test"),
		repo:   history.NewFileRepository(cfg.HistoryFile, cfg.LockFile),
		now:    func() time.Time { return clock },
	}, historyFile
}

// seedOff persists a single off-entry at the given timestamp.
func seedOff(t *testing.T, historyFile string, ts int64) {
	t.Helper()

	repo := history.NewFileRepository(historyFile, historyFile+".seed")
	require.NoError(t, repo.Persist(context.Background(), &lamp.Log{Entries: []lamp.Entry{
		{Timestamp: ts, IsOn: false, Mode: lamp.ModeWatch},
	}}))
}

// loadHistory reads the persisted log back for assertions.
func loadHistory(t *testing.T, path string) *lamp.Log {
	t.Helper()

	log, err := history.NewFileRepository(path, path+".check").Load(context.Background())
	require.NoError(t, err)

	return log
}

// TestParseAlert covers the closed, case-insensitive alert set.
func TestParseAlert(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Alert{
		"problem":    AlertProblem,
		"PROBLEM":    AlertProblem,
		"Custom":     AlertCustom,
		"recovery":   AlertRecovery,
		" Recovery ": AlertRecovery,
	} {
		got, err := ParseAlert(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseAlert("disaster")
	require.Error(t, err)

	_, err = ParseAlert("")
	require.Error(t, err)
}

// TestNotifierRestGateBoundary pins the rest-time threshold: one second
// early stays off, exactly RestTime later turns on.
func TestNotifierRestGateBoundary(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(1_700_000_000, 0)

	// One second before the rest period elapses: no activation.
	fake := &device.Fake{On: false}
	svc, historyFile := newTestService(t, fake, AlertProblem, t0.Add(3599*time.Second))
	seedOff(t, historyFile, t0.Unix())

	require.NoError(t, svc.run(context.Background()))
	require.Empty(t, fake.Applied)
	require.Equal(t, 1, loadHistory(t, historyFile).Len())

	diagContents, err := os.ReadFile(svc.cfg.DiagnosticLog)
	require.NoError(t, err)
	require.Contains(t, string(diagContents), "1 seconds before it may turn on")

	// Exactly at the boundary: activation.
	fake = &device.Fake{On: false}
	svc, historyFile = newTestService(t, fake, AlertProblem, t0.Add(3600*time.Second))
	seedOff(t, historyFile, t0.Unix())

	require.NoError(t, svc.run(context.Background()))
	require.Equal(t, []bool{true}, fake.Applied)

	entry, ok := loadHistory(t, historyFile).Last()
	require.True(t, ok)
	require.True(t, entry.IsOn)
	require.Equal(t, lamp.ModeNotif, entry.Mode)
	require.Equal(t, "alert-42", entry.Label)
}

// TestNotifierEmptyHistoryTurnsOn verifies a problem alert with no prior
// entries activates the device immediately.
func TestNotifierEmptyHistoryTurnsOn(t *testing.T) {
	t.Parallel()

	fake := &device.Fake{On: false}
	svc, historyFile := newTestService(t, fake, AlertCustom, time.Unix(1_700_000_000, 0))

	require.NoError(t, svc.run(context.Background()))
	require.Equal(t, []bool{true}, fake.Applied)
	require.Equal(t, 1, loadHistory(t, historyFile).Len())
}

// TestNotifierRecoveryOverridesRest verifies recovery turns the device off
// no matter how recently it was turned on.
func TestNotifierRecoveryOverridesRest(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	fake := &device.Fake{On: true}
	svc, historyFile := newTestService(t, fake, AlertRecovery, now)

	// Turned on ten seconds ago, well inside any rest window.
	repo := history.NewFileRepository(historyFile, historyFile+".seed")
	require.NoError(t, repo.Persist(context.Background(), &lamp.Log{Entries: []lamp.Entry{
		{Timestamp: now.Unix() - 10, IsOn: true, Mode: lamp.ModeNotif},
	}}))

	require.NoError(t, svc.run(context.Background()))
	require.Equal(t, []bool{false}, fake.Applied)

	entry, _ := loadHistory(t, historyFile).Last()
	require.False(t, entry.IsOn)
	require.Equal(t, lamp.ModeNotif, entry.Mode)
	require.Equal(t, "alert-42", entry.Label)
}

// TestNotifierNoopCombinations checks problem+on and recovery+off change
// nothing and append nothing.
func TestNotifierNoopCombinations(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	// Problem while already on.
	fake := &device.Fake{On: true}
	svc, historyFile := newTestService(t, fake, AlertProblem, now)

	repo := history.NewFileRepository(historyFile, historyFile+".seed")
	require.NoError(t, repo.Persist(context.Background(), &lamp.Log{Entries: []lamp.Entry{
		{Timestamp: now.Unix() - 10, IsOn: true, Mode: lamp.ModeNotif},
	}}))

	require.NoError(t, svc.run(context.Background()))
	require.Empty(t, fake.Applied)
	require.Equal(t, 1, loadHistory(t, historyFile).Len())

	// Recovery while already off.
	fake = &device.Fake{On: false}
	svc, historyFile = newTestService(t, fake, AlertRecovery, now)
	seedOff(t, historyFile, now.Unix()-10)

	require.NoError(t, svc.run(context.Background()))
	require.Empty(t, fake.Applied)
	require.Equal(t, 1, loadHistory(t, historyFile).Len())
}

// TestNotifierDeviceErrorKeepsStore verifies a failed on command persists
// nothing, including the in-memory reconciliation entry.
func TestNotifierDeviceErrorKeepsStore(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	fake := &device.Fake{On: false, ApplyErr: errors.New("transmitter busy")}
	svc, historyFile := newTestService(t, fake, AlertProblem, now)

	// Short rest so the back-dated reconciliation entry does not gate the
	// activation attempt.
	svc.cfg.RestTime = time.Minute

	// Record says on, observed off: reconciliation will append in memory.
	repo := history.NewFileRepository(historyFile, historyFile+".seed")
	require.NoError(t, repo.Persist(context.Background(), &lamp.Log{Entries: []lamp.Entry{
		{Timestamp: now.Unix() - 7200, IsOn: true, Mode: lamp.ModeNotif},
	}}))

	before, err := os.ReadFile(historyFile)
	require.NoError(t, err)

	require.Error(t, svc.run(context.Background()))

	after, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
