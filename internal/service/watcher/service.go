package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/device"
	"github.com/oshokin/lamp-warden/internal/diag"
	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/logger"
	"github.com/oshokin/lamp-warden/internal/repository/history"
	"github.com/oshokin/lamp-warden/internal/schedule"
	"github.com/oshokin/lamp-warden/internal/service/common"
)

// service encapsulates one watchdog pass over the device and its history.
// It is unexported to keep the CLI decoupled from the implementation.
type service struct {
	// cfg holds thresholds and file locations.
	cfg *config.Config
	// table is the parsed weekly admission schedule.
	table schedule.Table
	// device is the link to the physical switch.
	device device.Switcher
	// sink receives policy diagnostics.
	sink *diag.Sink
	// repo is the locked history store.
	repo *history.FileRepository
	// now supplies the clock, overridable in tests.
	now func() time.Time
}

// run performs the read-reconcile-decide-act-persist cycle.
// The watchdog only ever turns the device off; an off device stays off.
func (s *service) run(ctx context.Context) error {
	sess, err := common.Begin(ctx, s.repo)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	isOn, err := s.device.State(ctx)
	if err != nil {
		return fmt.Errorf("query device state: %w", err)
	}

	now := s.now()
	common.ReconcileManual(ctx, sess.Log, isOn, now, s.cfg.ManualOffset)

	if !isOn {
		logger.Debug(ctx, "Device is off, nothing to enforce")

		return sess.Commit(ctx)
	}

	reason := s.offReason(ctx, sess.Log, now)
	if reason == "" {
		logger.DebugKV(ctx, "Device may stay on", "device", s.cfg.Device.Name)

		return sess.Commit(ctx)
	}

	logger.InfoKV(ctx, "Switching device off", "device", s.cfg.Device.Name, "reason", reason)

	if err := s.device.Apply(ctx, false); err != nil {
		return fmt.Errorf("switch device off: %w", err)
	}

	sess.Log.Append(lamp.Entry{
		Timestamp: now.Unix(),
		IsOn:      false,
		Mode:      lamp.ModeWatch,
	})

	return sess.Commit(ctx)
}

// offReason returns a human-readable reason to force the device off, or ""
// when the device may stay on.
func (s *service) offReason(ctx context.Context, log *lamp.Log, now time.Time) string {
	if common.ForceOffActive(s.cfg.ForceOffMarker) {
		return "force-off signal present"
	}

	if !s.table.Allows(now) {
		return "outside allowed schedule"
	}

	if onFor, tooLong := log.OnTooLong(now, s.cfg.MaxOnTime, s.cfg.RestTime); tooLong {
		s.sink.Emit(
			ctx,
			"device %s accumulated %s of on-time within the last %s, limit is %s",
			s.cfg.Device.Name,
			onFor,
			s.cfg.MaxOnTime+s.cfg.RestTime,
			s.cfg.MaxOnTime,
		)

		return "cumulative on-time limit reached"
	}

	return ""
}
