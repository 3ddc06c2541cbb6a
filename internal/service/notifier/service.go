package notifier

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
	"github.com/oshokin/lamp-warden/internal/service/common"
)

// service encapsulates one alert-notification pass.
// It is unexported to keep the CLI decoupled from the implementation.
type service struct {
	// cfg holds thresholds and file locations.
	cfg *config.Config
	// alert is the parsed alert classification.
	alert Alert
	// label is the optional annotation for the history entry.
	label string
	// device is the link to the physical switch.
	device device.Switcher
	// sink receives policy diagnostics.
	sink *diag.Sink
	// repo is the locked history store.
	repo *history.FileRepository
	// now supplies the clock, overridable in tests.
	now func() time.Time
}

// run performs the read-reconcile-decide-act-persist cycle for one alert.
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

	switch {
	case (s.alert == AlertProblem || s.alert == AlertCustom) && !isOn:
		if err := s.turnOn(ctx, sess, now); err != nil {
			return err
		}

	case s.alert == AlertRecovery && isOn:
		// Recovery always clears the device; the rest-time guard does not apply.
		logger.InfoKV(ctx, "Recovery alert, switching device off", "device", s.cfg.Device.Name, "label", s.label)

		if err := s.device.Apply(ctx, false); err != nil {
			return fmt.Errorf("switch device off: %w", err)
		}

		sess.Log.Append(lamp.Entry{
			Timestamp: now.Unix(),
			IsOn:      false,
			Mode:      lamp.ModeNotif,
			Label:     s.label,
		})

	default:
		logger.DebugKV(ctx, "Alert requires no action", "alert", s.alert, "device_on", isOn)
	}

	return sess.Commit(ctx)
}

// turnOn switches the device on unless the rest period since the last state
// change has not elapsed yet.
func (s *service) turnOn(ctx context.Context, sess *common.Session, now time.Time) error {
	if remaining := s.restRemaining(sess.Log, now); remaining > 0 {
		logger.InfoKV(
			ctx,
			"Rest period still active, leaving device off",
			"device", s.cfg.Device.Name,
			"remaining", remaining.String(),
		)
		s.sink.Emit(
			ctx,
			"device %s resting, %d seconds before it may turn on again",
			s.cfg.Device.Name,
			int64(remaining/time.Second),
		)

		return nil
	}

	logger.InfoKV(ctx, "Alert received, switching device on", "device", s.cfg.Device.Name, "label", s.label)

	if err := s.device.Apply(ctx, true); err != nil {
		return fmt.Errorf("switch device on: %w", err)
	}

	sess.Log.Append(lamp.Entry{
		Timestamp: now.Unix(),
		IsOn:      true,
		Mode:      lamp.ModeNotif,
		Label:     s.label,
	})

	return nil
}

// restRemaining returns how much of the rest period is left, or zero when
// the device may turn on: either there is no prior entry or the last state
// change is at least RestTime old.
func (s *service) restRemaining(log *lamp.Log, now time.Time) time.Duration {
	last, ok := log.Last()
	if !ok {
		return 0
	}

	elapsed := time.Duration(now.Unix()-last.Timestamp) * time.Second
	if elapsed >= s.cfg.RestTime {
		return 0
	}

	return s.cfg.RestTime - elapsed
}
