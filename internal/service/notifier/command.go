package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/device"
	"github.com/oshokin/lamp-warden/internal/diag"
	"github.com/oshokin/lamp-warden/internal/logger"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// Options configures one alert-notification invocation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DeviceName overrides the device name from config when specified.
	DeviceName string
	// AlertType is the raw alert classification (problem, custom, recovery).
	AlertType string
	// Label is an optional annotation stored with the history entry,
	// typically the external alert identifier.
	Label string
}

// Run reacts to one external alert: problem and custom alerts turn the
// device on once the rest period has elapsed, recovery turns it off
// unconditionally.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "notifier")

	// An unknown alert type must fail before the store is touched.
	alert, err := ParseAlert(opts.AlertType)
	if err != nil {
		return err
	}

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.DeviceName != "" {
		cfg.Device.Name = opts.DeviceName
	}

	switcher, err := device.NewExecSwitcher(cfg.Device)
	if err != nil {
		return err
	}

	// Correlate log lines and diagnostic records of this run.
	invocationID := uuid.NewString()
	ctx = logger.WithKV(ctx, "invocation_id", invocationID)

	svc := &service{
		cfg:    cfg,
		alert:  alert,
		label:  opts.Label,
		device: switcher,
		sink:   diag.NewSink(cfg.DiagnosticLog, invocationID),
		repo:   history.NewFileRepository(cfg.HistoryFile, cfg.LockFile),
		now:    time.Now,
	}

	return svc.run(ctx)
}
