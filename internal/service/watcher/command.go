package watcher

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
	"github.com/oshokin/lamp-warden/internal/schedule"
)

// Options configures one watchdog invocation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DeviceName overrides the device name from config when specified.
	DeviceName string
}

// Run executes one watchdog pass: it enforces the force-off signal, the
// weekly schedule and the cumulative on-time limit against the live device,
// issuing at most one off command.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "watcher")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.DeviceName != "" {
		cfg.Device.Name = opts.DeviceName
	}

	table, err := schedule.Parse(cfg.Schedule)
	if err != nil {
		return fmt.Errorf("parse schedule: %w", err)
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
		table:  table,
		device: switcher,
		sink:   diag.NewSink(cfg.DiagnosticLog, invocationID),
		repo:   history.NewFileRepository(cfg.HistoryFile, cfg.LockFile),
		now:    time.Now,
	}

	return svc.run(ctx)
}
