package lister

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/logger"
	"github.com/oshokin/lamp-warden/internal/repository/history"
)

// Options configures one listing invocation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Out receives the rendered history; defaults to stdout.
	Out io.Writer
}

// Run prints the recorded state history in insertion order. It queries no
// device, reconciles nothing and appends nothing.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "lister")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	svc := &service{
		repo: history.NewFileRepository(cfg.HistoryFile, cfg.LockFile),
		out:  out,
	}

	return svc.run(ctx)
}
