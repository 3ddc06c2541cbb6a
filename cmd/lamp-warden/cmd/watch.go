package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/lamp-warden/internal/service/watcher"
)

// watchCmd runs one watchdog pass; meant to be scheduled by cron.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run one watchdog pass over the lamp.",
	Long: `Runs a single watchdog pass: reconciles manual switching against the
recorded history, then forces the lamp off when the force-off marker is
present, the current time falls outside the allowed schedule, or the lamp
accumulated too much on-time. A lamp that is already off is left alone.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return watcher.Run(ctx, &watcher.Options{
			ConfigPath: cfgPath,
			DeviceName: deviceName,
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(watchCmd)
}
