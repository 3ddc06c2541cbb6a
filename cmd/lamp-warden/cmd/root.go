package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/logger"
	"github.com/oshokin/lamp-warden/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// deviceName overrides the configured device name.
	deviceName string
	// debug raises log verbosity to debug level.
	debug bool

	// rootCmd represents the base command grouping the operating modes.
	rootCmd = &cobra.Command{
		Use:   "lamp-warden",
		Short: "Enforce on/off policy for a switchable lamp.",
		Long: `Supervises a single switchable lamp from persisted state history.

Invoked by cron in watch mode it forces the lamp off outside its allowed
schedule, after too much cumulative on-time, or when the force-off marker is
present. Invoked by the monitoring system in notify mode it turns the lamp
on for problem alerts (respecting the rest period) and off for recovery
alerts. List mode prints the recorded history.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logger.SetLevel(zapcore.DebugLevel)
			}
		},
	}
)

// Execute runs the lamp-warden CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup persistent flags shared by all modes.
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "override device name from configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
