package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/lamp-warden/internal/service/lister"
)

// listCmd prints the recorded state history.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recorded lamp state history.",
	Long: `Prints every recorded state change in insertion order: timestamp,
ON/OFF, the mode that produced the entry (watch, notif, manual) and the
optional label. The lamp itself is not queried and nothing is modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return lister.Run(ctx, &lister.Options{
			ConfigPath: cfgPath,
			Out:        cmd.OutOrStdout(),
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(listCmd)
}
