package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/lamp-warden/internal/service/notifier"
)

var (
	// alertType classifies the incoming alert (problem, custom, recovery).
	alertType string
	// alertLabel optionally annotates the history entry.
	alertLabel string

	// notifyCmd reacts to one external alert; meant to be called by the
	// monitoring system's alert handler.
	notifyCmd = &cobra.Command{
		Use:   "notify",
		Short: "React to a monitoring alert.",
		Long: `Reacts to a single monitoring alert: problem and custom alerts turn
the lamp on once the configured rest period has elapsed since the last state
change, recovery alerts turn it off unconditionally.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return notifier.Run(ctx, &notifier.Options{
				ConfigPath: cfgPath,
				DeviceName: deviceName,
				AlertType:  alertType,
				Label:      alertLabel,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	notifyCmd.Flags().StringVarP(&alertType, "type", "t", "", "alert type: problem, custom or recovery")
	notifyCmd.Flags().StringVarP(&alertLabel, "label", "l", "", "free-text label stored with the history entry")

	if err := notifyCmd.MarkFlagRequired("type"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(notifyCmd)
}
