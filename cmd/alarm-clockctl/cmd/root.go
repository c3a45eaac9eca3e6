package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the configured clock address.
	serverAddress string
	// wait keeps retrying an unreachable clock.
	wait time.Duration

	// rootCmd represents the base command for controlling the clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clockctl",
		Short: "Control a running alarm clock.",
		Long: `Sends control commands to a running alarm-clock over gRPC and prints the
resulting clock state.

The clock address comes from the configuration file or --server. Every change
is recorded with the hostname and username of the caller.`,
		SilenceUsage: true,
	}
)

// Execute runs the alarm-clockctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// actionCommand builds a subcommand that sends action to the clock.
func actionCommand(use, short string, action client.Action, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var alarmInput string
			if len(args) > 0 {
				alarmInput = args[0]
			}

			return client.Run(ctx, &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				Action:        action,
				AlarmInput:    alarmInput,
				Wait:          wait,
				Output:        cmd.OutOrStdout(),
			})
		},
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "alarm clock address, overrides the configuration file")
	rootCmd.PersistentFlags().
		DurationVarP(&wait, "wait", "w", 0, "keep retrying an unreachable clock for this long")

	rootCmd.AddCommand(
		actionCommand("status", "Print the clock state.", client.ActionStatus, cobra.NoArgs),
		actionCommand("start", "Start the clock.", client.ActionStart, cobra.NoArgs),
		actionCommand("stop", "Stop the clock.", client.ActionStop, cobra.NoArgs),
		actionCommand("toggle-format", "Switch between 12 and 24-hour display.", client.ActionToggleFormat, cobra.NoArgs),
		actionCommand("set-alarm HH:MM", "Set the daily alarm (24-hour, H:MM or HH:MM).", client.ActionSetAlarm,
			cobra.ExactArgs(1)),
		actionCommand("clear-alarm", "Remove the daily alarm.", client.ActionClearAlarm, cobra.NoArgs),
		watchCommand(),
	)
}
