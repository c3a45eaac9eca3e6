package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/server"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// use12Hour starts the display in 12-hour mode.
	use12Hour bool
	// initialAlarm is set before the clock starts.
	initialAlarm string
	// logLevel overrides the configured log level.
	logLevel string
	// mute disables the alarm tone.
	mute bool
	// allowMultiple skips the single-instance guard.
	allowMultiple bool

	// rootCmd represents the base command for running the alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock [listen-address]",
		Short: "Run the terminal alarm clock.",
		Long: `Shows a live clock with the date on a single terminal line and rings a daily alarm.

The clock starts in 24-hour mode unless --12h or use_12_hour_format is set.
An alarm can be given with --alarm or in the configuration file as H:MM or HH:MM.
When the alarm minute is reached an alert line is printed and a short tone is played.

The clock is controlled with alarm-clockctl over gRPC. Only the port from the
server_addr setting is used for listening (e.g., :50061); a listen address
argument overrides it (e.g., 127.0.0.1:9090). A missing configuration file
means defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:      configPath,
				ListenAddress:   listenAddress,
				Use12HourFormat: use12Hour,
				Alarm:           initialAlarm,
				LogLevel:        logLevel,
				Mute:            mute,
				SingleInstance:  !allowMultiple,
				Output:          cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&use12Hour, "12h", false, "start in 12-hour mode")
	rootCmd.Flags().StringVarP(&initialAlarm, "alarm", "a", "", "daily alarm as H:MM or HH:MM (24-hour)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "do not refuse to start when another clock is running")

	// Hidden mute flag for quiet testing.
	rootCmd.Flags().BoolVarP(&mute, "mute", "m", false, "do not play the alarm tone")

	err := rootCmd.Flags().MarkHidden("mute")
	if err != nil {
		panic(err)
	}
}
