package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between state checks.
	PollInterval time.Duration
	// Output receives one state line per poll, os.Stdout when nil.
	Output io.Writer
	// Clock drives the polling ticker, the real clock when nil.
	Clock clockwork.Clock
}

// DefaultPollInterval matches the clock's own tick.
const DefaultPollInterval = 1 * time.Second

// Run polls the clock state until ctx is canceled.
// Failed polls are logged and polling continues.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-watch")

	// Load settings from configuration file.
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// Determine server address: command line argument overrides config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	// Establish gRPC connection with timeout from configuration.
	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	// Ensure connection cleanup on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching alarm clock", "server_address", serverAddress, "interval", interval.String())

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	poll(ctx, client, output)

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.Chan():
			poll(ctx, client, output)
		}
	}
}

// poll prints the current state or logs why it could not be read.
func poll(ctx context.Context, client *common.Client, output io.Writer) {
	state, err := client.GetState(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.ErrorKV(ctx, "Get state failed", "error", err)
		}

		return
	}

	if _, err = fmt.Fprintln(output, common.FormatState(state)); err != nil {
		logger.WarnKV(ctx, "Write state failed", "error", err)
	}
}
