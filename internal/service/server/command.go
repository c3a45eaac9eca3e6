package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/clock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/clock"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/display"
	"github.com/oshokin/alarm-clock/internal/service/notify"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

// Options controls the alarm-clock process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file; a missing file means defaults.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// Use12HourFormat starts the display in 12-hour mode regardless of the config.
	Use12HourFormat bool
	// Alarm is an initial alarm overriding the configured one.
	Alarm string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Mute disables the alarm tone; the alert line is still shown.
	Mute bool
	// SingleInstance refuses to start when another process runs the same binary.
	SingleInstance bool
	// Output receives the clock display, os.Stdout when nil.
	Output io.Writer
	// Clock supplies time, the real clock when nil.
	Clock clockwork.Clock
	// TickInterval overrides the engine tick period.
	TickInterval time.Duration
}

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// ErrAlreadyRunning indicates another alarm clock process was found.
	ErrAlreadyRunning = errors.New("alarm clock is already running")
	// errUnknownLogLevel is returned for a log level override zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Run starts the clock and its gRPC control API and blocks until ctx is
// canceled or the server stops.
//
//nolint:cyclop,funlen // Wiring reads top to bottom; splitting would reduce clarity.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock")

	// Load configuration first to get server settings.
	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	ctx, err = configureLogging(ctx, settings.LogLevel, opts.LogLevel)
	if err != nil {
		return err
	}

	if opts.SingleInstance {
		if err = ensureSingleInstance(ctx); err != nil {
			return err
		}
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	terminal := display.NewTerminal(output)

	// A nil player keeps the alert line but skips the tone.
	var player notify.TonePlayer
	if settings.Tone.Enabled && !opts.Mute {
		player = &sound.Player{Command: settings.Tone.Player}
	}

	notifier := notify.New(terminal, player, sound.Tone{
		Frequency: settings.Tone.FrequencyHz,
		Duration:  settings.Tone.Duration,
		Volume:    settings.Tone.Volume,
	})

	engine := clock.New(
		clk,
		terminal,
		notifier,
		clock.With24HourFormat(!settings.Use12HourFormat && !opts.Use12HourFormat),
		clock.WithTickInterval(opts.TickInterval),
	)

	status := newStatusBoard(clk, terminal)
	svc := newService(ctx, engine, status, settings.Status)

	defer func() {
		engine.Stop()
		status.close()
		notifier.Wait()

		_ = terminal.Close()
	}()

	initialAlarm := settings.Alarm
	if opts.Alarm != "" {
		initialAlarm = opts.Alarm
	}

	if initialAlarm != "" {
		if _, err = svc.SetAlarm(ctx, nil, initialAlarm); err != nil {
			return fmt.Errorf("initial alarm %q: %w", initialAlarm, err)
		}
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	// Create and configure gRPC server with the clock service.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(logger.FromContext(ctx))))
	api.RegisterClockServiceServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Alarm clock listening", "listen_address", listenAddress)

	// The clock runs from the start; clients may stop and restart it.
	engine.Start(ctx)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// configureLogging applies the log level and, unless debugging, keeps info
// messages off the terminal while the clock line is being redrawn.
func configureLogging(ctx context.Context, configured, override string) (context.Context, error) {
	name := configured
	if override != "" {
		name = override
	}

	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return ctx, fmt.Errorf("%q: %w", name, errUnknownLogLevel)
	}

	logger.SetLevel(level)

	if level > zapcore.DebugLevel {
		ctx = logger.WithMinLevel(ctx, zapcore.WarnLevel.String())
	}

	return ctx, nil
}

// ensureSingleInstance fails when another process runs this binary.
// A failed process lookup is logged and does not prevent startup.
func ensureSingleInstance(ctx context.Context) error {
	name := common.ExecutableName()

	running, err := common.IsRunning(name)
	if err != nil {
		logger.WarnKV(ctx, "Instance check failed", "error", err)

		return nil
	}

	if running {
		return fmt.Errorf("%s: %w", name, ErrAlreadyRunning)
	}

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	// Extract port from config address (e.g., "server.example.com:8080" -> ":8080").
	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
