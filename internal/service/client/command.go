package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Action is a control command understood by the alarm clock.
type Action string

// Supported actions.
const (
	ActionStatus       Action = "status"
	ActionStart        Action = "start"
	ActionStop         Action = "stop"
	ActionToggleFormat Action = "toggle-format"
	ActionSetAlarm     Action = "set-alarm"
	ActionClearAlarm   Action = "clear-alarm"
)

// Options configures a single control command.
type Options struct {
	// ConfigPath to YAML settings file; a missing file means defaults.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Action is the command to send.
	Action Action
	// AlarmInput is the alarm for ActionSetAlarm in H:MM or HH:MM form.
	AlarmInput string
	// Wait keeps retrying an unreachable clock for this long; zero tries once.
	Wait time.Duration
	// Output receives the resulting state line, os.Stdout when nil.
	Output io.Writer
}

// retryInterval is the delay between attempts while the clock is unreachable.
const retryInterval = 1 * time.Second

// errUnknownAction is returned for actions the client does not implement.
var errUnknownAction = errors.New("unknown action")

// Run sends the command, retrying while the clock is unreachable and Wait allows,
// and prints the resulting state.
//
//nolint:cyclop // Retry loop reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clockctl")

	// Load settings from configuration file.
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Actor detection failed, sending anonymously", "error", err)
	}

	// Connect to the alarm clock with timeout from config.
	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout), common.WithActor(actor))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	logger.DebugKV(ctx, "Sending command", "server_address", serverAddress, "action", string(opts.Action))

	deadline := time.Now().Add(opts.Wait)

	for {
		state, err := execute(ctx, client, opts)
		if err == nil {
			_, err = fmt.Fprintln(output, common.FormatState(state))

			return err
		}

		if !retryable(err) || time.Now().Add(retryInterval).After(deadline) {
			return err
		}

		logger.WarnKV(ctx, "Alarm clock unreachable, retrying", "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// execute sends one attempt of the command.
func execute(ctx context.Context, client *common.Client, opts *Options) (*alarm.State, error) {
	switch opts.Action {
	case ActionStatus:
		return client.GetState(ctx)
	case ActionStart:
		return client.Start(ctx)
	case ActionStop:
		return client.Stop(ctx)
	case ActionToggleFormat:
		return client.ToggleFormat(ctx)
	case ActionSetAlarm:
		return client.SetAlarm(ctx, opts.AlarmInput)
	case ActionClearAlarm:
		return client.ClearAlarm(ctx)
	default:
		return nil, fmt.Errorf("%q: %w", opts.Action, errUnknownAction)
	}
}

// retryable reports whether err means the clock could not be reached.
func retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
