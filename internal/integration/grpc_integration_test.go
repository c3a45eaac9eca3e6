package integration

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/server"
)

// reservePort returns a free local address for a test server.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startClock runs a muted alarm clock with a temporary config on addr.
// The returned stop function waits for Run to return.
func startClock(t *testing.T, addr string, mutate func(*config.Config)) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.ServerAddress = addr
	settings.Tone.Enabled = false

	if mutate != nil {
		mutate(settings)
	}

	require.NoError(t, config.Save(cfgPath, settings))

	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath:    cfgPath,
			ListenAddress: addr,
			Output:        io.Discard,
		})
	}()

	// Wait until the control API answers.
	probe, err := common.Dial(ctx, addr, common.WithCallTimeout(200*time.Millisecond))
	require.NoError(t, err)

	defer func() {
		_ = probe.Close()
	}()

	require.Eventually(t, func() bool {
		_, err := probe.GetState(ctx)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

// TestGRPC_Roundtrip starts the real clock and exercises every control call.
func TestGRPC_Roundtrip(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)

	stop := startClock(t, addr, nil)
	defer stop()

	ctx := context.Background()
	actor := &alarm.Actor{
		Hostname: "test-hostname",
		Username: "test-user",
	}

	// Connect to the test server with timeout.
	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second), common.WithActor(actor))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	// The clock runs from the start in 24-hour mode without an alarm.
	state, err := c.GetState(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)
	require.True(t, state.Use24HourFormat)
	require.Nil(t, state.Alarm)
	require.NotEmpty(t, state.Time)
	require.NotEmpty(t, state.Date)

	// Invalid alarms are rejected and reported on the status line.
	_, err = c.SetAlarm(ctx, "7:5")
	require.ErrorIs(t, err, alarm.ErrInvalid)

	state, err = c.GetState(ctx)
	require.NoError(t, err)
	require.Nil(t, state.Alarm)
	require.Equal(t, "Invalid alarm format. Use HH:MM (24-hour).", state.Status)

	// Valid alarms are stored zero-padded and attributed to the caller.
	state, err = c.SetAlarm(ctx, " 6:45 ")
	require.NoError(t, err)
	require.Equal(t, "06:45", state.AlarmText())
	require.Equal(t, "Alarm set: 06:45", state.Status)
	require.Equal(t, actor, state.LastActor)

	state, err = c.ToggleFormat(ctx)
	require.NoError(t, err)
	require.False(t, state.Use24HourFormat)
	require.Regexp(t, `^\d{2}:\d{2}:\d{2} (AM|PM)$`, state.Time)

	state, err = c.ClearAlarm(ctx)
	require.NoError(t, err)
	require.Nil(t, state.Alarm)
	require.Equal(t, "Alarm cleared.", state.Status)

	state, err = c.Stop(ctx)
	require.NoError(t, err)
	require.False(t, state.Running)

	state, err = c.Start(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)
}

// TestGRPC_InitialSettings checks that configured format and alarm are applied at startup.
func TestGRPC_InitialSettings(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)

	stop := startClock(t, addr, func(settings *config.Config) {
		settings.Use12HourFormat = true
		settings.Alarm = "5:30"
	})
	defer stop()

	c, err := common.Dial(context.Background(), addr)
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	state, err := c.GetState(context.Background())
	require.NoError(t, err)
	require.False(t, state.Use24HourFormat)
	require.Equal(t, "05:30", state.AlarmText())
	require.Nil(t, state.LastActor)
}
