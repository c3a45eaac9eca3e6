package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/service/watcher"
)

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type syncBuffer struct {
	// mu protects buf.
	mu sync.Mutex
	// buf holds everything written.
	buf bytes.Buffer
}

// Write appends p.
func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

// String returns the written text.
func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// TestClient_Actions runs alarm-clockctl actions against a live clock.
func TestClient_Actions(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)

	stop := startClock(t, addr, nil)
	defer stop()

	missingConfig := filepath.Join(t.TempDir(), "missing.yaml")

	run := func(action client.Action, input string) (string, error) {
		var out bytes.Buffer

		err := client.Run(context.Background(), &client.Options{
			ConfigPath:    missingConfig,
			ServerAddress: addr,
			Action:        action,
			AlarmInput:    input,
			Output:        &out,
		})

		return out.String(), err
	}

	out, err := run(client.ActionSetAlarm, "07:30")
	require.NoError(t, err)
	require.Contains(t, out, "alarm 07:30")
	require.Contains(t, out, "Alarm set: 07:30")

	_, err = run(client.ActionSetAlarm, "24:00")
	require.ErrorIs(t, err, alarm.ErrInvalid)

	out, err = run(client.ActionStatus, "")
	require.NoError(t, err)
	require.Contains(t, out, "alarm 07:30")
	require.Contains(t, out, "running")

	out, err = run(client.ActionStop, "")
	require.NoError(t, err)
	require.Contains(t, out, "stopped")

	out, err = run(client.ActionClearAlarm, "")
	require.NoError(t, err)
	require.Contains(t, out, "no alarm")
}

// TestClient_UnreachableFailsFast checks that a missing clock is reported without Wait.
func TestClient_UnreachableFailsFast(t *testing.T) {
	t.Parallel()

	err := client.Run(context.Background(), &client.Options{
		ConfigPath:    filepath.Join(t.TempDir(), "missing.yaml"),
		ServerAddress: reservePort(t),
		Action:        client.ActionStatus,
	})
	require.Error(t, err)
}

// TestWatcher_PollsAndReturnsOnCancel runs the watcher against a live clock and cancels it.
func TestWatcher_PollsAndReturnsOnCancel(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)

	stop := startClock(t, addr, func(settings *config.Config) {
		settings.Alarm = "06:00"
	})
	defer stop()

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	var out syncBuffer

	go func() {
		done <- watcher.Run(runCtx, &watcher.Options{
			ConfigPath:    filepath.Join(t.TempDir(), "missing.yaml"),
			ServerAddress: addr,
			PollInterval:  20 * time.Millisecond,
			Output:        &out,
		})
	}()

	// Wait for a few polls, then cancel.
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "\n") >= 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	// Verify watcher exits cleanly on cancellation.
	require.NoError(t, <-done)
	require.Contains(t, out.String(), "alarm 06:00")
}
