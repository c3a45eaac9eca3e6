package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

var errNoSoundCard = errors.New("no sound card")

// fakeAlerter records alert messages.
type fakeAlerter struct {
	// mu protects messages.
	mu sync.Mutex
	// messages holds every alert in order.
	messages []string
}

// Alert records message.
func (f *fakeAlerter) Alert(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, message)
}

// fakePlayer records tones and returns a preset error.
type fakePlayer struct {
	// mu protects played.
	mu sync.Mutex
	// played holds every tone passed to Play.
	played []sound.Tone
	// err is returned from Play.
	err error
	// deadline reports whether Play received a context with a deadline.
	deadline bool
}

// Play records tone.
func (f *fakePlayer) Play(ctx context.Context, tone sound.Tone) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, f.deadline = ctx.Deadline()
	f.played = append(f.played, tone)

	return f.err
}

// beep is the tone used in tests.
var beep = sound.Tone{Frequency: 880, Duration: 800 * time.Millisecond, Volume: 0.05}

// TestNotifier_AlertsAndPlays checks the alert text and the detached tone.
func TestNotifier_AlertsAndPlays(t *testing.T) {
	t.Parallel()

	alerter := new(fakeAlerter)
	player := new(fakePlayer)
	n := New(alerter, player, beep)

	// A canceled caller context does not cut the tone short.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n.NotifyAlarm(ctx, alarm.Time{Hour: 7, Minute: 5})
	n.Wait()

	require.Equal(t, []string{"Alarm! Time: 07:05"}, alerter.messages)
	require.Equal(t, []sound.Tone{beep}, player.played)
	require.True(t, player.deadline)
}

// TestNotifier_ToneFailureIsLogged swallows playback errors as warnings.
func TestNotifier_ToneFailureIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	n := New(new(fakeAlerter), &fakePlayer{err: errNoSoundCard}, beep)

	require.NotPanics(t, func() {
		n.NotifyAlarm(ctx, alarm.Time{Hour: 7, Minute: 30})
		n.Wait()
	})

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	require.Equal(t, "Alarm tone failed", warnings[0].Message)
}

// TestNotifier_Silent works without a player or alerter.
func TestNotifier_Silent(t *testing.T) {
	t.Parallel()

	n := New(nil, nil, beep)

	require.NotPanics(t, func() {
		n.NotifyAlarm(context.Background(), alarm.Time{Hour: 6, Minute: 0})
		n.Wait()
	})
}
