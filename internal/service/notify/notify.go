package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

// playGrace is added to the tone duration before playback is killed.
const playGrace = 5 * time.Second

// Alerter shows an alarm message to the user.
type Alerter interface {
	Alert(message string)
}

// TonePlayer plays a tone, blocking until it finishes.
type TonePlayer interface {
	Play(ctx context.Context, tone sound.Tone) error
}

// Notifier implements the engine's notification port.
type Notifier struct {
	// alerter shows the alarm message, may be nil.
	alerter Alerter
	// player plays the tone, nil disables sound.
	player TonePlayer
	// tone is what the player plays.
	tone sound.Tone
	// wg tracks tones still playing.
	wg sync.WaitGroup
}

// New creates a notifier. A nil player disables sound.
func New(alerter Alerter, player TonePlayer, tone sound.Tone) *Notifier {
	return &Notifier{
		alerter: alerter,
		player:  player,
		tone:    tone,
	}
}

// NotifyAlarm shows the alert and starts the tone without waiting for it.
// Tone failures are logged as warnings and otherwise ignored.
func (n *Notifier) NotifyAlarm(ctx context.Context, at alarm.Time) {
	if n.alerter != nil {
		n.alerter.Alert(fmt.Sprintf("Alarm! Time: %s", at))
	}

	if n.player == nil {
		return
	}

	// The tone outlives the tick or request that fired it.
	playCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.tone.Duration+playGrace)

	n.wg.Add(1)

	go func() {
		defer n.wg.Done()
		defer cancel()

		if err := n.player.Play(playCtx, n.tone); err != nil {
			logger.WarnKV(ctx, "Alarm tone failed", "alarm", at.String(), "error", err)
		}
	}()
}

// Wait blocks until every started tone has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
