package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/alarm-clock/internal/service/display"
)

// Alarm status messages.
const (
	statusInvalid = "Invalid alarm format. Use HH:MM (24-hour)."
	statusCleared = "Alarm cleared."
	statusSetFmt  = "Alarm set: %s"
)

// StatusSink shows alarm status messages to the user.
type StatusSink interface {
	ShowStatus(level display.Level, text string)
	ClearStatus()
}

// statusBoard holds the current status message and clears it after a delay.
type statusBoard struct {
	// clock schedules the auto-clear timers.
	clock clockwork.Clock
	// sink renders the message, may be nil.
	sink StatusSink

	// mu guards the fields below.
	mu sync.Mutex
	// text is the visible message.
	text string
	// generation identifies the latest message so stale timers do nothing.
	generation uint64
	// timer is the pending auto-clear, nil when the message stays.
	timer clockwork.Timer
}

// newStatusBoard creates an empty board.
func newStatusBoard(clk clockwork.Clock, sink StatusSink) *statusBoard {
	return &statusBoard{
		clock: clk,
		sink:  sink,
	}
}

// show replaces the message. A positive clearAfter removes it after that delay.
func (b *statusBoard) show(level display.Level, text string, clearAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimer()
	b.generation++
	b.text = text

	if b.sink != nil {
		b.sink.ShowStatus(level, text)
	}

	if clearAfter <= 0 {
		return
	}

	generation := b.generation
	b.timer = b.clock.AfterFunc(clearAfter, func() {
		b.clearIf(generation)
	})
}

// clearIf removes the message if nothing newer replaced it.
func (b *statusBoard) clearIf(generation uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.generation != generation {
		return
	}

	b.timer = nil
	b.text = ""

	if b.sink != nil {
		b.sink.ClearStatus()
	}
}

// current returns the visible message.
func (b *statusBoard) current() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.text
}

// close cancels a pending auto-clear.
func (b *statusBoard) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimer()
}

// stopTimer cancels the pending auto-clear. Callers hold mu.
func (b *statusBoard) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
