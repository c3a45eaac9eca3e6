package clock

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultTickInterval is how often a running engine ticks.
const DefaultTickInterval = time.Second

// civilDate is a local calendar day.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

// dateOf returns the local calendar day of t.
func dateOf(t time.Time) civilDate {
	year, month, day := t.Date()

	return civilDate{year: year, month: month, day: day}
}

// Engine is the alarm clock core. It is safe for concurrent use.
type Engine struct {
	// clock supplies wall-clock time and tickers.
	clock clockwork.Clock
	// display receives rendered time and date strings.
	display Display
	// notifier is signaled when the alarm fires.
	notifier Notifier
	// interval is the period between ticks while running.
	interval time.Duration

	// mu guards every field below.
	mu sync.Mutex
	// use24HourFormat selects the display mode.
	use24HourFormat bool
	// alarm is the configured daily alarm, nil when unset.
	alarm *alarm.Time
	// firedToday blocks repeated fires within the matching minute.
	firedToday bool
	// firedOn is the local day of the last fire.
	firedOn civilDate
	// cancel stops the running tick loop, nil when stopped.
	cancel context.CancelFunc
	// done is closed when the running tick loop exits.
	done chan struct{}
	// lastTime and lastDate are the most recently rendered strings.
	lastTime, lastDate string
}

// Option customizes an Engine.
type Option func(*Engine)

// With24HourFormat sets the initial display mode.
func With24HourFormat(enabled bool) Option {
	return func(e *Engine) {
		e.use24HourFormat = enabled
	}
}

// WithTickInterval overrides the tick period.
func WithTickInterval(interval time.Duration) Option {
	return func(e *Engine) {
		if interval > 0 {
			e.interval = interval
		}
	}
}

// New creates a stopped engine in 24-hour mode with no alarm.
// A nil clk falls back to the real clock.
func New(clk clockwork.Clock, display Display, notifier Notifier, opts ...Option) *Engine {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	e := &Engine{
		clock:           clk,
		display:         display,
		notifier:        notifier,
		interval:        DefaultTickInterval,
		use24HourFormat: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start renders immediately and then ticks every interval until Stop is called
// or ctx is canceled. Calling Start on a running engine does nothing.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.cancel != nil {
		e.mu.Unlock()
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	ticker := e.clock.NewTicker(e.interval)
	done := make(chan struct{})

	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	logger.DebugKV(runCtx, "Clock started", "interval", e.interval.String())

	e.Tick(runCtx)

	go e.loop(runCtx, ticker, done)
}

// Stop cancels the tick loop and waits for it to exit.
// Calling Stop on a stopped engine does nothing.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Running reports whether a tick source is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cancel != nil
}

// loop ticks until ctx is done.
func (e *Engine) loop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.release(done)
			logger.Debug(ctx, "Clock stopped")

			return
		case <-ticker.Chan():
			e.Tick(ctx)
		}
	}
}

// release forgets the loop identified by done if it is still the current one.
// It covers loops ended by their parent context rather than Stop.
func (e *Engine) release(done chan struct{}) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done != done {
		return
	}

	e.cancel()
	e.cancel, e.done = nil, nil
}

// ToggleFormat flips between 12 and 24-hour display and re-renders at once.
func (e *Engine) ToggleFormat(ctx context.Context) {
	e.mu.Lock()
	e.use24HourFormat = !e.use24HourFormat
	e.mu.Unlock()

	e.Tick(ctx)
}

// SetAlarm validates input as H:MM or HH:MM and stores it as the daily alarm.
// On error the previous alarm is left untouched. On success the fired flag is
// cleared, so an alarm set for the current minute fires on the next tick.
func (e *Engine) SetAlarm(input string) error {
	at, err := alarm.Parse(input)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.alarm = &at
	e.firedToday = false

	return nil
}

// ClearAlarm removes the alarm and clears the fired flag.
func (e *Engine) ClearAlarm() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.alarm = nil
	e.firedToday = false
}

// Tick renders the current time and date and fires the alarm when it matches.
func (e *Engine) Tick(ctx context.Context) {
	fired, ok := e.tick()
	if !ok || e.notifier == nil {
		return
	}

	logger.InfoKV(ctx, "Alarm fired", "alarm", fired.String())
	e.notifier.NotifyAlarm(ctx, fired)
}

// tick does the locked part of Tick and reports the alarm to signal, if any.
func (e *Engine) tick() (alarm.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	e.lastTime = FormatTime(now, e.use24HourFormat)
	e.lastDate = FormatDate(now)

	if e.display != nil {
		e.display.DisplayTime(e.lastTime)
		e.display.DisplayDate(e.lastDate)
	}

	if e.alarm == nil {
		return alarm.Time{}, false
	}

	today := dateOf(now)

	// A new day re-arms the alarm, even when the tick at midnight was missed.
	if e.firedToday && e.firedOn != today {
		e.firedToday = false
	}

	if e.firedToday || !e.alarm.Matches(now) {
		return alarm.Time{}, false
	}

	e.firedToday = true
	e.firedOn = today

	return *e.alarm, true
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() *alarm.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := &alarm.State{
		Timestamp:       e.clock.Now(),
		FiredToday:      e.firedToday,
		Use24HourFormat: e.use24HourFormat,
		Running:         e.cancel != nil,
		Time:            e.lastTime,
		Date:            e.lastDate,
	}

	if e.alarm != nil {
		at := *e.alarm
		state.Alarm = &at
	}

	return state
}
