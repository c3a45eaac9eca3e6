package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/domain/clock"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/display"
)

// service exposes the engine to the control API and keeps the status board
// and audit trail next to it. It is unexported to keep the transport
// decoupled from the implementation.
type service struct {
	// baseCtx outlives individual requests; the tick loop runs under it.
	baseCtx context.Context //nolint:containedctx // The tick loop must not end with the request that started it.
	// engine is the clock core.
	engine *clock.Engine
	// status shows alarm status messages.
	status *statusBoard
	// delays configures how long status messages stay visible.
	delays config.Status

	// mu guards lastActor.
	mu sync.Mutex
	// lastActor is the caller who last changed the clock.
	lastActor *alarm.Actor
}

// newService creates a service around engine.
func newService(ctx context.Context, engine *clock.Engine, status *statusBoard, delays config.Status) *service {
	return &service{
		baseCtx: ctx,
		engine:  engine,
		status:  status,
		delays:  delays,
	}
}

// GetState returns the current clock state.
func (s *service) GetState(ctx context.Context) *alarm.State {
	state := s.snapshot()

	logger.DebugKV(ctx, "Clock state requested", "running", state.Running, "alarm", state.AlarmText())

	return state
}

// Start starts the tick source.
func (s *service) Start(ctx context.Context, actor *alarm.Actor) *alarm.State {
	s.engine.Start(s.baseCtx)
	s.touch(actor)

	logger.InfoKV(ctx, "Clock started", "actor", actor.String())

	return s.snapshot()
}

// Stop stops the tick source.
func (s *service) Stop(ctx context.Context, actor *alarm.Actor) *alarm.State {
	s.engine.Stop()
	s.touch(actor)

	logger.InfoKV(ctx, "Clock stopped", "actor", actor.String())

	return s.snapshot()
}

// ToggleFormat flips between 12 and 24-hour display.
func (s *service) ToggleFormat(ctx context.Context, actor *alarm.Actor) *alarm.State {
	s.engine.ToggleFormat(ctx)
	s.touch(actor)

	state := s.snapshot()

	logger.InfoKV(ctx, "Display format toggled", "use_24_hour_format", state.Use24HourFormat, "actor", actor.String())

	return state
}

// SetAlarm validates and stores the alarm, updating the status message either way.
func (s *service) SetAlarm(ctx context.Context, actor *alarm.Actor, input string) (*alarm.State, error) {
	if err := s.engine.SetAlarm(input); err != nil {
		s.status.show(display.LevelError, statusInvalid, s.delays.InvalidClearDelay)
		logger.WarnKV(ctx, "Alarm rejected", "input", input, "error", err, "actor", actor.String())

		return nil, err
	}

	s.touch(actor)

	state := s.engine.Snapshot()
	s.status.show(display.LevelInfo, fmt.Sprintf(statusSetFmt, state.AlarmText()), 0)

	logger.InfoKV(ctx, "Alarm set", "alarm", state.AlarmText(), "actor", actor.String())

	return s.snapshot(), nil
}

// ClearAlarm removes the alarm.
func (s *service) ClearAlarm(ctx context.Context, actor *alarm.Actor) *alarm.State {
	s.engine.ClearAlarm()
	s.touch(actor)
	s.status.show(display.LevelInfo, statusCleared, s.delays.ClearedClearDelay)

	logger.InfoKV(ctx, "Alarm cleared", "actor", actor.String())

	return s.snapshot()
}

// touch records actor as the last caller to change the clock.
func (s *service) touch(actor *alarm.Actor) {
	if actor == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActor = actor.Clone()
}

// snapshot combines the engine state with the status and audit fields.
func (s *service) snapshot() *alarm.State {
	state := s.engine.Snapshot()
	state.Status = s.status.current()

	s.mu.Lock()
	state.LastActor = s.lastActor.Clone()
	s.mu.Unlock()

	return state
}
