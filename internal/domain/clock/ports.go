package clock

import (
	"context"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Display receives the strings rendered on every tick.
type Display interface {
	DisplayTime(text string)
	DisplayDate(text string)
}

// Notifier is signaled once when the alarm fires.
// Implementations must not block on slow effects such as sound playback.
type Notifier interface {
	NotifyAlarm(ctx context.Context, at alarm.Time)
}
