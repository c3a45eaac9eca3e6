//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"strings"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// FormatState renders a clock state as a single human-readable line.
func FormatState(state *alarm.State) string {
	if state == nil {
		return "<nil state>"
	}

	parts := make([]string, 0, 6)

	if state.Time != "" {
		parts = append(parts, state.Time)
	}

	if state.Date != "" {
		parts = append(parts, state.Date)
	}

	switch {
	case state.Alarm == nil:
		parts = append(parts, "no alarm")
	case state.FiredToday:
		parts = append(parts, "alarm "+state.AlarmText()+" (fired today)")
	default:
		parts = append(parts, "alarm "+state.AlarmText())
	}

	if state.Running {
		parts = append(parts, "running")
	} else {
		parts = append(parts, "stopped")
	}

	if state.Status != "" {
		parts = append(parts, state.Status)
	}

	if state.LastActor != nil {
		changed := "changed by " + state.LastActor.String()
		if !state.Timestamp.IsZero() {
			changed += " (" + state.Timestamp.Format(time.RFC3339) + ")"
		}

		parts = append(parts, changed)
	}

	return strings.Join(parts, "  ")
}
