package alarm

import "time"

// Actor identifies who changed the clock through the control API.
type Actor struct {
	// Hostname is the machine name the request came from.
	Hostname string
	// Username is the system user who sent the request.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return a.Username + "@" + a.Hostname
}

// State is a snapshot of the alarm clock at a specific point in time.
type State struct {
	// Timestamp is when the snapshot was taken.
	Timestamp time.Time
	// LastActor is the caller who last changed the clock, if any.
	LastActor *Actor
	// Alarm is the configured daily alarm, nil when none is set.
	Alarm *Time
	// FiredToday reports whether the alarm already fired for the current day.
	FiredToday bool
	// Use24HourFormat is the display mode.
	Use24HourFormat bool
	// Running reports whether the tick source is active.
	Running bool
	// Time is the last rendered time string.
	Time string
	// Date is the last rendered date string.
	Date string
	// Status is the current alarm status message shown to the user.
	Status string
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	cloned := *s
	cloned.LastActor = s.LastActor.Clone()

	if s.Alarm != nil {
		at := *s.Alarm
		cloned.Alarm = &at
	}

	return &cloned
}

// AlarmText returns the alarm as HH:MM, or an empty string when none is set.
func (s *State) AlarmText() string {
	if s == nil || s.Alarm == nil {
		return ""
	}

	return s.Alarm.String()
}
