package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalid is the parent of every alarm input validation error.
	ErrInvalid = errors.New("invalid alarm")
	// ErrMalformed is returned when the input does not look like H:MM or HH:MM.
	ErrMalformed = fmt.Errorf("%w: expected H:MM or HH:MM", ErrInvalid)
	// ErrOutOfRange is returned when the hour or minute is outside the 24-hour day.
	ErrOutOfRange = fmt.Errorf("%w: hour must be 0-23 and minute 0-59", ErrInvalid)
)

// inputPattern accepts a one or two digit hour and exactly two minute digits.
var inputPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Time is a wall-clock hour and minute at which the daily alarm fires.
type Time struct {
	// Hour is in the range 0-23.
	Hour int
	// Minute is in the range 0-59.
	Minute int
}

// Parse validates user input and converts it to a Time.
// The input is taken as is; callers trim it if they need to.
func Parse(input string) (Time, error) {
	if !inputPattern.MatchString(input) {
		return Time{}, fmt.Errorf("%q: %w", input, ErrMalformed)
	}

	hourText, minuteText, _ := strings.Cut(input, ":")

	// Both parts are guaranteed to be short digit runs by the pattern.
	hour, _ := strconv.Atoi(hourText)     //nolint:errcheck // Validated by inputPattern.
	minute, _ := strconv.Atoi(minuteText) //nolint:errcheck // Validated by inputPattern.

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%q: %w", input, ErrOutOfRange)
	}

	return Time{Hour: hour, Minute: minute}, nil
}

// String renders the alarm as zero-padded HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Matches reports whether the wall-clock hour and minute of now equal the alarm.
func (t Time) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}
