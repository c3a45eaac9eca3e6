package alarm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParse_AcceptsWholeDay checks every hour and minute in both accepted shapes.
func TestParse_AcceptsWholeDay(t *testing.T) {
	t.Parallel()

	for h := range 24 {
		for m := range 60 {
			want := Time{Hour: h, Minute: m}

			got, err := Parse(fmt.Sprintf("%d:%02d", h, m))
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Equal(t, fmt.Sprintf("%02d:%02d", h, m), got.String())

			got, err = Parse(fmt.Sprintf("%02d:%02d", h, m))
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	}
}

// TestParse_Malformed ensures inputs outside the H:MM / HH:MM shape are rejected.
func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"7:5",
		"7",
		"07",
		":30",
		"123:00",
		"07:300",
		"07-30",
		"07:3a",
		"aa:bb",
		" 07:30",
		"07:30 ",
		"-1:30",
		"07:30:00",
		"٠٧:٣٠",
	}

	for _, input := range inputs {
		_, err := Parse(input)
		require.ErrorIs(t, err, ErrMalformed, "input %q", input)
		require.ErrorIs(t, err, ErrInvalid, "input %q", input)
	}
}

// TestParse_OutOfRange ensures hours past 23 and minutes past 59 are rejected.
func TestParse_OutOfRange(t *testing.T) {
	t.Parallel()

	inputs := []string{"24:00", "25:10", "99:00", "00:60", "12:61", "23:99"}

	for _, input := range inputs {
		_, err := Parse(input)
		require.ErrorIs(t, err, ErrOutOfRange, "input %q", input)
		require.ErrorIs(t, err, ErrInvalid, "input %q", input)
	}
}

// TestTimeMatches compares only the hour and minute of the wall clock.
func TestTimeMatches(t *testing.T) {
	t.Parallel()

	at := Time{Hour: 7, Minute: 30}

	require.True(t, at.Matches(time.Date(2026, 10, 15, 7, 30, 0, 0, time.Local)))
	require.True(t, at.Matches(time.Date(2026, 10, 15, 7, 30, 59, 0, time.Local)))
	require.False(t, at.Matches(time.Date(2026, 10, 15, 7, 31, 0, 0, time.Local)))
	require.False(t, at.Matches(time.Date(2026, 10, 15, 19, 30, 0, 0, time.Local)))
}
