package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTerminal_RendersLine checks the line content and in-place redraws.
func TestTerminal_RendersLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	term := NewTerminal(&out)
	term.DisplayTime("07:30:00")
	term.DisplayDate("Kamis, 15-10-2026")

	require.Equal(t, "07:30:00  Kamis, 15-10-2026", term.Line())
	require.True(t, strings.HasPrefix(out.String(), clearLine))
	require.Contains(t, out.String(), "07:30:00  Kamis, 15-10-2026")
	require.NotContains(t, out.String(), "\n")
}

// TestTerminal_Status shows and clears the status message.
func TestTerminal_Status(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	term := NewTerminal(&out)
	term.DisplayTime("07:30:00")
	term.ShowStatus(LevelError, "Invalid alarm format. Use HH:MM (24-hour).")

	require.Equal(t, "07:30:00  Invalid alarm format. Use HH:MM (24-hour).", term.Line())
	require.Contains(t, out.String(), "Invalid alarm format")

	term.ClearStatus()
	require.Equal(t, "07:30:00", term.Line())
}

// TestTerminal_Alert prints the alert on its own line and redraws the clock.
func TestTerminal_Alert(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	term := NewTerminal(&out)
	term.DisplayTime("07:30:00")
	out.Reset()

	term.Alert("Alarm! Time: 07:30")

	require.Contains(t, out.String(), "Alarm! Time: 07:30")
	require.Contains(t, out.String(), "\n")
	require.True(t, strings.HasSuffix(out.String(), "07:30:00"))

	require.NoError(t, term.Close())
	require.True(t, strings.HasSuffix(out.String(), "\n"))
}
