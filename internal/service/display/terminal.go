package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity of a status message.
type Level int

const (
	// LevelInfo is rendered green.
	LevelInfo Level = iota
	// LevelError is rendered red.
	LevelError
)

// clearLine moves the cursor to the line start and erases the line.
const clearLine = "\r\033[K"

// Terminal draws the clock as a single line that is redrawn in place.
// It is safe for concurrent use.
type Terminal struct {
	// out is where the clock line is written.
	out io.Writer

	// mu protects the fields below and serializes writes.
	mu sync.Mutex
	// time is the current time text.
	time string
	// date is the current date text.
	date string
	// status is the current alarm status text.
	status string
	// level is the severity of status.
	level Level

	// info and failure colour status messages.
	info, failure *color.Color
}

// NewTerminal creates a terminal display writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:     out,
		info:    color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
}

// DisplayTime stores the time text and redraws the line.
func (t *Terminal) DisplayTime(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.time = text
	t.render()
}

// DisplayDate stores the date text and redraws the line.
func (t *Terminal) DisplayDate(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.date = text
	t.render()
}

// ShowStatus sets the alarm status message.
func (t *Terminal) ShowStatus(level Level, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = text
	t.level = level
	t.render()
}

// ClearStatus removes the alarm status message.
func (t *Terminal) ClearStatus() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = ""
	t.level = LevelInfo
	t.render()
}

// Alert prints message on its own line and redraws the clock below it.
func (t *Terminal) Alert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprint(t.out, clearLine)
	_, _ = t.failure.Fprintln(t.out, message)
	t.render()
}

// Line returns the clock line without colours or control sequences.
func (t *Terminal) Line() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.plainLine()
}

// plainLine joins the non-empty parts of the line.
func (t *Terminal) plainLine() string {
	parts := make([]string, 0, 3)

	for _, part := range []string{t.time, t.date, t.status} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, "  ")
}

// render redraws the clock line. Callers hold mu.
func (t *Terminal) render() {
	var b strings.Builder

	b.WriteString(clearLine)
	b.WriteString(t.time)

	if t.date != "" {
		b.WriteString("  ")
		b.WriteString(t.date)
	}

	if t.status != "" {
		b.WriteString("  ")

		if t.level == LevelError {
			b.WriteString(t.failure.Sprint(t.status))
		} else {
			b.WriteString(t.info.Sprint(t.status))
		}
	}

	_, _ = io.WriteString(t.out, b.String())
}

// Close ends the clock line so following output starts on a fresh line.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprintln(t.out)

	return err
}
