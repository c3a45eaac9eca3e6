// Package clock implements the alarm clock engine.
//
// Engine owns the display format and the single daily alarm. A tick reads the
// wall clock, writes the formatted time and date to a Display and signals a
// Notifier when the alarm matches. Ticks come from a clockwork ticker while the
// engine is running; tests call Tick directly against a fake clock.
package clock
