// Package display renders the clock on a terminal.
//
// Terminal implements the engine's display port, the alarm status sink and
// the alert surface used by the notifier.
package display
