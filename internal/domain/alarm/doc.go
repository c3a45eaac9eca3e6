// Package alarm contains core domain types for the alarm clock.
//
// It defines Time (the single daily alarm, parsed from H:MM or HH:MM input),
// Actor (who changed the clock) and State (a snapshot of the clock) with Clone
// helpers to avoid leaking internal references.
package alarm
