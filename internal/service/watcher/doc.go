// Package watcher polls a running alarm clock and prints its state line,
// giving a remote view of the clock display.
package watcher
