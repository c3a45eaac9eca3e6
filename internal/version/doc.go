// Package version exposes build metadata for the alarm clock binaries.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
package version
