// Package server runs the alarm clock: it owns the clock engine, draws it on
// the terminal and serves the gRPC control API until its context is canceled.
package server
