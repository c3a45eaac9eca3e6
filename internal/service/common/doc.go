// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the clock control API with
// timeouts, detection of the current system actor (hostname/username) for
// audit purposes, and a process lookup used as a single-instance guard.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
