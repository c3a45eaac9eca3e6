// Package client implements alarm-clockctl: it sends one control command to a
// running alarm clock and prints the resulting state.
package client
