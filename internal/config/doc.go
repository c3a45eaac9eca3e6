// Package config defines the settings shared by alarm-clock and alarm-clockctl
// and provides helpers to load, validate and save them in YAML format.
//
// Besides the control address and RPC timeout it carries display, alarm, tone
// and status message settings. Zero values are replaced by defaults in Validate.
package config
