package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds settings shared by the alarm clock binaries.
type Config struct {
	// ServerAddress is the gRPC control address of the clock.
	ServerAddress string `yaml:"server_addr"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Use12HourFormat starts the display in 12-hour mode instead of 24-hour.
	Use12HourFormat bool `yaml:"use_12_hour_format"`
	// Alarm is an optional initial alarm in H:MM or HH:MM form.
	Alarm string `yaml:"alarm,omitempty"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
	// Tone configures the sound played when the alarm fires.
	Tone Tone `yaml:"tone"`
	// Status configures how long alarm status messages stay visible.
	Status Status `yaml:"status"`
}

// Tone describes the alarm beep.
type Tone struct {
	// Enabled turns sound playback on.
	Enabled bool `yaml:"enabled"`
	// FrequencyHz is the pitch of the sine wave.
	FrequencyHz float64 `yaml:"frequency_hz"`
	// Duration is how long the tone plays before stopping by itself.
	Duration time.Duration `yaml:"duration"`
	// Volume is the gain in the range (0, 1].
	Volume float64 `yaml:"volume"`
	// Player overrides the command used to play the tone; the WAV path is appended.
	Player string `yaml:"player,omitempty"`
}

// Status holds auto-clear delays for alarm status messages.
type Status struct {
	// InvalidClearDelay is how long the invalid-input message stays visible.
	InvalidClearDelay time.Duration `yaml:"invalid_clear_delay"`
	// ClearedClearDelay is how long the alarm-cleared message stays visible.
	ClearedClearDelay time.Duration `yaml:"cleared_clear_delay"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultServerAddress is where the control API listens when nothing is configured.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultToneFrequency is the alarm pitch in Hz.
	DefaultToneFrequency = 880.0

	// DefaultToneDuration is how long the alarm tone plays.
	DefaultToneDuration = 800 * time.Millisecond

	// DefaultToneVolume is the alarm tone gain.
	DefaultToneVolume = 0.05

	// DefaultInvalidClearDelay is how long the invalid-alarm message is shown.
	DefaultInvalidClearDelay = 3 * time.Second

	// DefaultClearedClearDelay is how long the alarm-cleared message is shown.
	DefaultClearedClearDelay = 2500 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when server address is missing.
	errServerSocketRequired = errors.New("server address must be provided")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
	// errBadVolume is returned when the tone volume is outside (0, 1].
	errBadVolume = errors.New("tone volume must be in (0, 1]")
)

// Default returns settings used when no file exists.
func Default() *Config {
	return &Config{
		ServerAddress: DefaultServerAddress,
		Timeout:       DefaultTimeout,
		LogLevel:      DefaultLogLevel,
		Tone: Tone{
			Enabled:     true,
			FrequencyHz: DefaultToneFrequency,
			Duration:    DefaultToneDuration,
			Volume:      DefaultToneVolume,
		},
		Status: Status{
			InvalidClearDelay: DefaultInvalidClearDelay,
			ClearedClearDelay: DefaultClearedClearDelay,
		},
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	// Start from defaults so omitted sections keep sensible values.
	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes Settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for zero values.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		return errServerSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	settings.Alarm = strings.TrimSpace(settings.Alarm)
	if settings.Alarm != "" {
		if _, err := alarm.Parse(settings.Alarm); err != nil {
			return fmt.Errorf("invalid alarm: %w", err)
		}
	}

	if err := validateTone(&settings.Tone); err != nil {
		return err
	}

	if settings.Status.InvalidClearDelay <= 0 {
		settings.Status.InvalidClearDelay = DefaultInvalidClearDelay
	}

	if settings.Status.ClearedClearDelay <= 0 {
		settings.Status.ClearedClearDelay = DefaultClearedClearDelay
	}

	return nil
}

// validateTone fills tone defaults and checks the volume.
func validateTone(tone *Tone) error {
	if tone.FrequencyHz <= 0 {
		tone.FrequencyHz = DefaultToneFrequency
	}

	if tone.Duration <= 0 {
		tone.Duration = DefaultToneDuration
	}

	if tone.Volume == 0 {
		tone.Volume = DefaultToneVolume
	}

	if tone.Volume < 0 || tone.Volume > 1 {
		return errBadVolume
	}

	return nil
}
