package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xolan/hrs/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "hrs"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Accepted values for Config.Mode.
const (
	ModeOrdered   = "ordered"
	ModeUnordered = "unordered"
	ModeBoth      = "both"
)

// Accepted values for Config.Clock.
const (
	Clock12h = "12h"
	Clock24h = "24h"
)

// Config represents the application configuration
type Config struct {
	// Mode selects which AM/PM strategy the CLI and TUI report: ordered,
	// unordered or both.
	Mode string `toml:"mode"`
	// TargetHours is the default day target when the input has no \= directive.
	// Zero disables the projection.
	TargetHours float64 `toml:"target_hours"`
	// Clock selects how break times are shown: "12h" or "24h".
	Clock string `toml:"clock"`
	// Theme is the bubbletint theme ID used by the TUI.
	Theme string `toml:"theme"`
	// ListenAddr is the address "hrs serve" binds to.
	ListenAddr string `toml:"listen_addr"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeBoth,
		TargetHours: 0,
		Clock:       Clock12h,
		Theme:       "dracula",
		ListenAddr:  "127.0.0.1:5001",
		LogLevel:    "warn",
	}
}

// GetConfigPath returns the path to the config file, creating the config
// directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(AppName, ConfigFile)
}

// Load reads the config file at path. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return Config{}, fmt.Errorf("failed to parse config file: %s", perr.ErrorWithPosition())
		}
		if os.IsNotExist(err) || os.IsPermission(err) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or returns DefaultConfig when
// it doesn't exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lowercases and trims the enumerated fields in place. Empty
// fields fall back to their defaults.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	c.Mode = normalizeOr(c.Mode, defaults.Mode)
	c.Clock = normalizeOr(c.Clock, defaults.Clock)
	c.LogLevel = normalizeOr(c.LogLevel, defaults.LogLevel)
	c.Theme = normalizeOr(c.Theme, defaults.Theme)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
}

func normalizeOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

// Validate checks that every field holds an accepted value.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeOrdered, ModeUnordered, ModeBoth:
	default:
		return fmt.Errorf("invalid mode %q: must be 'ordered', 'unordered' or 'both'", c.Mode)
	}

	switch c.Clock {
	case Clock12h, Clock24h:
	default:
		return fmt.Errorf("invalid clock %q: must be '12h' or '24h'", c.Clock)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn' or 'error'", c.LogLevel)
	}

	if c.TargetHours < 0 || c.TargetHours > 24 {
		return fmt.Errorf("invalid target_hours %v: must be between 0 and 24", c.TargetHours)
	}

	return nil
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# hrs configuration file
# Place this file at ~/.config/hrs/config.toml (Linux/macOS)
# or %APPDATA%\hrs\config.toml (Windows)

# Which strategy to report for times without am/pm:
#   "ordered"   - lines are listed in time-of-day order
#   "unordered" - only each code's own ranges are ordered
#   "both"      - run both and warn when they disagree
mode = "both"

# Default day target in hours. A "\=8" line in the input overrides it.
# 0 disables the target projection.
target_hours = 0

# Break display: "12h" (1:30pm) or "24h" (13:30)
clock = "12h"

# TUI color theme (any bubbletint theme ID, e.g. "dracula", "nord", "tokyo_night")
theme = "dracula"

# Address used by "hrs serve"
listen_addr = "127.0.0.1:5001"

# Log level for diagnostics on stderr: "debug", "info", "warn" or "error"
log_level = "warn"
`
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	b.WriteString("# hrs configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}
