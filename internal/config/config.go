// Package config handles the host simulator configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultShape         = "rect"
	DefaultScale         = 3
	DefaultHz            = 60
	DefaultBatteryPoll   = 1000
	DefaultLinkPoll      = 250
	DefaultChargePercent = 100
)

// Config represents the simulator configuration.
type Config struct {
	Display  DisplayConfig  `yaml:"display" toml:"display"`
	Clock    ClockConfig    `yaml:"clock" toml:"clock"`
	Battery  BatteryConfig  `yaml:"battery" toml:"battery"`
	Link     LinkConfig     `yaml:"link" toml:"link"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Kernel   KernelConfig   `yaml:"kernel" toml:"kernel"`
	Headless HeadlessConfig `yaml:"headless" toml:"headless"`
	Script   []ScriptStep   `yaml:"script" toml:"script"`
}

// DisplayConfig describes the simulated panel.
type DisplayConfig struct {
	Shape  string `yaml:"shape" toml:"shape"`   // rect, round
	Width  int    `yaml:"width" toml:"width"`   // 0 = shape default
	Height int    `yaml:"height" toml:"height"` // 0 = shape default
	Color  bool   `yaml:"color" toml:"color"`
	Scale  int    `yaml:"scale" toml:"scale"` // window pixels per panel pixel
}

// ClockConfig holds the wall clock settings.
type ClockConfig struct {
	Use24h bool   `yaml:"24h" toml:"24h"`
	Start  string `yaml:"start" toml:"start"` // RFC 3339, empty = now
}

// BatteryConfig is the battery state at startup.
type BatteryConfig struct {
	Percent  int  `yaml:"percent" toml:"percent"`
	Charging bool `yaml:"charging" toml:"charging"`
}

// LinkConfig is the phone link state at startup.
type LinkConfig struct {
	Connected bool `yaml:"connected" toml:"connected"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// KernelConfig holds the service poll intervals in milliseconds.
type KernelConfig struct {
	BatteryPoll uint64 `yaml:"battery_poll" toml:"battery_poll"`
	LinkPoll    uint64 `yaml:"link_poll" toml:"link_poll"`
}

// HeadlessConfig holds the no-window runner limits.
type HeadlessConfig struct {
	Hz    int    `yaml:"hz" toml:"hz"`
	Ticks uint64 `yaml:"ticks" toml:"ticks"` // 0 = run forever
}

// ScriptStep changes the simulated watch at a runner tick.
type ScriptStep struct {
	AtTick    uint64 `yaml:"at_tick" toml:"at_tick"`
	Battery   *int   `yaml:"battery,omitempty" toml:"battery,omitempty"`
	Charging  *bool  `yaml:"charging,omitempty" toml:"charging,omitempty"`
	Connected *bool  `yaml:"connected,omitempty" toml:"connected,omitempty"`
	Advance   string `yaml:"advance,omitempty" toml:"advance,omitempty"` // Go duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Shape: DefaultShape,
			Color: true,
			Scale: DefaultScale,
		},
		Clock: ClockConfig{
			Use24h: true,
		},
		Battery: BatteryConfig{
			Percent: DefaultChargePercent,
		},
		Link: LinkConfig{
			Connected: true,
		},
		Kernel: KernelConfig{
			BatteryPoll: DefaultBatteryPoll,
			LinkPoll:    DefaultLinkPoll,
		},
		Headless: HeadlessConfig{
			Hz: DefaultHz,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "brass", "config.yaml")
}

// LoadConfig loads configuration from path, or from ConfigPath when path is empty.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// Returns the default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path in the format chosen by its extension.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var ErrInvalid = errors.New("invalid config")

// Validate checks values a file or flag may have set.
func (c *Config) Validate() error {
	switch c.Display.Shape {
	case "rect", "round":
	default:
		return fmt.Errorf("display.shape %q: %w", c.Display.Shape, ErrInvalid)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("display size %dx%d: %w", c.Display.Width, c.Display.Height, ErrInvalid)
	}
	if c.Battery.Percent < 0 || c.Battery.Percent > 100 {
		return fmt.Errorf("battery.percent %d: %w", c.Battery.Percent, ErrInvalid)
	}
	if c.Headless.Hz < 0 {
		return fmt.Errorf("headless.hz %d: %w", c.Headless.Hz, ErrInvalid)
	}
	if _, err := c.StartTime(); err != nil {
		return fmt.Errorf("clock.start: %w", err)
	}
	var last uint64
	for i, s := range c.Script {
		if s.AtTick < last {
			return fmt.Errorf("script[%d]: at_tick %d before %d: %w", i, s.AtTick, last, ErrInvalid)
		}
		last = s.AtTick
		if s.Battery != nil && (*s.Battery < 0 || *s.Battery > 100) {
			return fmt.Errorf("script[%d]: battery %d: %w", i, *s.Battery, ErrInvalid)
		}
		if _, err := s.AdvanceDuration(); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}
	return nil
}

// StartTime parses Clock.Start. The zero time means "now".
func (c *Config) StartTime() (time.Time, error) {
	if c.Clock.Start == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, c.Clock.Start)
}

// AdvanceDuration parses Advance. Empty is zero.
func (s ScriptStep) AdvanceDuration() (time.Duration, error) {
	if s.Advance == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Advance)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("advance %s: %w", s.Advance, ErrInvalid)
	}
	return d, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
