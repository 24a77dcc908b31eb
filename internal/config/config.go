package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written in YAML as a Go duration string
// ("1ms", "16ms", "1s").
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a string like \"16ms\"")
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// FlameConfig sizes and paces the flame backdrop.
type FlameConfig struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Interval Duration `yaml:"interval"`
}

// Config holds the application configuration.
type Config struct {
	Display       string      `yaml:"display,omitempty"`
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	Caption       string      `yaml:"caption"`
	Fullscreen    bool        `yaml:"fullscreen"`
	HideCursor    bool        `yaml:"hide_cursor"`
	ExitOnInput   bool        `yaml:"exit_on_input"`
	FontPath      string      `yaml:"font_path,omitempty"`
	FontSize      float64     `yaml:"font_size"`
	FrameInterval Duration    `yaml:"frame_interval"`
	RotationSpeed float64     `yaml:"rotation_speed"`
	Flame         FlameConfig `yaml:"flame"`
	InhibitIdle   bool        `yaml:"inhibit_idle"`
	LogLevel      string      `yaml:"log_level"`
}

const (
	maxFlameSide     = 4096
	minFlameSide     = 4
	defaultFlameSide = 1024
)

func DefaultConfig() *Config {
	return &Config{
		Caption:       "cube3d clock",
		Fullscreen:    true,
		HideCursor:    true,
		ExitOnInput:   true,
		FontSize:      256,
		FrameInterval: Duration(time.Millisecond),
		RotationSpeed: 0.006,
		Flame: FlameConfig{
			Width:    defaultFlameSide,
			Height:   defaultFlameSide,
			Interval: Duration(16 * time.Millisecond),
		},
		LogLevel: "info",
	}
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks value ranges. Size 0x0 means the full screen; a single zero
// dimension is rejected.
func (c *Config) Validate() error {
	if c.Width < 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be >= 0")}
	}
	if c.Height < 0 {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be >= 0")}
	}
	if (c.Width == 0) != (c.Height == 0) {
		path := "width"
		if c.Height == 0 {
			path = "height"
		}
		return &ValidationError{Path: path, Err: fmt.Errorf("width and height must both be 0 or both be positive")}
	}
	if c.FontSize <= 0 {
		return &ValidationError{Path: "font_size", Err: fmt.Errorf("font_size must be > 0")}
	}
	if c.FrameInterval <= 0 {
		return &ValidationError{Path: "frame_interval", Err: fmt.Errorf("frame_interval must be > 0")}
	}
	if c.RotationSpeed <= 0 {
		return &ValidationError{Path: "rotation_speed", Err: fmt.Errorf("rotation_speed must be > 0")}
	}
	if c.Flame.Width < minFlameSide || c.Flame.Width > maxFlameSide {
		return &ValidationError{Path: "flame.width", Err: fmt.Errorf("flame.width must be between %d and %d", minFlameSide, maxFlameSide)}
	}
	if c.Flame.Height < minFlameSide || c.Flame.Height > maxFlameSide {
		return &ValidationError{Path: "flame.height", Err: fmt.Errorf("flame.height must be between %d and %d", minFlameSide, maxFlameSide)}
	}
	if c.Flame.Interval <= 0 {
		return &ValidationError{Path: "flame.interval", Err: fmt.Errorf("flame.interval must be > 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	for _, w := range c.validationWarnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return nil
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	if c.Fullscreen && c.Width != 0 {
		warnings = append(warnings, fmt.Sprintf("width/height %dx%d only apply until fullscreen is entered", c.Width, c.Height))
	}
	if strings.TrimSpace(c.Caption) == "" {
		warnings = append(warnings, "caption is empty; the window will have no title")
	}
	if !c.ExitOnInput && c.Fullscreen {
		warnings = append(warnings, "exit_on_input is off; only Escape or the window manager close the screensaver")
	}
	return warnings
}
