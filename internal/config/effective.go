package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Width != nil {
		cfg.Width = *raw.Width
	}
	if raw.Height != nil {
		cfg.Height = *raw.Height
	}
	if raw.Caption != nil {
		cfg.Caption = *raw.Caption
	}
	if raw.Fullscreen != nil {
		cfg.Fullscreen = *raw.Fullscreen
	}
	if raw.HideCursor != nil {
		cfg.HideCursor = *raw.HideCursor
	}
	if raw.ExitOnInput != nil {
		cfg.ExitOnInput = *raw.ExitOnInput
	}
	if raw.FontPath != nil {
		cfg.FontPath = *raw.FontPath
	}
	if raw.FontSize != nil {
		cfg.FontSize = *raw.FontSize
	}
	if raw.FrameInterval != nil {
		cfg.FrameInterval = *raw.FrameInterval
	}
	if raw.RotationSpeed != nil {
		cfg.RotationSpeed = *raw.RotationSpeed
	}
	if raw.Flame != nil {
		if raw.Flame.Width != nil {
			cfg.Flame.Width = *raw.Flame.Width
		}
		if raw.Flame.Height != nil {
			cfg.Flame.Height = *raw.Flame.Height
		}
		if raw.Flame.Interval != nil {
			cfg.Flame.Interval = *raw.Flame.Interval
		}
	}
	if raw.InhibitIdle != nil {
		cfg.InhibitIdle = *raw.InhibitIdle
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}
