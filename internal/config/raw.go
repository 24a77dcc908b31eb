package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawFlameConfig struct {
	Width    *int      `yaml:"width"`
	Height   *int      `yaml:"height"`
	Interval *Duration `yaml:"interval"`
}

type RawConfig struct {
	Include       IncludeList     `yaml:"include"`
	Display       *string         `yaml:"display"`
	Width         *int            `yaml:"width"`
	Height        *int            `yaml:"height"`
	Caption       *string         `yaml:"caption"`
	Fullscreen    *bool           `yaml:"fullscreen"`
	HideCursor    *bool           `yaml:"hide_cursor"`
	ExitOnInput   *bool           `yaml:"exit_on_input"`
	FontPath      *string         `yaml:"font_path"`
	FontSize      *float64        `yaml:"font_size"`
	FrameInterval *Duration       `yaml:"frame_interval"`
	RotationSpeed *float64        `yaml:"rotation_speed"`
	Flame         *RawFlameConfig `yaml:"flame"`
	InhibitIdle   *bool           `yaml:"inhibit_idle"`
	LogLevel      *string         `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Caption != nil {
		out.Caption = overlay.Caption
	}
	if overlay.Fullscreen != nil {
		out.Fullscreen = overlay.Fullscreen
	}
	if overlay.HideCursor != nil {
		out.HideCursor = overlay.HideCursor
	}
	if overlay.ExitOnInput != nil {
		out.ExitOnInput = overlay.ExitOnInput
	}
	if overlay.FontPath != nil {
		out.FontPath = overlay.FontPath
	}
	if overlay.FontSize != nil {
		out.FontSize = overlay.FontSize
	}
	if overlay.FrameInterval != nil {
		out.FrameInterval = overlay.FrameInterval
	}
	if overlay.RotationSpeed != nil {
		out.RotationSpeed = overlay.RotationSpeed
	}
	if overlay.Flame != nil {
		out.Flame = mergeRawFlame(out.Flame, overlay.Flame)
	}
	if overlay.InhibitIdle != nil {
		out.InhibitIdle = overlay.InhibitIdle
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}

func mergeRawFlame(base *RawFlameConfig, overlay *RawFlameConfig) *RawFlameConfig {
	out := RawFlameConfig{}
	if base != nil {
		out = *base
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Interval != nil {
		out.Interval = overlay.Interval
	}
	return &out
}
