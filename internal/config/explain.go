package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	width
//	height
//	caption
//	fullscreen
//	hide_cursor
//	exit_on_input
//	font_path
//	font_size
//	frame_interval
//	rotation_speed
//	flame
//	flame.width
//	flame.height
//	flame.interval
//	inhibit_idle
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "flame" {
		return lookupFlame(cfg.Flame, path, parts[1:])
	}
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "display":
		return cfg.Display, nil
	case "width":
		return cfg.Width, nil
	case "height":
		return cfg.Height, nil
	case "caption":
		return cfg.Caption, nil
	case "fullscreen":
		return cfg.Fullscreen, nil
	case "hide_cursor":
		return cfg.HideCursor, nil
	case "exit_on_input":
		return cfg.ExitOnInput, nil
	case "font_path":
		return cfg.FontPath, nil
	case "font_size":
		return cfg.FontSize, nil
	case "frame_interval":
		return cfg.FrameInterval.String(), nil
	case "rotation_speed":
		return cfg.RotationSpeed, nil
	case "inhibit_idle":
		return cfg.InhibitIdle, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupFlame(flame FlameConfig, path string, rest []string) (any, error) {
	if len(rest) == 0 {
		return flame, nil
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch rest[0] {
	case "width":
		return flame.Width, nil
	case "height":
		return flame.Height, nil
	case "interval":
		return flame.Interval.String(), nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
