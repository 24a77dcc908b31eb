package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// FullscreenEdges holds the monitor indices passed in a
// _NET_WM_FULLSCREEN_MONITORS request.
type FullscreenEdges struct {
	Top    uint32
	Bottom uint32
	Left   uint32
	Right  uint32
}

// GetMonitors retrieves all active monitors using XRandR. Indices follow the
// order of active CRTCs, which is what window managers use for
// _NET_WM_FULLSCREEN_MONITORS.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		id := len(monitors)
		name := fmt.Sprintf("Monitor%d", id)
		if out, err := randr.GetOutputInfo(c.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     id,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	return monitors, nil
}

// SpanningEdges picks, for each side of the desktop, the monitor that owns
// that edge so the fullscreen region covers every monitor.
func SpanningEdges(monitors []Monitor) (FullscreenEdges, bool) {
	if len(monitors) == 0 {
		return FullscreenEdges{}, false
	}

	top, bottom, left, right := 0, 0, 0, 0
	for i, m := range monitors {
		if m.Y < monitors[top].Y {
			top = i
		}
		if m.Y+m.Height > monitors[bottom].Y+monitors[bottom].Height {
			bottom = i
		}
		if m.X < monitors[left].X {
			left = i
		}
		if m.X+m.Width > monitors[right].X+monitors[right].Width {
			right = i
		}
	}

	return FullscreenEdges{
		Top:    uint32(monitors[top].ID),
		Bottom: uint32(monitors[bottom].ID),
		Left:   uint32(monitors[left].ID),
		Right:  uint32(monitors[right].ID),
	}, true
}
