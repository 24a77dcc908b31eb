package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// keysymEscape is XK_Escape.
const keysymEscape xproto.Keysym = 0xff1b

// WindowEventMask is the set of events a clock window listens for.
const WindowEventMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskButtonPress

// CreateColormap allocates a colormap for visual on the root window.
func (c *Connection) CreateColormap(visual xproto.Visualid) (xproto.Colormap, error) {
	cmap, err := xproto.NewColormapId(c.Conn())
	if err != nil {
		return 0, err
	}
	if err := xproto.CreateColormapChecked(c.Conn(), xproto.ColormapAllocNone, cmap, c.Root, visual).Check(); err != nil {
		return 0, err
	}
	return cmap, nil
}

// FreeColormap releases a colormap created by CreateColormap.
func (c *Connection) FreeColormap(cmap xproto.Colormap) {
	xproto.FreeColormap(c.Conn(), cmap)
}

// CreateWindow creates an unmapped top-level InputOutput window at (0,0).
func (c *Connection) CreateWindow(visual xproto.Visualid, depth byte, cmap xproto.Colormap, width, height uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.Conn())
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		c.Conn(),
		depth,
		wid,
		c.Root,
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		visual,
		xproto.CwBorderPixel|xproto.CwEventMask|xproto.CwColormap,
		// Value list follows mask bit order: border pixel, event mask, colormap.
		[]uint32{0, WindowEventMask, uint32(cmap)},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

// DestroyWindow destroys a window created by CreateWindow.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xproto.DestroyWindow(c.Conn(), windowID)
}

// RegisterDeleteProtocol opts windowID into WM_DELETE_WINDOW and returns the
// atom the window manager will put in data[0] of the close ClientMessage.
func (c *Connection) RegisterDeleteProtocol(windowID xproto.Window) (xproto.Atom, error) {
	if err := icccm.WmProtocolsSet(c.XUtil, windowID, []string{"WM_DELETE_WINDOW"}); err != nil {
		return 0, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}
	return xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
}

// SetTitle sets both the ICCCM and EWMH window names.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	if err := icccm.WmNameSet(c.XUtil, windowID, title); err != nil {
		return err
	}
	return ewmh.WmNameSet(c.XUtil, windowID, title)
}

// MapWindow shows a window.
func (c *Connection) MapWindow(windowID xproto.Window) {
	xproto.MapWindow(c.Conn(), windowID)
}

// MoveResizeRaise places windowID at (x,y) with the given size and raises it
// to the top of the stack.
func (c *Connection) MoveResizeRaise(windowID xproto.Window, x, y int, width, height uint32) {
	win := xwindow.New(c.XUtil, windowID)
	win.MoveResize(x, y, int(width), int(height))
	win.Map()
	win.Stack(xproto.StackModeAbove)
}

// QueryPointer returns the pointer position relative to the root window and
// to windowID.
func (c *Connection) QueryPointer(windowID xproto.Window) (rootX, rootY, winX, winY int32, err error) {
	reply, err := xproto.QueryPointer(c.Conn(), windowID).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int32(reply.RootX), int32(reply.RootY), int32(reply.WinX), int32(reply.WinY), nil
}

// IsEscape reports whether keycode maps to Escape in the first keysym column.
func (c *Connection) IsEscape(keycode xproto.Keycode) bool {
	return keybind.KeysymGet(c.XUtil, keycode, 0) == keysymEscape
}
