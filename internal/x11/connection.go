package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	xfixesReady bool
}

// NewConnection establishes a connection to the X11 server named by display
// (empty means $DISPLAY) and initializes the keyboard mapping.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Keysym lookups (Escape handling) need the keyboard mapping loaded.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Conn returns the raw xgb connection.
func (c *Connection) Conn() *xgb.Conn {
	return c.XUtil.Conn()
}

// Screen returns the default screen info.
func (c *Connection) Screen() *xproto.ScreenInfo {
	return c.XUtil.Screen()
}

// ScreenNumber returns the index of the default screen.
func (c *Connection) ScreenNumber() int {
	return c.Conn().DefaultScreen
}

// ScreenSize returns the resolution of the default screen.
func (c *Connection) ScreenSize() (width, height uint32, err error) {
	screen := c.Screen()
	if screen == nil {
		return 0, 0, fmt.Errorf("no default screen")
	}
	return uint32(screen.WidthInPixels), uint32(screen.HeightInPixels), nil
}

// VisualDepth returns the depth the server advertises for visual on the
// default screen.
func (c *Connection) VisualDepth(visual xproto.Visualid) (byte, error) {
	for _, depth := range c.Screen().AllowedDepths {
		for _, v := range depth.Visuals {
			if v.VisualId == visual {
				return depth.Depth, nil
			}
		}
	}
	return 0, fmt.Errorf("visual 0x%x not found on default screen", visual)
}

// PollEvent moves everything xgb has buffered into the XUtil queue without
// blocking, then dequeues at most one event. ok is false when the queue is
// empty. Protocol errors are returned with a nil event.
func (c *Connection) PollEvent() (xgb.Event, bool, error) {
	xevent.Read(c.XUtil, false)
	if xevent.Empty(c.XUtil) {
		return nil, false, nil
	}
	ev, xerr := xevent.Dequeue(c.XUtil)
	if xerr != nil {
		return nil, true, xerr
	}
	return ev, true, nil
}

// Sync performs a round trip so every request sent so far has been processed
// by the server.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// ScreenSizeStandalone returns the default screen resolution using a new
// temporary X11 connection.
func ScreenSizeStandalone(display string) (uint32, uint32, error) {
	conn, err := NewConnection(display)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	return conn.ScreenSize()
}
