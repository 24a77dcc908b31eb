package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
)

// initXFixes negotiates XFixes 4.0, the first version with cursor hiding.
// The server ignores HideCursor from clients that skipped the version query.
func (c *Connection) initXFixes() error {
	if c.xfixesReady {
		return nil
	}
	if err := xfixes.Init(c.Conn()); err != nil {
		return fmt.Errorf("xfixes init failed: %w", err)
	}
	if _, err := xfixes.QueryVersion(c.Conn(), 4, 0).Reply(); err != nil {
		return fmt.Errorf("xfixes version query failed: %w", err)
	}
	c.xfixesReady = true
	return nil
}

// HideCursor hides the pointer while it is over windowID. The request is
// checked so the change is visible before HideCursor returns.
func (c *Connection) HideCursor(windowID xproto.Window) error {
	if err := c.initXFixes(); err != nil {
		return err
	}
	return xfixes.HideCursorChecked(c.Conn(), windowID).Check()
}

// ShowCursor undoes HideCursor.
func (c *Connection) ShowCursor(windowID xproto.Window) error {
	if err := c.initXFixes(); err != nil {
		return err
	}
	return xfixes.ShowCursorChecked(c.Conn(), windowID).Check()
}
