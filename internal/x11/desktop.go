package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// _NET_WM_STATE actions.
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
)

// sourceIndication marks EWMH requests as coming from a normal application.
const sourceIndication = 1

// internAtom resolves an atom name, creating it if needed.
func (c *Connection) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// sendRootMessage sends a format-32 client message about windowID to the root
// window per EWMH. The message is built by hand because the xgbutil ewmh
// request helpers panic on this library version (uint vs int type assertion).
func (c *Connection) sendRootMessage(windowID xproto.Window, messageType string, data [5]uint32) error {
	atom, err := c.internAtom(messageType)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}

	return xproto.SendEventChecked(
		c.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// SetFullscreenMonitors asks the window manager to stretch windowID's
// fullscreen state over the monitors named by edges.
func (c *Connection) SetFullscreenMonitors(windowID xproto.Window, edges FullscreenEdges) error {
	return c.sendRootMessage(windowID, "_NET_WM_FULLSCREEN_MONITORS", [5]uint32{
		edges.Top, edges.Bottom, edges.Left, edges.Right, sourceIndication,
	})
}

// SetFullscreenState adds or removes _NET_WM_STATE_FULLSCREEN on windowID.
func (c *Connection) SetFullscreenState(windowID xproto.Window, fullscreen bool) error {
	stateAtom, err := c.internAtom("_NET_WM_STATE_FULLSCREEN")
	if err != nil {
		return err
	}

	action := uint32(netWMStateRemove)
	if fullscreen {
		action = netWMStateAdd
	}
	return c.sendRootMessage(windowID, "_NET_WM_STATE", [5]uint32{
		action, uint32(stateAtom), 0, sourceIndication, 0,
	})
}
