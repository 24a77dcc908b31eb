//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/cubeclock/internal/gl"
	"github.com/1broseidon/cubeclock/internal/glx"
	"github.com/1broseidon/cubeclock/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend implements Backend on an X11 connection with GLX contexts
// created over the wire.
type LinuxBackend struct {
	display string
	logger  *slog.Logger

	conn       *x11.Connection
	negotiator *glx.Negotiator
	ctx        *glx.Context
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend returns a backend for display (empty means $DISPLAY). No
// connection is made until Open.
func NewLinuxBackend(display string, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{display: display, logger: logger}
}

// Open connects to the X server.
func (b *LinuxBackend) Open() error {
	conn, err := x11.NewConnection(b.display)
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	b.conn = conn
	b.negotiator = glx.NewNegotiator(conn.Conn(), conn.ScreenNumber(), b.logger)
	return nil
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
		b.negotiator = nil
	}
}

// RootWindow returns the root window of the default screen.
func (b *LinuxBackend) RootWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	if conn.Root == 0 {
		return 0, fmt.Errorf("default screen has no root window")
	}
	return WindowID(conn.Root), nil
}

// ScreenSize returns the default screen resolution. Without an open session a
// temporary connection is used.
func (b *LinuxBackend) ScreenSize() (uint32, uint32, error) {
	if b.conn == nil {
		return x11.ScreenSizeStandalone(b.display)
	}
	return b.conn.ScreenSize()
}

// NegotiateContext picks a visual and creates the GLX context.
func (b *LinuxBackend) NegotiateContext() (Visual, error) {
	conn, err := b.connection()
	if err != nil {
		return Visual{}, err
	}

	res, err := b.negotiator.Negotiate()
	if err != nil {
		return Visual{}, err
	}
	b.ctx = res.Context
	b.logger.Debug("glx context created", "context", res.Context.ID(), "modern", res.Modern)

	depth, err := conn.VisualDepth(res.Visual)
	if err != nil {
		b.DestroyContext()
		return Visual{}, err
	}

	return Visual{
		ID:       uint32(res.Visual),
		FBConfig: res.FBConfigID,
		Depth:    depth,
		Samples:  res.Samples,
		Modern:   res.Modern,
	}, nil
}

// MakeCurrent binds the context to windowID.
func (b *LinuxBackend) MakeCurrent(windowID WindowID) error {
	if b.ctx == nil {
		return fmt.Errorf("no glx context")
	}
	return b.ctx.MakeCurrent(xproto.Window(windowID))
}

// IsDirect reports whether the context renders directly.
func (b *LinuxBackend) IsDirect() (bool, error) {
	if b.ctx == nil {
		return false, fmt.Errorf("no glx context")
	}
	return b.ctx.IsDirect()
}

// SwapBuffers presents windowID's back buffer.
func (b *LinuxBackend) SwapBuffers(windowID WindowID) {
	if b.current() {
		b.ctx.SwapBuffers(xproto.Window(windowID))
	}
}

// ReleaseContext unbinds the context.
func (b *LinuxBackend) ReleaseContext() {
	if b.ctx == nil {
		return
	}
	if err := b.ctx.Release(); err != nil {
		b.logger.Debug("glx release failed", "error", err)
	}
}

// DestroyContext frees the context.
func (b *LinuxBackend) DestroyContext() {
	if b.ctx != nil {
		b.ctx.Destroy()
		b.ctx = nil
	}
}

// CreateColormap allocates a colormap for visual.
func (b *LinuxBackend) CreateColormap(visual Visual) (ColormapID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	cmap, err := conn.CreateColormap(xproto.Visualid(visual.ID))
	if err != nil {
		return 0, err
	}
	return ColormapID(cmap), nil
}

// FreeColormap releases cmap.
func (b *LinuxBackend) FreeColormap(cmap ColormapID) {
	if b.conn != nil {
		b.conn.FreeColormap(xproto.Colormap(cmap))
	}
}

// CreateWindow creates an unmapped top-level window.
func (b *LinuxBackend) CreateWindow(visual Visual, cmap ColormapID, width, height uint32) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.CreateWindow(xproto.Visualid(visual.ID), visual.Depth, xproto.Colormap(cmap), width, height)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// DestroyWindow destroys windowID.
func (b *LinuxBackend) DestroyWindow(windowID WindowID) {
	if b.conn != nil {
		b.conn.DestroyWindow(xproto.Window(windowID))
	}
}

// RegisterClose opts windowID into WM_DELETE_WINDOW.
func (b *LinuxBackend) RegisterClose(windowID WindowID) (xproto.Atom, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.RegisterDeleteProtocol(xproto.Window(windowID))
}

// SetTitle sets the window title.
func (b *LinuxBackend) SetTitle(windowID WindowID, title string) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetTitle(xproto.Window(windowID), title)
}

// Map shows windowID.
func (b *LinuxBackend) Map(windowID WindowID) {
	if b.conn != nil {
		b.conn.MapWindow(xproto.Window(windowID))
	}
}

// Sync waits for the server to process all pending requests.
func (b *LinuxBackend) Sync() {
	if b.conn != nil {
		b.conn.Sync()
	}
}

// PollEvent dequeues at most one event without blocking.
func (b *LinuxBackend) PollEvent() (xgb.Event, bool, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, false, err
	}
	return conn.PollEvent()
}

// QueryPointer returns the pointer position.
func (b *LinuxBackend) QueryPointer(windowID WindowID) (Pointer, error) {
	conn, err := b.connection()
	if err != nil {
		return Pointer{}, err
	}
	rootX, rootY, winX, winY, err := conn.QueryPointer(xproto.Window(windowID))
	if err != nil {
		return Pointer{}, err
	}
	return Pointer{RootX: rootX, RootY: rootY, WinX: winX, WinY: winY}, nil
}

// IsEscape reports whether keycode is the Escape key.
func (b *LinuxBackend) IsEscape(keycode xproto.Keycode) bool {
	if b.conn == nil {
		return false
	}
	return b.conn.IsEscape(keycode)
}

// SetFullscreenMonitors spans windowID's fullscreen state across every
// active monitor. When RandR reports no monitors the message is not sent and
// the window manager's default fullscreen region applies.
func (b *LinuxBackend) SetFullscreenMonitors(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	monitors, err := conn.GetMonitors()
	edges, ok := fullscreenEdges(monitors, err)
	if !ok {
		b.logger.Debug("no monitors reported, skipping _NET_WM_FULLSCREEN_MONITORS", "error", err)
		return nil
	}
	return conn.SetFullscreenMonitors(xproto.Window(windowID), edges)
}

func fullscreenEdges(monitors []x11.Monitor, err error) (x11.FullscreenEdges, bool) {
	if err != nil {
		return x11.FullscreenEdges{}, false
	}
	return x11.SpanningEdges(monitors)
}

// SetFullscreenState adds or removes _NET_WM_STATE_FULLSCREEN.
func (b *LinuxBackend) SetFullscreenState(windowID WindowID, fullscreen bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetFullscreenState(xproto.Window(windowID), fullscreen)
}

// MoveResizeRaise places windowID at the origin with the given size and
// raises it.
func (b *LinuxBackend) MoveResizeRaise(windowID WindowID, width, height uint32) {
	if b.conn != nil {
		b.conn.MoveResizeRaise(xproto.Window(windowID), 0, 0, width, height)
	}
}

// HideCursor hides the pointer over windowID.
func (b *LinuxBackend) HideCursor(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.HideCursor(xproto.Window(windowID))
}

// ShowCursor restores the pointer over windowID.
func (b *LinuxBackend) ShowCursor(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ShowCursor(xproto.Window(windowID))
}

// current reports whether a context is bound; GLX rejects render requests
// with a zero context tag.
func (b *LinuxBackend) current() bool {
	return b.ctx != nil && b.ctx.Current()
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

var _ gl.Transport = (*LinuxBackend)(nil)

// Render submits a batch of GL render commands to the current context.
func (b *LinuxBackend) Render(data []byte) {
	if b.current() {
		b.ctx.Render(data)
	}
}

// RenderLarge submits one large GL render command.
func (b *LinuxBackend) RenderLarge(data []byte) {
	if b.current() {
		b.ctx.RenderLarge(data)
	}
}

// GenTextures allocates texture names in the current context.
func (b *LinuxBackend) GenTextures(n int) ([]uint32, error) {
	if b.ctx == nil {
		return nil, fmt.Errorf("no glx context")
	}
	return b.ctx.GenTextures(n)
}

// DeleteTextures frees texture names in the current context.
func (b *LinuxBackend) DeleteTextures(ids []uint32) {
	if b.current() {
		b.ctx.DeleteTextures(ids)
	}
}
