package platform

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// ColormapID identifies a colormap.
type ColormapID uint32

// Visual is the surface format a context was negotiated for.
type Visual struct {
	ID uint32
	// FBConfig is zero for legacy contexts.
	FBConfig uint32
	Depth    byte
	Samples  uint32
	Modern   bool
}

// Pointer is a pointer position relative to the root window and to a window.
type Pointer struct {
	RootX int32
	RootY int32
	WinX  int32
	WinY  int32
}

// Backend abstracts the window-system and GL-binding calls a single
// GL window needs. One Backend serves one window; Open acquires the display
// session and Close releases it.
type Backend interface {
	Open() error
	Close()
	RootWindow() (WindowID, error)
	// ScreenSize works with or without an open session.
	ScreenSize() (width, height uint32, err error)

	NegotiateContext() (Visual, error)
	MakeCurrent(windowID WindowID) error
	IsDirect() (bool, error)
	SwapBuffers(windowID WindowID)
	ReleaseContext()
	DestroyContext()

	CreateColormap(visual Visual) (ColormapID, error)
	FreeColormap(cmap ColormapID)
	CreateWindow(visual Visual, cmap ColormapID, width, height uint32) (WindowID, error)
	DestroyWindow(windowID WindowID)
	RegisterClose(windowID WindowID) (xproto.Atom, error)
	SetTitle(windowID WindowID, title string) error
	Map(windowID WindowID)
	Sync()

	// PollEvent returns the next queued event without blocking; ok is false
	// when none is queued.
	PollEvent() (ev xgb.Event, ok bool, err error)
	QueryPointer(windowID WindowID) (Pointer, error)
	IsEscape(keycode xproto.Keycode) bool

	SetFullscreenMonitors(windowID WindowID) error
	SetFullscreenState(windowID WindowID, fullscreen bool) error
	MoveResizeRaise(windowID WindowID, width, height uint32)
	HideCursor(windowID WindowID) error
	ShowCursor(windowID WindowID) error
}
