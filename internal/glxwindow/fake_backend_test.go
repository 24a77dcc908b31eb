package glxwindow

import (
	"errors"
	"fmt"

	"github.com/1broseidon/cubeclock/internal/platform"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	fakeRoot       platform.WindowID   = 0x100
	fakeWindow     platform.WindowID   = 0x400001
	fakeColormap   platform.ColormapID = 0x400002
	fakeDeleteAtom xproto.Atom         = 301
	fakeEscape     xproto.Keycode      = 9
)

// fakeBackend records every call and lets tests inject failures and events.
type fakeBackend struct {
	calls []string

	screenW, screenH uint32
	screenErr        error

	openErr      error
	rootErr      error
	negotiateErr error
	colormapErr  error
	windowErr    error
	registerErr  error
	currentErr   error

	events  []xgb.Event
	pointer platform.Pointer

	open        bool
	contexts    int
	windows     int
	colormaps   int
	swaps       int
	pointerHits int
	fullscreen  []bool
	resized     [][2]uint32
	cursor      []string
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{screenW: 1920, screenH: 1080}
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) Open() error {
	f.record("open")
	if f.openErr != nil {
		return f.openErr
	}
	f.open = true
	return nil
}

func (f *fakeBackend) Close() {
	f.record("close")
	f.open = false
}

func (f *fakeBackend) RootWindow() (platform.WindowID, error) {
	f.record("root")
	if f.rootErr != nil {
		return 0, f.rootErr
	}
	return fakeRoot, nil
}

func (f *fakeBackend) ScreenSize() (uint32, uint32, error) {
	f.record("screen-size")
	if f.screenErr != nil {
		return 0, 0, f.screenErr
	}
	return f.screenW, f.screenH, nil
}

func (f *fakeBackend) NegotiateContext() (platform.Visual, error) {
	f.record("negotiate")
	if f.negotiateErr != nil {
		return platform.Visual{}, f.negotiateErr
	}
	f.contexts++
	return platform.Visual{ID: 0x21, FBConfig: 0x8f, Depth: 24, Samples: 4, Modern: true}, nil
}

func (f *fakeBackend) MakeCurrent(windowID platform.WindowID) error {
	f.record("make-current")
	return f.currentErr
}

func (f *fakeBackend) IsDirect() (bool, error) {
	f.record("is-direct")
	return true, nil
}

func (f *fakeBackend) SwapBuffers(windowID platform.WindowID) {
	f.record("swap")
	f.swaps++
}

func (f *fakeBackend) ReleaseContext() {
	f.record("release-context")
}

func (f *fakeBackend) DestroyContext() {
	f.record("destroy-context")
	f.contexts--
}

func (f *fakeBackend) CreateColormap(visual platform.Visual) (platform.ColormapID, error) {
	f.record("create-colormap")
	if f.colormapErr != nil {
		return 0, f.colormapErr
	}
	f.colormaps++
	return fakeColormap, nil
}

func (f *fakeBackend) FreeColormap(cmap platform.ColormapID) {
	f.record("free-colormap")
	f.colormaps--
}

func (f *fakeBackend) CreateWindow(visual platform.Visual, cmap platform.ColormapID, width, height uint32) (platform.WindowID, error) {
	f.record("create-window %dx%d", width, height)
	if f.windowErr != nil {
		return 0, f.windowErr
	}
	f.windows++
	return fakeWindow, nil
}

func (f *fakeBackend) DestroyWindow(windowID platform.WindowID) {
	f.record("destroy-window")
	f.windows--
}

func (f *fakeBackend) RegisterClose(windowID platform.WindowID) (xproto.Atom, error) {
	f.record("register-close")
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	return fakeDeleteAtom, nil
}

func (f *fakeBackend) SetTitle(windowID platform.WindowID, title string) error {
	f.record("title %s", title)
	return nil
}

func (f *fakeBackend) Map(windowID platform.WindowID) {
	f.record("map")
}

func (f *fakeBackend) Sync() {
	f.record("sync")
}

func (f *fakeBackend) PollEvent() (xgb.Event, bool, error) {
	if len(f.events) == 0 {
		return nil, false, nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true, nil
}

func (f *fakeBackend) QueryPointer(windowID platform.WindowID) (platform.Pointer, error) {
	f.record("query-pointer")
	f.pointerHits++
	return f.pointer, nil
}

func (f *fakeBackend) IsEscape(keycode xproto.Keycode) bool {
	return keycode == fakeEscape
}

func (f *fakeBackend) SetFullscreenMonitors(windowID platform.WindowID) error {
	f.record("fullscreen-monitors")
	return nil
}

func (f *fakeBackend) SetFullscreenState(windowID platform.WindowID, fullscreen bool) error {
	f.record("fullscreen-state %t", fullscreen)
	f.fullscreen = append(f.fullscreen, fullscreen)
	return nil
}

func (f *fakeBackend) MoveResizeRaise(windowID platform.WindowID, width, height uint32) {
	f.record("move-resize-raise %dx%d", width, height)
	f.resized = append(f.resized, [2]uint32{width, height})
}

func (f *fakeBackend) HideCursor(windowID platform.WindowID) error {
	f.cursor = append(f.cursor, "hide")
	return nil
}

func (f *fakeBackend) ShowCursor(windowID platform.WindowID) error {
	f.cursor = append(f.cursor, "show")
	return nil
}

// leaked reports resources still held.
func (f *fakeBackend) leaked() error {
	if f.open || f.contexts != 0 || f.windows != 0 || f.colormaps != 0 {
		return fmt.Errorf("open=%t contexts=%d windows=%d colormaps=%d", f.open, f.contexts, f.windows, f.colormaps)
	}
	return nil
}

// redrawCall is one recorded redraw invocation.
type redrawCall struct {
	flags   RedrawFlags
	state   WindowState
	pointer PointerPosition
	// swapsBefore is the number of swaps the backend had seen when the
	// callback ran.
	swapsBefore int
}

type recorder struct {
	backend *fakeBackend
	redraws []redrawCall
	events  []xgb.Event
}

func (r *recorder) redraw(w *Window, flags RedrawFlags, state WindowState, pointer PointerPosition) {
	r.redraws = append(r.redraws, redrawCall{flags: flags, state: state, pointer: pointer, swapsBefore: r.backend.swaps})
}

func (r *recorder) onEvent(w *Window, ev xgb.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(flag RedrawFlags) int {
	n := 0
	for _, c := range r.redraws {
		if c.flags.Has(flag) {
			n++
		}
	}
	return n
}

var errNative = errors.New("native failure")
