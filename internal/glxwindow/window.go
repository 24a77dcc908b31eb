// Package glxwindow owns a single X11 window with a GLX context and drives
// it one tick at a time: Create, then Update in a loop, then Destroy.
package glxwindow

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/cubeclock/internal/glx"
	"github.com/1broseidon/cubeclock/internal/platform"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// RedrawFlags tells the redraw callback what changed since its last call.
type RedrawFlags uint8

const (
	RedrawInit RedrawFlags = 1 << iota
	RedrawDestroy
	RedrawResize
)

// Has reports whether all bits of flag are set.
func (f RedrawFlags) Has(flag RedrawFlags) bool {
	return f&flag == flag
}

func (f RedrawFlags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	for _, n := range []struct {
		flag RedrawFlags
		name string
	}{{RedrawInit, "init"}, {RedrawDestroy, "destroy"}, {RedrawResize, "resize"}} {
		if f.Has(n.flag) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// WindowState is the window size as last reported by the window manager.
type WindowState struct {
	Width  uint32
	Height uint32
}

// PointerPosition is the pointer position sampled on the last idle tick.
type PointerPosition = platform.Pointer

// RedrawFunc renders one frame. It is never called concurrently with itself.
type RedrawFunc func(w *Window, flags RedrawFlags, state WindowState, pointer PointerPosition)

// EventsFunc observes every dequeued event before built-in handling.
type EventsFunc func(w *Window, ev xgb.Event)

// Options configures Create.
type Options struct {
	// Width and Height of zero both mean the screen resolution.
	Width   uint32
	Height  uint32
	Caption string

	// Redraw is required.
	Redraw RedrawFunc
	// Events is optional. When set, Escape is not handled internally.
	Events EventsFunc

	Logger *slog.Logger
}

// Window is a top-level GL window. It must be used from a single goroutine.
type Window struct {
	backend platform.Backend
	logger  *slog.Logger

	opened     bool
	root       platform.WindowID
	visual     platform.Visual
	hasContext bool
	colormap   platform.ColormapID
	id         platform.WindowID
	deleteAtom xproto.Atom

	state   WindowState
	pointer PointerPosition

	redraw RedrawFunc
	events EventsFunc
}

// Create opens a display session through backend, negotiates a GL context,
// creates and maps the window, and draws the first frame. On failure every
// resource acquired so far is released before the error is returned.
func Create(backend platform.Backend, opts Options) (*Window, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidArgument)
	}
	if opts.Redraw == nil {
		return nil, fmt.Errorf("%w: redraw callback is required", ErrInvalidArgument)
	}
	if (opts.Width == 0) != (opts.Height == 0) {
		return nil, fmt.Errorf("%w: size %dx%d has exactly one zero dimension", ErrInvalidArgument, opts.Width, opts.Height)
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		var err error
		width, height, err = backend.ScreenSize()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolutionQueryFailed, err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		backend: backend,
		logger:  logger,
		state:   WindowState{Width: width, Height: height},
		redraw:  opts.Redraw,
		events:  opts.Events,
	}
	if err := w.init(opts.Caption); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}

func (w *Window) init(caption string) error {
	b := w.backend

	if err := b.Open(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUnavailable, err)
	}
	w.opened = true

	root, err := b.RootWindow()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRootWindowUnavailable, err)
	}
	w.root = root

	visual, err := b.NegotiateContext()
	if err != nil {
		return negotiationError(err)
	}
	w.visual = visual
	w.hasContext = true
	w.logger.Debug("negotiated GL context",
		"visual", fmt.Sprintf("0x%x", visual.ID),
		"fbconfig", fmt.Sprintf("0x%x", visual.FBConfig),
		"depth", visual.Depth,
		"samples", visual.Samples,
		"modern", visual.Modern)

	cmap, err := b.CreateColormap(visual)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrColormapCreationFailed, err)
	}
	w.colormap = cmap

	id, err := b.CreateWindow(visual, cmap, w.state.Width, w.state.Height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindowCreationFailed, err)
	}
	w.id = id

	atom, err := b.RegisterClose(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindowCreationFailed, err)
	}
	w.deleteAtom = atom

	if caption != "" {
		if err := b.SetTitle(id, caption); err != nil {
			w.logger.Warn("failed to set window title", "error", err)
		}
	}

	b.Map(id)
	b.Sync()

	if err := b.MakeCurrent(id); err != nil {
		return fmt.Errorf("%w: %w", ErrContextNegotiationFailed, err)
	}
	if direct, err := b.IsDirect(); err != nil {
		w.logger.Warn("cannot query direct rendering", "error", err)
	} else if !direct {
		w.logger.Info("direct rendering is not supported")
	}

	w.redrawAndSwap(RedrawInit | RedrawResize)
	return nil
}

func negotiationError(err error) error {
	switch {
	case errors.Is(err, glx.ErrUnsupportedVersion):
		return fmt.Errorf("%w: %w", ErrUnsupportedGraphicsVersion, err)
	case errors.Is(err, glx.ErrNoFBConfig):
		return fmt.Errorf("%w: %w", ErrNoFramebufferConfig, err)
	default:
		return fmt.Errorf("%w: %w", ErrContextNegotiationFailed, err)
	}
}

// Destroy releases the context, window, colormap and display session, in
// that order. The redraw callback sees RedrawDestroy first if a context
// exists. Destroy is idempotent and leaves the handle zeroed.
func (w *Window) Destroy() {
	if w == nil || w.backend == nil {
		return
	}
	b := w.backend

	if w.hasContext {
		w.redraw(w, RedrawDestroy, w.state, w.pointer)
		b.ReleaseContext()
		b.DestroyContext()
	}
	if w.id != 0 {
		b.DestroyWindow(w.id)
	}
	if w.colormap != 0 {
		b.FreeColormap(w.colormap)
	}
	if w.opened {
		b.Close()
	}

	*w = Window{}
}

// ID returns the window id, or 0 once destroyed.
func (w *Window) ID() platform.WindowID { return w.id }

// State returns the current window size.
func (w *Window) State() WindowState { return w.state }

// Pointer returns the last sampled pointer position.
func (w *Window) Pointer() PointerPosition { return w.pointer }

func (w *Window) live() bool {
	return w != nil && w.backend != nil && w.id != 0 && w.hasContext
}

func (w *Window) redrawAndSwap(flags RedrawFlags) {
	w.redraw(w, flags, w.state, w.pointer)
	w.backend.SwapBuffers(w.id)
}
