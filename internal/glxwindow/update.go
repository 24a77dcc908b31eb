package glxwindow

import (
	"github.com/BurntSushi/xgb/xproto"
)

// Update performs one tick: with no event queued it samples the pointer and
// redraws, otherwise it handles exactly one event. It returns ErrWindowClosed
// once the window is gone and nil otherwise. Update never blocks on the
// event queue.
func (w *Window) Update() error {
	if !w.live() {
		return ErrWindowClosed
	}

	ev, ok, err := w.backend.PollEvent()
	if err != nil {
		w.logger.Debug("x11 protocol error", "error", err)
		return nil
	}
	if !ok {
		w.idle()
		return nil
	}

	if w.events != nil {
		w.events(w, ev)
		if !w.live() {
			return ErrWindowClosed
		}
	}

	switch e := ev.(type) {
	case xproto.ExposeEvent:
		// Only the last expose of a burst repaints.
		if e.Count == 0 {
			w.redrawAndSwap(0)
		}
	case xproto.ConfigureNotifyEvent:
		width, height := uint32(e.Width), uint32(e.Height)
		if width != w.state.Width || height != w.state.Height {
			w.state = WindowState{Width: width, Height: height}
			w.redrawAndSwap(RedrawResize)
		}
	case xproto.ClientMessageEvent:
		if e.Format == 32 && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == w.deleteAtom {
			w.Destroy()
			return ErrWindowClosed
		}
	case xproto.KeyPressEvent:
		if w.events != nil {
			break
		}
		if w.backend.IsEscape(e.Detail) {
			w.Destroy()
			return ErrWindowClosed
		}
	}
	return nil
}

func (w *Window) idle() {
	pointer, err := w.backend.QueryPointer(w.id)
	if err != nil {
		w.logger.Debug("pointer query failed", "error", err)
	} else {
		w.pointer = pointer
	}
	w.redrawAndSwap(0)
}
