package glxwindow

import "fmt"

// EnterFullscreenPopup asks the window manager for borderless fullscreen
// spanning every monitor.
func (w *Window) EnterFullscreenPopup() error {
	if !w.live() {
		return ErrContextRequired
	}
	if _, _, err := w.backend.ScreenSize(); err != nil {
		return fmt.Errorf("%w: %w", ErrResolutionQueryFailed, err)
	}

	if err := w.backend.SetFullscreenMonitors(w.id); err != nil {
		return fmt.Errorf("failed to send _NET_WM_FULLSCREEN_MONITORS: %w", err)
	}
	if err := w.backend.SetFullscreenState(w.id, true); err != nil {
		return fmt.Errorf("failed to set _NET_WM_STATE_FULLSCREEN: %w", err)
	}
	w.backend.Sync()
	return nil
}

// ExitFullscreenPopup leaves fullscreen and places the window at the origin
// with the given size. Zero for both dimensions means the screen resolution.
func (w *Window) ExitFullscreenPopup(width, height uint32) error {
	if !w.live() {
		return ErrContextRequired
	}
	if (width == 0) != (height == 0) {
		return fmt.Errorf("%w: size %dx%d has exactly one zero dimension", ErrInvalidArgument, width, height)
	}
	if width == 0 {
		var err error
		width, height, err = w.backend.ScreenSize()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResolutionQueryFailed, err)
		}
	}

	if err := w.backend.SetFullscreenState(w.id, false); err != nil {
		return fmt.Errorf("failed to clear _NET_WM_STATE_FULLSCREEN: %w", err)
	}
	w.backend.MoveResizeRaise(w.id, width, height)
	w.backend.Sync()
	return nil
}
