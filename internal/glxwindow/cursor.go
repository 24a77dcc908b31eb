package glxwindow

// HideCursor hides the pointer over the window. It does nothing before
// Create succeeds or after Destroy.
func (w *Window) HideCursor() error {
	if w == nil || w.id == 0 {
		return nil
	}
	return w.backend.HideCursor(w.id)
}

// ShowCursor undoes HideCursor.
func (w *Window) ShowCursor() error {
	if w == nil || w.id == 0 {
		return nil
	}
	return w.backend.ShowCursor(w.id)
}
