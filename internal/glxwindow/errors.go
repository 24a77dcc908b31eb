package glxwindow

import "errors"

var (
	ErrInvalidArgument            = errors.New("invalid argument")
	ErrDisplayUnavailable         = errors.New("cannot open display")
	ErrRootWindowUnavailable      = errors.New("cannot resolve root window")
	ErrUnsupportedGraphicsVersion = errors.New("cannot determine GLX version")
	ErrNoFramebufferConfig        = errors.New("no matching framebuffer config")
	ErrContextNegotiationFailed   = errors.New("GL context negotiation failed")
	ErrColormapCreationFailed     = errors.New("cannot create colormap")
	ErrWindowCreationFailed       = errors.New("cannot create window")
	ErrResolutionQueryFailed      = errors.New("cannot query screen resolution")
	ErrContextRequired            = errors.New("window has no GL context")

	// ErrWindowClosed is returned by Update once the window has been closed.
	// It ends the update loop and is not a failure.
	ErrWindowClosed = errors.New("window closed")
)
