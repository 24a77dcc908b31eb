package glxwindow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/cubeclock/internal/glx"
	"github.com/1broseidon/cubeclock/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorder() (*fakeBackend, *recorder) {
	b := newFakeBackend()
	return b, &recorder{backend: b}
}

func createWindow(t *testing.T, b *fakeBackend, r *recorder, withEvents bool) *Window {
	t.Helper()
	opts := Options{Width: 800, Height: 600, Caption: "clock", Redraw: r.redraw}
	if withEvents {
		opts.Events = r.onEvent
	}
	w, err := Create(b, opts)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func TestCreateRejectsSingleZeroDimension(t *testing.T) {
	for _, size := range [][2]uint32{{0, 600}, {800, 0}} {
		b, r := newRecorder()
		w, err := Create(b, Options{Width: size[0], Height: size[1], Redraw: r.redraw})
		assert.ErrorIs(t, err, ErrInvalidArgument, "size %v", size)
		assert.Nil(t, w)
		assert.Empty(t, b.calls, "no backend call may happen for size %v", size)
		assert.NoError(t, b.leaked())
	}
}

func TestCreateRequiresRedraw(t *testing.T) {
	b, _ := newRecorder()
	_, err := Create(b, Options{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, b.calls)
}

func TestCreateRejectsNilBackend(t *testing.T) {
	_, r := newRecorder()
	_, err := Create(nil, Options{Width: 10, Height: 10, Redraw: r.redraw})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateEventsCallbackOptional(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, false)
	defer w.Destroy()
	assert.NotZero(t, w.ID())
}

func TestCreateZeroSizeUsesScreenResolution(t *testing.T) {
	b, r := newRecorder()
	b.screenW, b.screenH = 2560, 1440

	w, err := Create(b, Options{Redraw: r.redraw})
	require.NoError(t, err)
	defer w.Destroy()

	assert.Equal(t, WindowState{Width: 2560, Height: 1440}, w.State())
	assert.Contains(t, b.calls, "create-window 2560x1440")
	require.Len(t, r.redraws, 1)
	assert.Equal(t, WindowState{Width: 2560, Height: 1440}, r.redraws[0].state)
}

func TestCreateResolutionFailure(t *testing.T) {
	b, r := newRecorder()
	b.screenErr = errNative

	_, err := Create(b, Options{Redraw: r.redraw})
	assert.ErrorIs(t, err, ErrResolutionQueryFailed)
	assert.ErrorIs(t, err, errNative)
	assert.NoError(t, b.leaked())
}

func TestCreateSequence(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	assert.Equal(t, []string{
		"open",
		"root",
		"negotiate",
		"create-colormap",
		"create-window 800x600",
		"register-close",
		"title clock",
		"map",
		"sync",
		"make-current",
		"is-direct",
		"swap",
	}, b.calls)
}

func TestCreateSkipsTitleWithoutCaption(t *testing.T) {
	b, r := newRecorder()
	w, err := Create(b, Options{Width: 1, Height: 1, Redraw: r.redraw})
	require.NoError(t, err)
	defer w.Destroy()

	for _, c := range b.calls {
		assert.NotContains(t, c, "title")
	}
}

func TestCreateInitialRedraw(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	require.Len(t, r.redraws, 1)
	first := r.redraws[0]
	assert.True(t, first.flags.Has(RedrawInit))
	assert.True(t, first.flags.Has(RedrawResize))
	assert.False(t, first.flags.Has(RedrawDestroy))
	assert.Equal(t, 0, first.swapsBefore, "initial redraw must precede the first swap")
	assert.Equal(t, PointerPosition{}, first.pointer)
	assert.Equal(t, WindowState{Width: 800, Height: 600}, first.state)
	assert.Equal(t, 1, b.swaps)
}

func TestCreateFailuresUnwind(t *testing.T) {
	tests := []struct {
		name    string
		inject  func(b *fakeBackend)
		want    error
		destroy bool
	}{
		{name: "display", inject: func(b *fakeBackend) { b.openErr = errNative }, want: ErrDisplayUnavailable},
		{name: "root", inject: func(b *fakeBackend) { b.rootErr = errNative }, want: ErrRootWindowUnavailable},
		{
			name:   "glx version",
			inject: func(b *fakeBackend) { b.negotiateErr = glx.ErrUnsupportedVersion },
			want:   ErrUnsupportedGraphicsVersion,
		},
		{
			name:   "no fbconfig",
			inject: func(b *fakeBackend) { b.negotiateErr = glx.ErrNoFBConfig },
			want:   ErrNoFramebufferConfig,
		},
		{name: "context", inject: func(b *fakeBackend) { b.negotiateErr = errNative }, want: ErrContextNegotiationFailed},
		{name: "colormap", inject: func(b *fakeBackend) { b.colormapErr = errNative }, want: ErrColormapCreationFailed, destroy: true},
		{name: "window", inject: func(b *fakeBackend) { b.windowErr = errNative }, want: ErrWindowCreationFailed, destroy: true},
		{name: "protocols", inject: func(b *fakeBackend) { b.registerErr = errNative }, want: ErrWindowCreationFailed, destroy: true},
		{name: "make current", inject: func(b *fakeBackend) { b.currentErr = errNative }, want: ErrContextNegotiationFailed, destroy: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, r := newRecorder()
			tt.inject(b)

			w, err := Create(b, Options{Width: 640, Height: 480, Redraw: r.redraw})
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, b.leaked())

			// The destroy redraw fires only once a context exists.
			if tt.destroy {
				assert.Equal(t, 1, r.count(RedrawDestroy))
			} else {
				assert.Equal(t, 0, r.count(RedrawDestroy))
			}
			assert.Equal(t, 0, r.count(RedrawInit))
		})
	}
}

func TestNegotiationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"version", fmt.Errorf("%w: server reported 0.0", glx.ErrUnsupportedVersion), ErrUnsupportedGraphicsVersion},
		{"no fbconfig", fmt.Errorf("%w (12 enumerated)", glx.ErrNoFBConfig), ErrNoFramebufferConfig},
		{"no legacy visual", fmt.Errorf("%w (3 enumerated)", glx.ErrNoVisual), ErrContextNegotiationFailed},
		{"create context", errors.New("BadMatch"), ErrContextNegotiationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := negotiationError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "cause is kept")
		})
	}
}

func TestCreateLogsNegotiatedVisual(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, false)
	defer w.Destroy()

	assert.Equal(t, uint32(0x21), w.visual.ID)
	assert.Equal(t, uint32(0x8f), w.visual.FBConfig)
}

func TestCreateFailureReleasesInReverseOrder(t *testing.T) {
	b, r := newRecorder()
	b.registerErr = errNative

	_, err := Create(b, Options{Width: 640, Height: 480, Redraw: r.redraw})
	require.Error(t, err)

	n := len(b.calls)
	require.GreaterOrEqual(t, n, 5)
	assert.Equal(t, []string{
		"release-context",
		"destroy-context",
		"destroy-window",
		"free-colormap",
		"close",
	}, b.calls[n-5:])
}

func TestDestroyIdempotent(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)

	w.Destroy()
	assert.NoError(t, b.leaked())
	assert.Equal(t, Window{}, *w)
	calls := len(b.calls)

	w.Destroy()
	assert.Len(t, b.calls, calls, "second destroy must not touch the backend")
	assert.Equal(t, 1, r.count(RedrawDestroy))
}

func TestDestroyRedrawBeforeContextRelease(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)

	var callsAtDestroy int
	w.redraw = func(w *Window, flags RedrawFlags, state WindowState, pointer PointerPosition) {
		if flags.Has(RedrawDestroy) {
			callsAtDestroy = len(b.calls)
		}
		r.redraw(w, flags, state, pointer)
	}
	w.Destroy()

	require.Equal(t, 1, r.count(RedrawDestroy))
	assert.Equal(t, "release-context", b.calls[callsAtDestroy])
}

func TestDestroyNilWindow(t *testing.T) {
	var w *Window
	assert.NotPanics(t, func() { w.Destroy() })
}

func TestRedrawFlagsString(t *testing.T) {
	assert.Equal(t, "none", RedrawFlags(0).String())
	assert.Equal(t, "init|resize", (RedrawInit | RedrawResize).String())
	assert.Equal(t, "destroy", RedrawDestroy.String())
}

func TestPointerPositionAlias(t *testing.T) {
	var p PointerPosition = platform.Pointer{RootX: 1, WinY: 2}
	assert.Equal(t, int32(1), p.RootX)
}
