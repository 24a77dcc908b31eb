package glxwindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullscreenRequiresContext(t *testing.T) {
	var nilWindow *Window
	assert.ErrorIs(t, nilWindow.EnterFullscreenPopup(), ErrContextRequired)
	assert.ErrorIs(t, nilWindow.ExitFullscreenPopup(0, 0), ErrContextRequired)

	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	w.Destroy()
	assert.ErrorIs(t, w.EnterFullscreenPopup(), ErrContextRequired)
	assert.ErrorIs(t, w.ExitFullscreenPopup(640, 480), ErrContextRequired)
}

func TestEnterFullscreenPopup(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.calls = nil
	require.NoError(t, w.EnterFullscreenPopup())
	assert.Equal(t, []string{
		"screen-size",
		"fullscreen-monitors",
		"fullscreen-state true",
		"sync",
	}, b.calls)
}

func TestEnterFullscreenResolutionFailure(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.screenErr = errNative
	err := w.EnterFullscreenPopup()
	assert.ErrorIs(t, err, ErrResolutionQueryFailed)
	assert.Empty(t, b.fullscreen)
}

func TestExitFullscreenPopup(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	require.NoError(t, w.ExitFullscreenPopup(640, 480))
	assert.Equal(t, []bool{false}, b.fullscreen)
	assert.Equal(t, [][2]uint32{{640, 480}}, b.resized)
}

func TestExitFullscreenPopupZeroUsesResolution(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	require.NoError(t, w.ExitFullscreenPopup(0, 0))
	assert.Equal(t, [][2]uint32{{1920, 1080}}, b.resized)
}

func TestExitFullscreenPopupInvalidSize(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	assert.ErrorIs(t, w.ExitFullscreenPopup(0, 480), ErrInvalidArgument)
	assert.ErrorIs(t, w.ExitFullscreenPopup(640, 0), ErrInvalidArgument)
	assert.Empty(t, b.fullscreen)
	assert.Empty(t, b.resized)
}

func TestCursorVisibility(t *testing.T) {
	var nilWindow *Window
	assert.NoError(t, nilWindow.HideCursor())
	assert.NoError(t, nilWindow.ShowCursor())

	b, r := newRecorder()
	w := createWindow(t, b, r, true)

	require.NoError(t, w.HideCursor())
	require.NoError(t, w.ShowCursor())
	assert.Equal(t, []string{"hide", "show"}, b.cursor)

	w.Destroy()
	assert.NoError(t, w.HideCursor())
	assert.Equal(t, []string{"hide", "show"}, b.cursor)
}
