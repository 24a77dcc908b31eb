package glxwindow

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeMessage(atom xproto.Atom) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(fakeWindow),
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(atom), 0, 0, 0, 0}),
	}
}

func TestUpdateIdleTick(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.pointer = PointerPosition{RootX: 10, RootY: 20, WinX: 3, WinY: 4}
	for i := 1; i <= 5; i++ {
		swaps := b.swaps
		require.NoError(t, w.Update())

		assert.Equal(t, i, b.pointerHits)
		last := r.redraws[len(r.redraws)-1]
		assert.Equal(t, RedrawFlags(0), last.flags)
		assert.Equal(t, b.pointer, last.pointer)
		assert.Equal(t, swaps+1, b.swaps)
	}
	assert.Equal(t, b.pointer, w.Pointer())
}

func TestUpdateEventFrameKeepsPointer(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.pointer = PointerPosition{RootX: 7}
	require.NoError(t, w.Update())

	b.pointer = PointerPosition{RootX: 99}
	b.events = []xgb.Event{xproto.ExposeEvent{Count: 0}}
	require.NoError(t, w.Update())

	assert.Equal(t, int32(7), r.redraws[len(r.redraws)-1].pointer.RootX)
	assert.Equal(t, 1, b.pointerHits)
}

func TestUpdateExpose(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.events = []xgb.Event{
		xproto.ExposeEvent{Count: 2},
		xproto.ExposeEvent{Count: 1},
		xproto.ExposeEvent{Count: 0},
	}
	redraws, swaps := len(r.redraws), b.swaps

	require.NoError(t, w.Update())
	require.NoError(t, w.Update())
	assert.Len(t, r.redraws, redraws)
	assert.Equal(t, swaps, b.swaps)

	require.NoError(t, w.Update())
	assert.Len(t, r.redraws, redraws+1)
	assert.Equal(t, RedrawFlags(0), r.redraws[redraws].flags)
	assert.Equal(t, swaps+1, b.swaps)
	assert.Equal(t, 0, b.pointerHits)
}

func TestUpdateConfigureSameSizeIsNoop(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.events = []xgb.Event{xproto.ConfigureNotifyEvent{Width: 800, Height: 600, X: 50}}
	redraws, swaps := len(r.redraws), b.swaps

	require.NoError(t, w.Update())
	assert.Len(t, r.redraws, redraws)
	assert.Equal(t, swaps, b.swaps)
	assert.Equal(t, WindowState{Width: 800, Height: 600}, w.State())
}

func TestUpdateConfigureResize(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.events = []xgb.Event{xproto.ConfigureNotifyEvent{Width: 1024, Height: 768}}
	redraws := len(r.redraws)

	require.NoError(t, w.Update())
	require.Len(t, r.redraws, redraws+1)
	call := r.redraws[redraws]
	assert.Equal(t, RedrawResize, call.flags)
	assert.Equal(t, WindowState{Width: 1024, Height: 768}, call.state)
	assert.Equal(t, WindowState{Width: 1024, Height: 768}, w.State())
	assert.Equal(t, 1, r.count(RedrawResize)-1, "exactly one resize redraw after create")
}

func TestUpdateCloseMessage(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)

	b.events = []xgb.Event{closeMessage(fakeDeleteAtom)}
	err := w.Update()
	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.NoError(t, b.leaked())
	assert.Equal(t, 1, r.count(RedrawDestroy))

	calls := len(b.calls)
	assert.NotPanics(t, func() { w.Destroy() })
	assert.Len(t, b.calls, calls)
	assert.Equal(t, 1, r.count(RedrawDestroy))
}

func TestUpdateOtherClientMessageIgnored(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	b.events = []xgb.Event{closeMessage(fakeDeleteAtom + 1)}
	assert.NoError(t, w.Update())
	assert.NotZero(t, w.ID())
}

func TestUpdateEscapeWithoutEventsCallback(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, false)

	b.events = []xgb.Event{xproto.KeyPressEvent{Detail: fakeEscape + 1}}
	assert.NoError(t, w.Update())
	assert.NotZero(t, w.ID())

	b.events = []xgb.Event{xproto.KeyPressEvent{Detail: fakeEscape}}
	assert.ErrorIs(t, w.Update(), ErrWindowClosed)
	assert.NoError(t, b.leaked())
}

func TestUpdateEscapeWithEventsCallback(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	esc := xproto.KeyPressEvent{Detail: fakeEscape}
	b.events = []xgb.Event{esc}
	assert.NoError(t, w.Update())
	assert.NotZero(t, w.ID())
	assert.Equal(t, []xgb.Event{esc}, r.events)
}

func TestUpdateForwardsEveryEventFirst(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	defer w.Destroy()

	events := []xgb.Event{
		xproto.ButtonPressEvent{Detail: 1},
		xproto.ButtonReleaseEvent{Detail: 1},
		xproto.KeyReleaseEvent{Detail: 30},
		xproto.MapNotifyEvent{},
	}
	b.events = append([]xgb.Event(nil), events...)
	redraws := len(r.redraws)

	for range events {
		require.NoError(t, w.Update())
	}
	assert.Equal(t, events, r.events)
	assert.Len(t, r.redraws, redraws, "input events do not redraw")
}

func TestUpdateEventsCallbackMayDestroy(t *testing.T) {
	b, r := newRecorder()
	w, err := Create(b, Options{
		Width:  100,
		Height: 100,
		Redraw: r.redraw,
		Events: func(w *Window, ev xgb.Event) { w.Destroy() },
	})
	require.NoError(t, err)

	b.events = []xgb.Event{xproto.ExposeEvent{}}
	assert.ErrorIs(t, w.Update(), ErrWindowClosed)
	assert.NoError(t, b.leaked())
}

func TestUpdateAfterDestroy(t *testing.T) {
	b, r := newRecorder()
	w := createWindow(t, b, r, true)
	w.Destroy()

	assert.ErrorIs(t, w.Update(), ErrWindowClosed)
}
