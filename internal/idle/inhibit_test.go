package idle

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method string
	args   []any
}

type fakeBus struct {
	calls []recordedCall
	reply []any
	err   error
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	return &dbus.Call{Method: method, Args: args, Body: f.reply, Err: f.err}
}

func TestInhibitAndRelease(t *testing.T) {
	bus := &fakeBus{reply: []any{uint32(42)}}
	inh := newInhibitor(bus, nil)

	require.NoError(t, inh.Inhibit("cubeclock", "clock on screen"))
	assert.True(t, inh.Active())
	require.NoError(t, inh.Inhibit("cubeclock", "again"))
	require.Len(t, bus.calls, 1, "second inhibit is a no-op")
	assert.Equal(t, "org.freedesktop.ScreenSaver.Inhibit", bus.calls[0].method)
	assert.Equal(t, []any{"cubeclock", "clock on screen"}, bus.calls[0].args)

	require.NoError(t, inh.Release())
	assert.False(t, inh.Active())
	require.Len(t, bus.calls, 2)
	assert.Equal(t, "org.freedesktop.ScreenSaver.UnInhibit", bus.calls[1].method)
	assert.Equal(t, []any{uint32(42)}, bus.calls[1].args)

	require.NoError(t, inh.Release())
	assert.Len(t, bus.calls, 2, "release without inhibit is a no-op")
}

func TestInhibitError(t *testing.T) {
	bus := &fakeBus{err: errors.New("service unknown")}
	inh := newInhibitor(bus, nil)

	err := inh.Inhibit("cubeclock", "clock on screen")
	assert.ErrorContains(t, err, "service unknown")
	assert.False(t, inh.Active())
	assert.NoError(t, inh.Release())
}
