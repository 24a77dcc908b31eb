// Package idle keeps the desktop from blanking or locking while the clock is
// on screen, through the org.freedesktop.ScreenSaver D-Bus interface.
package idle

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService = "org.freedesktop.ScreenSaver"
	screenSaverPath    = "/org/freedesktop/ScreenSaver"
	screenSaverIface   = "org.freedesktop.ScreenSaver"
)

type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Inhibitor holds at most one idle inhibition.
type Inhibitor struct {
	obj    caller
	logger *slog.Logger

	cookie uint32
	active bool
}

// Connect returns an Inhibitor on the session bus.
func Connect(logger *slog.Logger) (*Inhibitor, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return newInhibitor(conn.Object(screenSaverService, screenSaverPath), logger), nil
}

func newInhibitor(obj caller, logger *slog.Logger) *Inhibitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inhibitor{obj: obj, logger: logger}
}

// Active reports whether an inhibition is held.
func (i *Inhibitor) Active() bool { return i.active }

// Inhibit asks the screensaver service not to idle. Calling it while active
// is a no-op.
func (i *Inhibitor) Inhibit(app, reason string) error {
	if i.active {
		return nil
	}
	var cookie uint32
	if err := i.obj.Call(screenSaverIface+".Inhibit", 0, app, reason).Store(&cookie); err != nil {
		return fmt.Errorf("failed to inhibit idle: %w", err)
	}
	i.cookie = cookie
	i.active = true
	i.logger.Debug("idle inhibited", "cookie", cookie)
	return nil
}

// Release drops the inhibition, if any.
func (i *Inhibitor) Release() error {
	if !i.active {
		return nil
	}
	i.active = false
	if err := i.obj.Call(screenSaverIface+".UnInhibit", 0, i.cookie).Err; err != nil {
		return fmt.Errorf("failed to release idle inhibit: %w", err)
	}
	i.logger.Debug("idle inhibit released", "cookie", i.cookie)
	return nil
}
