// Package glx negotiates GLX rendering contexts over the X protocol.
package glx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	xglx "github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
)

var (
	// ErrUnsupportedVersion means the GLX version could not be determined.
	ErrUnsupportedVersion = errors.New("glx version unavailable")
	// ErrNoFBConfig means no framebuffer config passed the base filter.
	ErrNoFBConfig = errors.New("no matching framebuffer config")
	// ErrNoVisual means the legacy path found no usable visual.
	ErrNoVisual = errors.New("no matching visual")
)

// glxExtensions is the QueryServerString name for GLX_EXTENSIONS.
const glxExtensions = 3

// Requested context version on the modern path.
const (
	contextMajor = 2
	contextMinor = 1
)

// Result describes a negotiated context.
type Result struct {
	Visual     xproto.Visualid
	Modern     bool
	FBConfigID uint32
	Samples    uint32
	Context    *Context
}

// Negotiator picks a framebuffer configuration and creates a context on one
// screen. The GLX_ARB_create_context lookup runs at most once per Negotiator.
type Negotiator struct {
	conn   *xgb.Conn
	screen uint32
	logger *slog.Logger

	arbOnce sync.Once
	arbOK   bool
}

// NewNegotiator returns a Negotiator for screen on conn.
func NewNegotiator(conn *xgb.Conn, screen int, logger *slog.Logger) *Negotiator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Negotiator{conn: conn, screen: uint32(screen), logger: logger}
}

// Version initializes the GLX extension and reports the server version.
func (n *Negotiator) Version() (major, minor uint32, err error) {
	if err := xglx.Init(n.conn); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	reply, err := xglx.QueryVersion(n.conn, 1, 4).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	return reply.MajorVersion, reply.MinorVersion, nil
}

type negotiationPath int

const (
	pathLegacy negotiationPath = iota
	pathModern
)

func (p negotiationPath) String() string {
	if p == pathModern {
		return "modern"
	}
	return "legacy"
}

// pickPath decides between FBConfig and legacy visual negotiation. arb is
// only consulted for GLX 1.3 and later.
func pickPath(major, minor uint32, arb func() bool) (negotiationPath, error) {
	if major == 0 {
		return pathLegacy, fmt.Errorf("%w: server reported %d.%d", ErrUnsupportedVersion, major, minor)
	}
	if major == 1 && minor < 3 {
		return pathLegacy, nil
	}
	if !arb() {
		return pathLegacy, nil
	}
	return pathModern, nil
}

// Negotiate chooses a visual and creates a context for it. Servers older
// than GLX 1.3, or without GLX_ARB_create_context, get a legacy context.
func (n *Negotiator) Negotiate() (*Result, error) {
	major, minor, err := n.Version()
	if err != nil {
		return nil, err
	}
	path, err := pickPath(major, minor, n.createContextAttribsAvailable)
	if err != nil {
		return nil, err
	}
	n.logger.Debug("glx version", "major", major, "minor", minor, "path", path)

	if path == pathModern {
		return n.negotiateModern()
	}
	return n.negotiateLegacy()
}

func (n *Negotiator) createContextAttribsAvailable() bool {
	n.arbOnce.Do(func() {
		reply, err := xglx.QueryServerString(n.conn, n.screen, glxExtensions).Reply()
		if err != nil {
			n.logger.Debug("glx extension query failed", "error", err)
			return
		}
		n.arbOK = hasExtension(reply.String, "GLX_ARB_create_context")
	})
	return n.arbOK
}

func hasExtension(list, name string) bool {
	for _, ext := range strings.Fields(list) {
		if ext == name {
			return true
		}
	}
	return false
}

func (n *Negotiator) negotiateModern() (*Result, error) {
	reply, err := xglx.GetFBConfigs(n.conn, n.screen).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query fbconfigs: %w", err)
	}
	configs, err := parseFBConfigs(reply.NumFbConfigs, reply.NumProperties, reply.PropertyList)
	if err != nil {
		return nil, err
	}

	matches := filterFBConfigs(configs)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w (%d enumerated)", ErrNoFBConfig, len(configs))
	}
	best := matches[chooseFBConfig(matches)]
	n.logger.Debug("chose fbconfig",
		"id", best.ID(),
		"visual", best.VisualID(),
		"sample_buffers", best.SampleBuffers(),
		"samples", best.Samples(),
		"candidates", len(matches))

	id, err := xglx.NewContextId(n.conn)
	if err != nil {
		return nil, err
	}
	attribs := []uint32{
		contextMajorVersionARB, contextMajor,
		contextMinorVersionARB, contextMinor,
	}
	err = xglx.CreateContextAttribsARBChecked(
		n.conn, id, xglx.Fbconfig(best.ID()), n.screen, 0, false,
		uint32(len(attribs)/2), attribs,
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create %d.%d context: %w", contextMajor, contextMinor, err)
	}

	return &Result{
		Visual:     xproto.Visualid(best.VisualID()),
		Modern:     true,
		FBConfigID: best.ID(),
		Samples:    best.Samples(),
		Context:    &Context{conn: n.conn, id: id},
	}, nil
}

func (n *Negotiator) negotiateLegacy() (*Result, error) {
	reply, err := xglx.GetVisualConfigs(n.conn, n.screen).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query visual configs: %w", err)
	}
	visuals, err := parseVisualConfigs(reply.NumVisuals, reply.NumProperties, reply.PropertyList)
	if err != nil {
		return nil, err
	}
	visual, ok := chooseLegacyVisual(visuals)
	if !ok {
		return nil, fmt.Errorf("%w (%d enumerated)", ErrNoVisual, len(visuals))
	}
	n.logger.Debug("chose legacy visual", "visual", visual.VisualID)

	id, err := xglx.NewContextId(n.conn)
	if err != nil {
		return nil, err
	}
	err = xglx.CreateContextChecked(n.conn, id, xproto.Visualid(visual.VisualID), n.screen, 0, false).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy context: %w", err)
	}

	return &Result{
		Visual:  xproto.Visualid(visual.VisualID),
		Context: &Context{conn: n.conn, id: id},
	}, nil
}
