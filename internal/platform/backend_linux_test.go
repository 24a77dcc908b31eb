//go:build linux

package platform

import (
	"errors"
	"testing"

	"github.com/1broseidon/cubeclock/internal/x11"
	"github.com/stretchr/testify/assert"
)

func TestFullscreenEdges(t *testing.T) {
	dual := []x11.Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Y: 0, Width: 2560, Height: 1440},
	}

	edges, ok := fullscreenEdges(dual, nil)
	assert.True(t, ok)
	assert.Equal(t, x11.FullscreenEdges{Top: 0, Bottom: 1, Left: 0, Right: 1}, edges)

	_, ok = fullscreenEdges(nil, nil)
	assert.False(t, ok, "no monitors skips the message")

	_, ok = fullscreenEdges(dual, errors.New("randr missing"))
	assert.False(t, ok, "query failure skips the message")
}

func TestBackendWithoutContextDropsRendering(t *testing.T) {
	b := NewLinuxBackend("", nil)
	assert.False(t, b.current())

	// No connection or context: these must be silent no-ops.
	b.Render([]byte{1, 2, 3, 4})
	b.RenderLarge([]byte{1, 2, 3, 4})
	b.DeleteTextures([]uint32{1})
	b.SwapBuffers(1)

	_, err := b.GenTextures(1)
	assert.Error(t, err)
}
