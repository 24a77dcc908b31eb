package glx

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	xglx "github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
)

// maxRenderChunk bounds the payload of a single Render or RenderLarge
// request.
const maxRenderChunk = 16 * 1024

// Context is a server-side GLX context. Its methods must be called from the
// goroutine that owns the connection's window.
type Context struct {
	conn *xgb.Conn
	id   xglx.Context
	tag  xglx.ContextTag
}

// ID returns the server context id.
func (c *Context) ID() xglx.Context { return c.id }

// Current reports whether MakeCurrent has bound the context.
func (c *Context) Current() bool { return c.tag != 0 }

// MakeCurrent binds the context to drawable.
func (c *Context) MakeCurrent(drawable xproto.Window) error {
	reply, err := xglx.MakeCurrent(c.conn, xglx.Drawable(drawable), c.id, c.tag).Reply()
	if err != nil {
		return fmt.Errorf("glx make current failed: %w", err)
	}
	c.tag = reply.ContextTag
	return nil
}

// IsDirect reports whether the server says the context renders directly.
func (c *Context) IsDirect() (bool, error) {
	reply, err := xglx.IsDirect(c.conn, c.id).Reply()
	if err != nil {
		return false, err
	}
	return reply.IsDirect, nil
}

// SwapBuffers presents the back buffer of drawable.
func (c *Context) SwapBuffers(drawable xproto.Window) {
	xglx.SwapBuffers(c.conn, c.tag, xglx.Drawable(drawable))
}

// Release unbinds the context from any drawable.
func (c *Context) Release() error {
	if c.tag == 0 {
		return nil
	}
	_, err := xglx.MakeCurrent(c.conn, 0, 0, c.tag).Reply()
	c.tag = 0
	return err
}

// Destroy frees the server context.
func (c *Context) Destroy() {
	xglx.DestroyContext(c.conn, c.id)
	c.id = 0
}

// Render submits a buffer of small render commands.
func (c *Context) Render(data []byte) {
	if len(data) == 0 {
		return
	}
	xglx.Render(c.conn, c.tag, data)
}

// RenderLarge submits one large render command, split across as many
// RenderLarge requests as it needs.
func (c *Context) RenderLarge(data []byte) {
	total := (len(data) + maxRenderChunk - 1) / maxRenderChunk
	for i := 0; i < total; i++ {
		start := i * maxRenderChunk
		end := min(start+maxRenderChunk, len(data))
		chunk := data[start:end]
		xglx.RenderLarge(c.conn, c.tag, uint16(i+1), uint16(total), uint32(len(chunk)), chunk)
	}
}

// GenTextures allocates n texture names.
func (c *Context) GenTextures(n int) ([]uint32, error) {
	reply, err := xglx.GenTextures(c.conn, c.tag, int32(n)).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Data, nil
}

// DeleteTextures frees texture names.
func (c *Context) DeleteTextures(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	xglx.DeleteTextures(c.conn, c.tag, int32(len(ids)), ids)
}
