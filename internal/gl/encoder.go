// Package gl encodes fixed-function OpenGL calls as GLX render commands.
//
// Small commands are batched and submitted with glXRender when the batch
// fills or Flush is called. Commands too big for a single request, such as
// texture uploads, go out as glXRenderLarge.
package gl

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb"
)

// maxBatch is the largest batch submitted in one Render request.
const maxBatch = 16 * 1024

// Transport submits encoded commands to the server.
type Transport interface {
	Render(data []byte)
	RenderLarge(data []byte)
	GenTextures(n int) ([]uint32, error)
	DeleteTextures(ids []uint32)
}

// Encoder buffers GL commands for a Transport. It is not safe for
// concurrent use.
type Encoder struct {
	t     Transport
	batch []byte

	unpackAlignment uint32
}

// NewEncoder returns an Encoder writing to t.
func NewEncoder(t Transport) *Encoder {
	return &Encoder{t: t, unpackAlignment: 4}
}

// Flush submits every buffered command.
func (e *Encoder) Flush() {
	if len(e.batch) == 0 {
		return
	}
	e.t.Render(e.batch)
	e.batch = nil
}

// Pending returns the number of buffered bytes.
func (e *Encoder) Pending() int { return len(e.batch) }

// cmd reserves a command of n payload bytes and returns the payload slice.
func (e *Encoder) cmd(opcode uint16, n int) []byte {
	size := 4 + n
	if len(e.batch)+size > maxBatch {
		e.Flush()
	}
	start := len(e.batch)
	e.batch = append(e.batch, make([]byte, size)...)
	buf := e.batch[start:]
	xgb.Put16(buf, uint16(size))
	xgb.Put16(buf[2:], opcode)
	return buf[4:]
}

func putFloat(buf []byte, v float32) {
	xgb.Put32(buf, math.Float32bits(v))
}

func putDouble(buf []byte, v float64) {
	xgb.Put64(buf, math.Float64bits(v))
}

func (e *Encoder) enum1(opcode uint16, a uint32) {
	buf := e.cmd(opcode, 4)
	xgb.Put32(buf, a)
}

func (e *Encoder) enum2(opcode uint16, a, b uint32) {
	buf := e.cmd(opcode, 8)
	xgb.Put32(buf, a)
	xgb.Put32(buf[4:], b)
}

func (e *Encoder) floats(opcode uint16, vs ...float32) {
	buf := e.cmd(opcode, 4*len(vs))
	for i, v := range vs {
		putFloat(buf[4*i:], v)
	}
}

func (e *Encoder) doubles(opcode uint16, vs ...float64) {
	buf := e.cmd(opcode, 8*len(vs))
	for i, v := range vs {
		putDouble(buf[8*i:], v)
	}
}

func (e *Encoder) Begin(mode uint32) { e.enum1(OpBegin, mode) }
func (e *Encoder) End()              { e.cmd(OpEnd, 0) }

func (e *Encoder) Vertex3f(x, y, z float32)      { e.floats(OpVertex3fv, x, y, z) }
func (e *Encoder) Normal3f(x, y, z float32)      { e.floats(OpNormal3fv, x, y, z) }
func (e *Encoder) TexCoord2f(s, t float32)       { e.floats(OpTexCoord2fv, s, t) }
func (e *Encoder) Color3f(r, g, b float32)       { e.floats(OpColor3fv, r, g, b) }
func (e *Encoder) Color4f(r, g, b, a float32)    { e.floats(OpColor4fv, r, g, b, a) }
func (e *Encoder) ClearColor(r, g, b, a float32) { e.floats(OpClearColor, r, g, b, a) }
func (e *Encoder) LineWidth(w float32)           { e.floats(OpLineWidth, w) }

func (e *Encoder) Enable(capability uint32)  { e.enum1(OpEnable, capability) }
func (e *Encoder) Disable(capability uint32) { e.enum1(OpDisable, capability) }
func (e *Encoder) Clear(mask uint32)         { e.enum1(OpClear, mask) }
func (e *Encoder) ShadeModel(mode uint32)    { e.enum1(OpShadeModel, mode) }
func (e *Encoder) DepthFunc(fn uint32)       { e.enum1(OpDepthFunc, fn) }
func (e *Encoder) MatrixMode(mode uint32)    { e.enum1(OpMatrixMode, mode) }

func (e *Encoder) Hint(target, mode uint32)          { e.enum2(OpHint, target, mode) }
func (e *Encoder) BlendFunc(sfactor, dfactor uint32) { e.enum2(OpBlendFunc, sfactor, dfactor) }
func (e *Encoder) ColorMaterial(face, mode uint32)   { e.enum2(OpColorMaterial, face, mode) }
func (e *Encoder) PolygonMode(face, mode uint32)     { e.enum2(OpPolygonMode, face, mode) }
func (e *Encoder) BindTexture(target, texture uint32) {
	e.enum2(OpBindTexture, target, texture)
}

func (e *Encoder) LoadIdentity() { e.cmd(OpLoadIdentity, 0) }
func (e *Encoder) PushMatrix()   { e.cmd(OpPushMatrix, 0) }
func (e *Encoder) PopMatrix()    { e.cmd(OpPopMatrix, 0) }

func (e *Encoder) Translatef(x, y, z float32)     { e.floats(OpTranslatef, x, y, z) }
func (e *Encoder) Rotatef(angle, x, y, z float32) { e.floats(OpRotatef, angle, x, y, z) }

func (e *Encoder) Frustum(left, right, bottom, top, near, far float64) {
	e.doubles(OpFrustum, left, right, bottom, top, near, far)
}

func (e *Encoder) Ortho(left, right, bottom, top, near, far float64) {
	e.doubles(OpOrtho, left, right, bottom, top, near, far)
}

// Perspective multiplies the current matrix by a symmetric perspective
// projection, as gluPerspective does.
func (e *Encoder) Perspective(fovyDegrees, aspect, near, far float64) {
	ymax := near * math.Tan(fovyDegrees*math.Pi/360)
	xmax := ymax * aspect
	e.Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

func (e *Encoder) Viewport(x, y int32, width, height uint32) {
	buf := e.cmd(OpViewport, 16)
	xgb.Put32(buf, uint32(x))
	xgb.Put32(buf[4:], uint32(y))
	xgb.Put32(buf[8:], width)
	xgb.Put32(buf[12:], height)
}

func (e *Encoder) Lightfv(light, pname uint32, params []float32) {
	buf := e.cmd(OpLightfv, 8+4*len(params))
	xgb.Put32(buf, light)
	xgb.Put32(buf[4:], pname)
	for i, v := range params {
		putFloat(buf[8+4*i:], v)
	}
}

func (e *Encoder) LightModelf(pname uint32, param float32) {
	buf := e.cmd(OpLightModelf, 8)
	xgb.Put32(buf, pname)
	putFloat(buf[4:], param)
}

func (e *Encoder) TexParameterf(target, pname uint32, param float32) {
	buf := e.cmd(OpTexParameterf, 12)
	xgb.Put32(buf, target)
	xgb.Put32(buf[4:], pname)
	putFloat(buf[8:], param)
}

func (e *Encoder) TexEnvi(target, pname uint32, param int32) {
	buf := e.cmd(OpTexEnvi, 12)
	xgb.Put32(buf, target)
	xgb.Put32(buf[4:], pname)
	xgb.Put32(buf[8:], uint32(param))
}

func (e *Encoder) CopyTexImage2D(target uint32, level int32, internalFormat uint32, x, y int32, width, height uint32, border int32) {
	buf := e.cmd(OpCopyTexImage2D, 32)
	xgb.Put32(buf, target)
	xgb.Put32(buf[4:], uint32(level))
	xgb.Put32(buf[8:], internalFormat)
	xgb.Put32(buf[12:], uint32(x))
	xgb.Put32(buf[16:], uint32(y))
	xgb.Put32(buf[20:], width)
	xgb.Put32(buf[24:], height)
	xgb.Put32(buf[28:], uint32(border))
}

// PixelStorei records client-side pixel storage state. Only
// UnpackAlignment is tracked; it is sent in each TexImage2D header.
func (e *Encoder) PixelStorei(pname uint32, value int32) {
	if pname == UnpackAlignment {
		e.unpackAlignment = uint32(value)
	}
}

// texImageHeader is the pixel-store header plus TexImage2D arguments.
const texImageHeader = 52

// TexImage2D uploads pixels. Large images are sent with RenderLarge after
// flushing the pending batch.
func (e *Encoder) TexImage2D(target uint32, level int32, internalFormat uint32, width, height uint32, border int32, format, typ uint32, pixels []byte) error {
	if want := e.imageSize(width, height, format); len(pixels) < want {
		return fmt.Errorf("texture %dx%d needs %d bytes, have %d", width, height, want, len(pixels))
	}

	n := xgb.Pad(len(pixels))
	if 4+texImageHeader+n <= maxBatch {
		buf := e.cmd(OpTexImage2D, texImageHeader+n)
		e.putTexImage(buf, target, level, internalFormat, width, height, border, format, typ)
		copy(buf[texImageHeader:], pixels)
		return nil
	}

	e.Flush()
	size := 8 + texImageHeader + n
	buf := make([]byte, size)
	xgb.Put32(buf, uint32(size))
	xgb.Put32(buf[4:], OpTexImage2D)
	e.putTexImage(buf[8:], target, level, internalFormat, width, height, border, format, typ)
	copy(buf[8+texImageHeader:], pixels)
	e.t.RenderLarge(buf)
	return nil
}

func (e *Encoder) putTexImage(buf []byte, target uint32, level int32, internalFormat, width, height uint32, border int32, format, typ uint32) {
	// swapBytes and lsbFirst stay false; rowLength, skipRows and
	// skipPixels stay 0.
	xgb.Put32(buf[16:], e.unpackAlignment)
	xgb.Put32(buf[20:], target)
	xgb.Put32(buf[24:], uint32(level))
	xgb.Put32(buf[28:], internalFormat)
	xgb.Put32(buf[32:], width)
	xgb.Put32(buf[36:], height)
	xgb.Put32(buf[40:], uint32(border))
	xgb.Put32(buf[44:], format)
	xgb.Put32(buf[48:], typ)
}

// imageSize is the unpacked byte size of an unsigned-byte image.
func (e *Encoder) imageSize(width, height, format uint32) int {
	components := 4
	switch format {
	case RGB:
		components = 3
	case LuminanceAlpha:
		components = 2
	}
	row := int(width) * components
	if a := int(e.unpackAlignment); a > 1 {
		row = (row + a - 1) / a * a
	}
	return row * int(height)
}

// GenTextures flushes pending commands and allocates n texture names.
func (e *Encoder) GenTextures(n int) ([]uint32, error) {
	e.Flush()
	return e.t.GenTextures(n)
}

// DeleteTextures flushes pending commands and frees texture names. Zero
// names are skipped.
func (e *Encoder) DeleteTextures(ids ...uint32) {
	var live []uint32
	for _, id := range ids {
		if id != 0 {
			live = append(live, id)
		}
	}
	if len(live) == 0 {
		return
	}
	e.Flush()
	e.t.DeleteTextures(live)
}
