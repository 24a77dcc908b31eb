package clock

import (
	"github.com/1broseidon/cubeclock/internal/gl"
)

// Edge texture layout, in texels.
const (
	edgeSize    = 512
	borderWidth = 20
	cathetus    = 90
	lineInset   = 0.8
	outlineW    = 3
)

type rect struct{ x0, y0, x1, y1 float32 }

func (r rect) quad(enc *gl.Encoder) {
	enc.Vertex3f(r.x0, r.y0, 1)
	enc.Vertex3f(r.x1, r.y0, 1)
	enc.Vertex3f(r.x1, r.y1, 1)
	enc.Vertex3f(r.x0, r.y1, 1)
}

// bakeEdge draws the two-digit face for value into the back buffer and copies
// it into texture. Values above 99 are ignored. The caller redraws the frame
// afterwards, so the back buffer contents are disposable.
func (s *Scene) bakeEdge(value uint32, texture uint32) {
	if value > 99 {
		return
	}
	enc := s.enc
	const far = edgeSize - 1

	enc.Viewport(0, 0, edgeSize, edgeSize)
	enc.MatrixMode(gl.Projection)
	enc.LoadIdentity()
	enc.Ortho(0, edgeSize, 0, edgeSize, 0, 20)
	enc.Translatef(0, 0, -1)

	enc.Disable(gl.TextureRectangle)
	enc.MatrixMode(gl.Modelview)
	enc.LoadIdentity()
	enc.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
	enc.Enable(gl.DepthTest)
	enc.Disable(gl.Blend)

	enc.Color4f(0, 0.1, 0.1, 0.9)
	enc.Begin(gl.Quads)
	enc.Normal3f(0, 0, 1)
	rect{0, 0, far, far}.quad(enc)
	enc.End()

	enc.Color4f(0.1, 0.1, 1, 0.9)
	enc.Begin(gl.Quads)
	enc.Normal3f(0, 0, 1)
	rect{0, 0, far, borderWidth}.quad(enc)
	rect{0, 0, borderWidth, far}.quad(enc)
	rect{far - borderWidth, 0, far, far}.quad(enc)
	rect{0, far - borderWidth, far, far}.quad(enc)
	enc.End()

	enc.Begin(gl.Triangles)
	enc.Normal3f(0, 0, 1)
	for _, t := range [4][3][2]float32{
		{{0, 0}, {cathetus, 0}, {0, cathetus}},
		{{far, 0}, {far - cathetus, 0}, {far, cathetus}},
		{{0, far}, {cathetus, far}, {0, far - cathetus}},
		{{far, far}, {far - cathetus, far}, {far, far - cathetus}},
	} {
		for _, v := range t {
			enc.Vertex3f(v[0], v[1], 1)
		}
	}
	enc.End()

	const in = cathetus * lineInset
	enc.LineWidth(outlineW)
	enc.Color4f(1, 0.9, 0.1, 0.7)
	enc.Begin(gl.LineLoop)
	enc.Normal3f(0, 0, 1)
	for _, v := range [8][2]float32{
		{in, borderWidth},
		{far - in, borderWidth},
		{far - borderWidth, in},
		{far - borderWidth, far - in},
		{far - in, far - borderWidth},
		{in, far - borderWidth},
		{borderWidth, far - in},
		{borderWidth, in},
	} {
		enc.Vertex3f(v[0], v[1], 1)
	}
	enc.End()

	enc.Color4f(1, 1, 1, 0.9)
	enc.TexEnvi(gl.TextureEnv, gl.TextureEnvMode, gl.Modulate)
	enc.Disable(gl.Lighting)
	enc.Enable(gl.TextureRectangle)
	enc.PixelStorei(gl.UnpackAlignment, 1)
	enc.ColorMaterial(gl.FrontAndBack, gl.AmbientAndDiffuse)
	enc.Enable(gl.ColorMaterial)
	enc.Disable(gl.DepthTest)
	enc.Enable(gl.Blend)
	enc.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
	enc.Normal3f(0, 0, 1)

	digits := [2]uint32{value / 10, value % 10}
	first := s.glyphs[digits[0]]
	x := float32(edgeSize/2) - float32(int32(first.Width)+first.Left)
	y := float32(edgeSize-s.fontHeight) / 2
	for _, d := range digits {
		g := s.glyphs[d]
		w, h := float32(g.Width), float32(g.Height)
		enc.BindTexture(gl.TextureRectangle, s.digitTex[d])
		enc.Begin(gl.Quads)
		enc.TexCoord2f(w, 0)
		enc.Vertex3f(x+w, y+h, 0.5)
		enc.TexCoord2f(0, 0)
		enc.Vertex3f(x, y+h, 0.5)
		enc.TexCoord2f(0, h)
		enc.Vertex3f(x, y, 0.5)
		enc.TexCoord2f(w, h)
		enc.Vertex3f(x+w, y, 0.5)
		enc.End()
		x += w + float32(g.Left)
	}

	enc.Enable(gl.TextureRectangle)
	enc.BindTexture(gl.TextureRectangle, texture)
	enc.CopyTexImage2D(gl.TextureRectangle, 0, gl.RGBA, 0, 0, edgeSize, edgeSize, 0)
}
