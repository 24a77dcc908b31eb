package clock

import (
	"math/rand/v2"

	"github.com/1broseidon/cubeclock/internal/gl"
)

const (
	// noValue never matches a time field, so the first update bakes a texture.
	noValue = ^uint32(0)

	maxTilt   = 60
	tiltStep  = 0.2
	fullTurn  = 360
	cubeDepth = -5.5
)

// Cube is one rotating time cube. Its six faces share an edge texture showing
// the two digits of value.
type Cube struct {
	X, Y    float32
	AngleX  float32
	AngleY  float32
	DY      float32
	Value   uint32
	Texture uint32
}

// NewCube places a cube at (x, y) with random starting angles.
func NewCube(x, y float32, texture uint32, rng *rand.Rand) Cube {
	return Cube{
		X:       x,
		Y:       y,
		AngleX:  float32(rng.IntN(fullTurn + 1)),
		AngleY:  float32(rng.IntN(maxTilt + 1)),
		DY:      tiltStep,
		Value:   noValue,
		Texture: texture,
	}
}

// Advance spins the cube by delta degrees around its vertical axis and tilts
// it one step, turning back once it passes ±60 degrees.
func (c *Cube) Advance(delta float32) {
	c.AngleX += delta
	if c.AngleX > fullTurn {
		c.AngleX = 0
	}
	c.AngleY += c.DY
	if (c.AngleY > maxTilt && c.DY > 0) || (c.AngleY < -maxTilt && c.DY < 0) {
		c.DY = -c.DY
	}
}

// NeedsBake reports whether value differs from what the texture shows.
func (c *Cube) NeedsBake(value uint32) bool {
	return c.Value != value
}

type cubeFace struct {
	normal [3]float32
	tex    [4][2]float32
	vert   [4][3]float32
}

// cubeFaces are unit cube faces with texture coordinates in texels.
var cubeFaces = [6]cubeFace{
	{
		normal: [3]float32{0, 0, 0.2},
		tex:    [4][2]float32{{edgeSize, edgeSize}, {0, edgeSize}, {0, 0}, {edgeSize, 0}},
		vert:   [4][3]float32{{0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}},
	},
	{
		normal: [3]float32{0, 0, -0.2},
		tex:    [4][2]float32{{edgeSize, 0}, {edgeSize, edgeSize}, {0, edgeSize}, {0, 0}},
		vert:   [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}},
	},
	{
		normal: [3]float32{0, 0.2, 0},
		tex:    [4][2]float32{{0, 0}, {edgeSize, 0}, {edgeSize, edgeSize}, {0, edgeSize}},
		vert:   [4][3]float32{{0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}},
	},
	{
		normal: [3]float32{0, -0.2, 0},
		tex:    [4][2]float32{{edgeSize, edgeSize}, {0, edgeSize}, {0, 0}, {edgeSize, 0}},
		vert:   [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}},
	},
	{
		normal: [3]float32{0.2, 0, 0},
		tex:    [4][2]float32{{0, edgeSize}, {0, 0}, {edgeSize, 0}, {edgeSize, edgeSize}},
		vert:   [4][3]float32{{0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}},
	},
	{
		normal: [3]float32{-0.2, 0, 0},
		tex:    [4][2]float32{{0, 0}, {edgeSize, 0}, {edgeSize, edgeSize}, {0, edgeSize}},
		vert:   [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}},
	},
}

// Draw emits the cube's textured faces in its own transform.
func (c *Cube) Draw(enc *gl.Encoder) {
	enc.PushMatrix()
	enc.Translatef(c.X, c.Y, cubeDepth)
	enc.Rotatef(c.AngleY, 1, 0, 0)
	enc.Rotatef(c.AngleX, 0, 1, 0)
	enc.BindTexture(gl.TextureRectangle, c.Texture)
	enc.Begin(gl.Quads)
	for _, f := range cubeFaces {
		enc.Normal3f(f.normal[0], f.normal[1], f.normal[2])
		for i := range f.vert {
			enc.TexCoord2f(f.tex[i][0], f.tex[i][1])
			enc.Vertex3f(f.vert[i][0], f.vert[i][1], f.vert[i][2])
		}
	}
	enc.End()
	enc.PopMatrix()
}
