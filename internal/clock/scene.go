// Package clock renders the cube clock: three rotating cubes showing hours,
// minutes and seconds over a flame backdrop, with small spheres between them.
//
// A Scene plugs into a glxwindow.Window through its Redraw and Events
// methods and emits GL through a gl.Encoder.
package clock

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/cubeclock/internal/gl"
	"github.com/1broseidon/cubeclock/internal/glxwindow"
)

// DefaultRotationSpeed is the cube spin in degrees per millisecond.
const DefaultRotationSpeed = 0.006

var cubeX = [3]float32{-2, 0, 2}

var (
	light0Diffuse  = []float32{1, 1, 1, 1}
	light0Ambient  = []float32{0.3, 0.3, 0.3, 0.3}
	light0Position = []float32{0, 0, 1, 0}
)

// Options configures a Scene. Zero values select defaults.
type Options struct {
	// FontSize is the nominal glyph size, used to centre digits vertically.
	FontSize float64
	// RotationSpeed is in degrees per millisecond.
	RotationSpeed float64
	Logger        *slog.Logger

	// Now and Rand are replaced in tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// Scene is the clock's render state. Redraw must only be called from the
// goroutine that owns the window; Stop and Running are safe from any
// goroutine.
type Scene struct {
	enc    *gl.Encoder
	flame  FlameSource
	logger *slog.Logger
	now    func() time.Time
	rng    *rand.Rand

	glyphs     [10]Glyph
	fontHeight float32
	speed      float64

	ready     bool
	digitTex  [10]uint32
	flameTex  uint32
	flameSeq  uint64
	flameSize [2]int
	cubes     [3]Cube
	prev      time.Time
	err       error

	stopped atomic.Bool
}

// NewScene returns a scene drawing glyphs through enc. flame may be nil, in
// which case no backdrop is drawn.
func NewScene(enc *gl.Encoder, glyphs [10]Glyph, flame FlameSource, opts Options) *Scene {
	s := &Scene{
		enc:        enc,
		flame:      flame,
		logger:     opts.Logger,
		now:        opts.Now,
		rng:        opts.Rand,
		glyphs:     glyphs,
		fontHeight: float32(opts.FontSize),
		speed:      opts.RotationSpeed,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	if s.speed <= 0 {
		s.speed = DefaultRotationSpeed
	}
	if s.fontHeight <= 0 {
		s.fontHeight = DefaultFontSize
	}
	return s
}

// Running reports whether the scene still wants frames.
func (s *Scene) Running() bool { return !s.stopped.Load() }

// Stop asks the main loop to finish.
func (s *Scene) Stop() { s.stopped.Store(true) }

// Err returns the error that stopped the scene during setup, if any.
func (s *Scene) Err() error { return s.err }

// SetRotationSpeed changes the spin rate, in degrees per millisecond.
func (s *Scene) SetRotationSpeed(speed float64) {
	if speed > 0 {
		s.speed = speed
	}
}

// Cubes returns a copy of the cube states.
func (s *Scene) Cubes() [3]Cube { return s.cubes }

// Events stops the scene on any key or button press.
func (s *Scene) Events(_ *glxwindow.Window, ev xgb.Event) {
	switch ev.(type) {
	case xproto.KeyPressEvent, xproto.ButtonPressEvent:
		s.logger.Debug("input received, stopping")
		s.Stop()
	}
}

// Redraw implements glxwindow.RedrawFunc.
func (s *Scene) Redraw(_ *glxwindow.Window, flags glxwindow.RedrawFlags, state glxwindow.WindowState, _ glxwindow.PointerPosition) {
	if flags.Has(glxwindow.RedrawInit) {
		if err := s.setup(); err != nil {
			s.err = err
			s.logger.Error("scene setup failed", "error", err)
			s.release()
			s.Stop()
			return
		}
	}
	if flags.Has(glxwindow.RedrawDestroy) {
		s.release()
		return
	}
	if !s.ready {
		return
	}
	s.frame(state)
}

func (s *Scene) setup() error {
	enc := s.enc
	enc.Enable(gl.PolygonSmooth)
	enc.Enable(gl.LineSmooth)
	enc.ShadeModel(gl.Smooth)
	enc.Enable(gl.Normalize)
	enc.DepthFunc(gl.Lequal)
	enc.Enable(gl.Multisample)
	enc.Hint(gl.LineSmoothHint, gl.Nicest)
	enc.Hint(gl.PolygonSmoothHint, gl.Nicest)
	enc.Enable(gl.ColorMaterial)
	enc.Enable(gl.TextureRectangle)
	enc.PixelStorei(gl.UnpackAlignment, 1)

	if err := s.bakeDigits(); err != nil {
		return err
	}

	enc.ClearColor(0, 0, 0, 0)
	enc.TexParameterf(gl.TextureRectangle, gl.TextureMinFilter, gl.Linear)
	enc.TexParameterf(gl.TextureRectangle, gl.TextureMagFilter, gl.Linear)

	ids, err := enc.GenTextures(1 + len(s.cubes))
	if err != nil {
		return fmt.Errorf("failed to allocate scene textures: %w", err)
	}
	s.flameTex = ids[0]
	s.flameSeq = 0
	for i := range s.cubes {
		s.cubes[i] = NewCube(cubeX[i], 0, ids[1+i], s.rng)
	}
	s.prev = s.now()
	s.ready = true
	enc.Flush()
	return nil
}

func (s *Scene) bakeDigits() error {
	enc := s.enc
	ids, err := enc.GenTextures(len(s.glyphs))
	if err != nil {
		return fmt.Errorf("failed to allocate digit textures: %w", err)
	}
	copy(s.digitTex[:], ids)

	for i, g := range s.glyphs {
		enc.Enable(gl.TextureRectangle)
		enc.PixelStorei(gl.UnpackAlignment, 1)
		enc.BindTexture(gl.TextureRectangle, s.digitTex[i])
		enc.TexParameterf(gl.TextureRectangle, gl.TextureMinFilter, gl.Linear)
		enc.TexParameterf(gl.TextureRectangle, gl.TextureMagFilter, gl.Linear)
		if err := enc.TexImage2D(gl.TextureRectangle, 0, gl.RGBA, g.Width, g.Height, 0, gl.LuminanceAlpha, gl.UnsignedByte, g.Pix); err != nil {
			return fmt.Errorf("failed to upload digit %d: %w", i, err)
		}
	}
	return nil
}

func (s *Scene) release() {
	var ids []uint32
	for i := range s.cubes {
		ids = append(ids, s.cubes[i].Texture)
		s.cubes[i] = Cube{}
	}
	ids = append(ids, s.flameTex)
	ids = append(ids, s.digitTex[:]...)
	s.enc.DeleteTextures(ids...)

	s.flameTex = 0
	s.digitTex = [10]uint32{}
	s.ready = false
}

func (s *Scene) frame(state glxwindow.WindowState) {
	enc := s.enc

	enc.Disable(gl.Lighting)
	enc.Enable(gl.TextureRectangle)
	enc.PixelStorei(gl.UnpackAlignment, 1)
	enc.ColorMaterial(gl.FrontAndBack, gl.AmbientAndDiffuse)
	enc.Enable(gl.ColorMaterial)

	now := s.now()
	values := [3]uint32{uint32(now.Hour()), uint32(now.Minute()), uint32(now.Second())}
	elapsed := float64(now.Sub(s.prev)) / float64(time.Millisecond)
	delta := float32(s.speed * elapsed)
	s.prev = now

	for i := range s.cubes {
		c := &s.cubes[i]
		if c.NeedsBake(values[i]) {
			c.Value = values[i]
			s.bakeEdge(values[i], c.Texture)
		}
		c.Advance(delta)
	}

	aspect := 1.0
	if state.Height > 0 {
		aspect = float64(state.Width) / float64(state.Height)
	}

	enc.MatrixMode(gl.Projection)
	enc.LoadIdentity()
	enc.Perspective(50, aspect, 0.5, 500)
	enc.MatrixMode(gl.Modelview)
	enc.LoadIdentity()
	enc.Translatef(0, 0, -6)
	enc.DepthFunc(gl.Lequal)
	enc.Hint(gl.PerspectiveCorrHint, gl.Nicest)
	enc.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
	enc.Viewport(0, 0, state.Width, state.Height)
	enc.LoadIdentity()
	enc.PolygonMode(gl.FrontAndBack, gl.Fill)

	s.drawFlame(float32(aspect))

	enc.Enable(gl.Lighting)
	enc.Enable(gl.Light0)
	enc.Lightfv(gl.Light0, gl.Diffuse, light0Diffuse)
	enc.Lightfv(gl.Light0, gl.Ambient, light0Ambient)
	enc.Lightfv(gl.Light0, gl.Position, light0Position)
	enc.Enable(gl.ColorMaterial)
	enc.LightModelf(gl.LightModelTwoSide, 0)

	enc.Color4f(1, 1, 1, 1)
	for i := range s.cubes {
		s.cubes[i].Draw(enc)
	}

	drawSpheres(enc)
	enc.Flush()
}

func (s *Scene) drawFlame(aspect float32) {
	enc := s.enc
	enc.Enable(gl.Blend)
	enc.Disable(gl.DepthTest)
	enc.BlendFunc(gl.SrcAlpha, gl.One)
	enc.Enable(gl.TextureRectangle)
	enc.PixelStorei(gl.UnpackAlignment, 1)

	enc.BindTexture(gl.TextureRectangle, s.flameTex)
	if s.flame != nil {
		if f := s.flame.Latest(); f != nil && f.Seq != s.flameSeq {
			if err := enc.TexImage2D(gl.TextureRectangle, 0, gl.RGB, uint32(f.Width), uint32(f.Height), 0, gl.RGB, gl.UnsignedByte, f.Pix); err != nil {
				s.logger.Warn("flame upload failed", "error", err)
			} else {
				s.flameSeq = f.Seq
				s.flameSize = [2]int{f.Width, f.Height}
			}
		}
	}
	enc.Disable(gl.Lighting)
	if s.flameSeq == 0 {
		return
	}

	sMax := float32(s.flameSize[0]/2 - 1)
	tMax := float32(s.flameSize[1] - 1)
	enc.Color4f(1, 1, 1, 0.9)
	enc.PushMatrix()
	enc.Translatef(0, 0, -10)
	enc.Begin(gl.Quads)
	enc.Normal3f(0, 0, 1)
	enc.TexCoord2f(0, 0)
	enc.Vertex3f(-5*aspect, -5.2, 0)
	enc.TexCoord2f(sMax, 0)
	enc.Vertex3f(-5*aspect, 4, 0)
	enc.TexCoord2f(sMax, tMax)
	enc.Vertex3f(5*aspect, 4, 0)
	enc.TexCoord2f(0, tMax)
	enc.Vertex3f(5*aspect, -5.2, 0)
	enc.End()
	enc.PopMatrix()
}
