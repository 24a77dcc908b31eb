package clock

import (
	"math"

	"github.com/1broseidon/cubeclock/internal/gl"
)

const (
	sphereRadius = 0.1
	sphereSlices = 16
	sphereStacks = 16
)

var (
	sphereX = [4]float32{1, 1, -1, -1}
	sphereY = [4]float32{0.2, -0.2, 0.2, -0.2}
)

// drawSphere emits a smooth-shaded sphere centred at the origin as a band of
// quads per stack.
func drawSphere(enc *gl.Encoder, radius float32, slices, stacks int) {
	enc.Begin(gl.Quads)
	for i := 0; i < stacks; i++ {
		phi0 := math.Pi * float64(i) / float64(stacks)
		phi1 := math.Pi * float64(i+1) / float64(stacks)
		for j := 0; j < slices; j++ {
			th0 := 2 * math.Pi * float64(j) / float64(slices)
			th1 := 2 * math.Pi * float64(j+1) / float64(slices)
			for _, p := range [4][2]float64{{phi0, th0}, {phi1, th0}, {phi1, th1}, {phi0, th1}} {
				nx := float32(math.Sin(p[0]) * math.Cos(p[1]))
				ny := float32(math.Sin(p[0]) * math.Sin(p[1]))
				nz := float32(math.Cos(p[0]))
				enc.Normal3f(nx, ny, nz)
				enc.Vertex3f(radius*nx, radius*ny, radius*nz)
			}
		}
	}
	enc.End()
}

func drawSpheres(enc *gl.Encoder) {
	enc.Disable(gl.TextureRectangle)
	enc.Disable(gl.Blend)
	enc.Enable(gl.DepthTest)
	enc.Color3f(0.4, 0.2, 0.2)
	for i := range sphereX {
		enc.PushMatrix()
		enc.Normal3f(0, 0, 1)
		enc.Translatef(sphereX[i], sphereY[i], cubeDepth)
		drawSphere(enc, sphereRadius, sphereSlices, sphereStacks)
		enc.PopMatrix()
	}
}
