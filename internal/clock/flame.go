package clock

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"
)

// seedBand is the number of adjacent rows sharing one random seed.
const seedBand = 8

// heatDivisor averages three neighbours with a slight gain.
const heatDivisor = 2.97

// Palette maps heat to colour: black to red, red to yellow, yellow to white,
// then white.
type Palette [256][3]byte

// NewPalette builds the fire palette from four 64-step ramps.
func NewPalette() Palette {
	var p Palette
	for i := 0; i < 64; i++ {
		v := byte(i * 4)
		p[i] = [3]byte{v, 0, 0}
		p[i+64] = [3]byte{0xff, v, 0}
		p[i+128] = [3]byte{0xff, 0xff, v}
		p[i+192] = [3]byte{0xff, 0xff, 0xff}
	}
	return p
}

// FlameFrame is one published RGB frame, Width pixels per row.
type FlameFrame struct {
	Width  int
	Height int
	Pix    []byte
	Seq    uint64
}

// Flame is the fire simulation. Heat spreads along each row from column 0,
// where every band of rows is seeded with a fresh random value per step.
type Flame struct {
	width, height int
	heat          []uint8
	pix           []byte
	palette       Palette
	rng           *rand.Rand
	seq           uint64
}

// NewFlame returns a simulation of height rows, width cells each. A nil rng
// is seeded from the clock.
func NewFlame(width, height int, rng *rand.Rand) *Flame {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Flame{
		width:   width,
		height:  height,
		heat:    make([]uint8, width*height),
		pix:     make([]byte, 3*width*height),
		palette: NewPalette(),
		rng:     rng,
	}
}

func (f *Flame) at(row, col int) int { return row*f.width + col }

// spread computes one cell from its three neighbours in the previous column.
func (f *Flame) spread(row, col int) uint8 {
	sum := int(f.heat[f.at(row-1, col-1)]) +
		int(f.heat[f.at(row, col-1)]) +
		int(f.heat[f.at(row+1, col-1)])
	v := int(float64(sum) / heatDivisor)
	if v > 0xff {
		v = 0xff
	}
	if v > 1 {
		return uint8(v - 1)
	}
	return 0
}

// Step advances the simulation one frame. The first pass walks rows
// downward, the second walks them back up and paints the result.
func (f *Flame) Step() {
	for row := 0; row < f.height; row += seedBand {
		seed := uint8(f.rng.Uint32())
		for k := 0; k < seedBand && row+k < f.height; k++ {
			f.heat[f.at(row+k, 0)] = seed
		}
	}

	for row := 1; row < f.height-1; row++ {
		for col := 1; col < f.width-1; col++ {
			f.heat[f.at(row, col)] = f.spread(row, col)
		}
	}
	for row := f.height - 2; row > 1; row-- {
		for col := 1; col < f.width-1; col++ {
			v := f.spread(row, col)
			i := f.at(row, col)
			f.heat[i] = v
			c := f.palette[v]
			copy(f.pix[3*i:3*i+3], c[:])
		}
	}
	f.seq++
}

// Snapshot copies the current pixels into a new frame.
func (f *Flame) Snapshot() *FlameFrame {
	return &FlameFrame{
		Width:  f.width,
		Height: f.height,
		Pix:    slices.Clone(f.pix),
		Seq:    f.seq,
	}
}

// FlameSource supplies the most recent flame frame, or nil before the
// first one.
type FlameSource interface {
	Latest() *FlameFrame
}

// FlameWorker steps a Flame on its own goroutine and publishes each frame.
// Readers never see a frame that is still being written.
type FlameWorker struct {
	flame    *Flame
	interval time.Duration
	latest   atomic.Pointer[FlameFrame]
}

// NewFlameWorker returns a worker stepping flame every interval.
func NewFlameWorker(flame *Flame, interval time.Duration) *FlameWorker {
	return &FlameWorker{flame: flame, interval: interval}
}

// Latest returns the last published frame.
func (w *FlameWorker) Latest() *FlameFrame {
	return w.latest.Load()
}

// Run steps and publishes frames until ctx is cancelled.
func (w *FlameWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.flame.Step()
		w.latest.Store(w.flame.Snapshot())

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
