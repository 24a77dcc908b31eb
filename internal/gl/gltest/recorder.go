// Package gltest provides a gl.Transport that records decoded commands.
package gltest

import (
	"fmt"

	"github.com/1broseidon/cubeclock/internal/gl"
	"github.com/BurntSushi/xgb"
)

// Command is one decoded render command.
type Command struct {
	Opcode uint16
	Args   []byte
	Large  bool
}

// Uint32 returns the i-th 32-bit argument.
func (c Command) Uint32(i int) uint32 {
	return xgb.Get32(c.Args[4*i:])
}

// Recorder implements gl.Transport in memory.
type Recorder struct {
	Commands []Command
	Renders  int
	Textures map[uint32]bool
	Deleted  []uint32

	// GenErr, when set, fails GenTextures.
	GenErr error

	next uint32
}

var _ gl.Transport = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Textures: make(map[uint32]bool)}
}

// Render decodes a batch of small commands.
func (r *Recorder) Render(data []byte) {
	r.Renders++
	for len(data) > 0 {
		if len(data) < 4 {
			panic(fmt.Sprintf("gltest: %d trailing bytes", len(data)))
		}
		size := int(xgb.Get16(data))
		op := xgb.Get16(data[2:])
		if size < 4 || size > len(data) {
			panic(fmt.Sprintf("gltest: bad command length %d for opcode %d", size, op))
		}
		args := append([]byte(nil), data[4:size]...)
		r.Commands = append(r.Commands, Command{Opcode: op, Args: args})
		data = data[size:]
	}
}

// RenderLarge records one large command.
func (r *Recorder) RenderLarge(data []byte) {
	size := int(xgb.Get32(data))
	if size != len(data) {
		panic(fmt.Sprintf("gltest: large command length %d, have %d bytes", size, len(data)))
	}
	r.Commands = append(r.Commands, Command{
		Opcode: uint16(xgb.Get32(data[4:])),
		Args:   append([]byte(nil), data[8:]...),
		Large:  true,
	})
}

// GenTextures hands out sequential names starting at 1.
func (r *Recorder) GenTextures(n int) ([]uint32, error) {
	if r.GenErr != nil {
		return nil, r.GenErr
	}
	ids := make([]uint32, n)
	for i := range ids {
		r.next++
		ids[i] = r.next
		r.Textures[r.next] = true
	}
	return ids, nil
}

// DeleteTextures records freed names.
func (r *Recorder) DeleteTextures(ids []uint32) {
	for _, id := range ids {
		delete(r.Textures, id)
	}
	r.Deleted = append(r.Deleted, ids...)
}

// Count returns how many recorded commands have opcode.
func (r *Recorder) Count(opcode uint16) int {
	n := 0
	for _, c := range r.Commands {
		if c.Opcode == opcode {
			n++
		}
	}
	return n
}

// Find returns the recorded commands with opcode.
func (r *Recorder) Find(opcode uint16) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Opcode == opcode {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops recorded commands, keeping texture bookkeeping.
func (r *Recorder) Reset() {
	r.Commands = nil
	r.Renders = 0
}
