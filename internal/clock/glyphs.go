package clock

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the digit size in points.
const DefaultFontSize = 256

// glyphDPI matches the resolution digit sizes are specified at.
const glyphDPI = 96

// glyphAlpha scales glyph coverage so digits stay slightly translucent.
const glyphAlpha = 0.97

// Glyph is a rasterized digit as a luminance-alpha bitmap, two bytes per
// pixel, rows top to bottom.
type Glyph struct {
	Width  uint32
	Height uint32
	// Left is the horizontal bearing, Top the distance from the baseline to
	// the top row.
	Left int32
	Top  int32
	Pix  []byte
}

// LoadFace opens the font at path, or the embedded Go Bold font when path
// is empty, at size points.
func LoadFace(path string, size float64) (font.Face, error) {
	data := gobold.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     glyphDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// RasterizeDigits renders '0' through '9'.
func RasterizeDigits(face font.Face) ([10]Glyph, error) {
	var glyphs [10]Glyph
	for i := range glyphs {
		g, err := rasterize(face, rune('0'+i))
		if err != nil {
			return glyphs, err
		}
		glyphs[i] = g
	}
	return glyphs, nil
}

func rasterize(face font.Face, r rune) (Glyph, error) {
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}, fmt.Errorf("font has no glyph for %q", r)
	}

	w, h := dr.Dx(), dr.Dy()
	g := Glyph{
		Width:  uint32(w),
		Height: uint32(h),
		Left:   int32(dr.Min.X),
		Top:    int32(-dr.Min.Y),
		Pix:    make([]byte, 2*w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			i := 2 * (y*w + x)
			g.Pix[i] = 0xff
			g.Pix[i+1] = uint8(glyphAlpha * float64(a>>8))
		}
	}
	return g, nil
}
