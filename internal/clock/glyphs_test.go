package clock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeDigitsEmbeddedFont(t *testing.T) {
	face, err := LoadFace("", 48)
	require.NoError(t, err)
	defer face.Close()

	glyphs, err := RasterizeDigits(face)
	require.NoError(t, err)

	for d, g := range glyphs {
		require.NotZero(t, g.Width, "digit %d", d)
		require.NotZero(t, g.Height, "digit %d", d)
		require.Len(t, g.Pix, int(2*g.Width*g.Height), "digit %d", d)
		assert.Positive(t, g.Top, "digit %d sits above the baseline", d)

		var covered bool
		for i := 0; i < len(g.Pix); i += 2 {
			assert.Equal(t, byte(0xff), g.Pix[i])
			assert.LessOrEqual(t, g.Pix[i+1], byte(247))
			if g.Pix[i+1] > 0 {
				covered = true
			}
		}
		assert.True(t, covered, "digit %d has ink", d)
	}

	assert.Greater(t, glyphs[8].Height, uint32(24))
}

func TestLoadFaceErrors(t *testing.T) {
	_, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 48)
	assert.ErrorContains(t, err, "failed to read font")

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o644))
	_, err = LoadFace(bad, 48)
	assert.ErrorContains(t, err, "failed to parse font")
}
