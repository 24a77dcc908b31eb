package glx

import "fmt"

// GLX attribute tokens used during negotiation.
const (
	attrDoubleBuffer  = 5
	attrRedSize       = 8
	attrGreenSize     = 9
	attrBlueSize      = 10
	attrAlphaSize     = 11
	attrDepthSize     = 12
	attrStencilSize   = 13
	attrXVisualType   = 0x22
	attrVisualID      = 0x800B
	attrDrawableType  = 0x8010
	attrRenderType    = 0x8011
	attrXRenderable   = 0x8012
	attrFBConfigID    = 0x8013
	attrSampleBuffers = 100000
	attrSamples       = 100001

	trueColor  = 0x8002
	windowBit  = 0x1
	rgbaBit    = 0x1
	xTrueColor = 4 // X11 TrueColor visual class

	contextMajorVersionARB = 0x2091
	contextMinorVersionARB = 0x2092
)

// requirement is one entry of a framebuffer attribute filter.
type requirement struct {
	attr uint32
	want uint32
	// mask compares with want as a bitmask; otherwise value must be >= want,
	// or == want for exact tokens.
	mask  bool
	exact bool
}

// baseRequirements is the filter modern FBConfigs must pass: an X-renderable,
// window-capable, RGBA, TrueColor, double-buffered config with 8-bit channels,
// 24-bit depth and 8-bit stencil.
var baseRequirements = []requirement{
	{attr: attrXRenderable, want: 1, exact: true},
	{attr: attrDrawableType, want: windowBit, mask: true},
	{attr: attrRenderType, want: rgbaBit, mask: true},
	{attr: attrXVisualType, want: trueColor, exact: true},
	{attr: attrRedSize, want: 8},
	{attr: attrGreenSize, want: 8},
	{attr: attrBlueSize, want: 8},
	{attr: attrAlphaSize, want: 8},
	{attr: attrDepthSize, want: 24},
	{attr: attrStencilSize, want: 8},
	{attr: attrDoubleBuffer, want: 1, exact: true},
}

// FBConfig is one framebuffer configuration as reported by GetFBConfigs.
type FBConfig struct {
	Attribs map[uint32]uint32
}

// ID returns the GLX_FBCONFIG_ID.
func (c FBConfig) ID() uint32 { return c.Attribs[attrFBConfigID] }

// VisualID returns the X visual bound to the config (0 if none).
func (c FBConfig) VisualID() uint32 { return c.Attribs[attrVisualID] }

// SampleBuffers returns GLX_SAMPLE_BUFFERS.
func (c FBConfig) SampleBuffers() uint32 { return c.Attribs[attrSampleBuffers] }

// Samples returns GLX_SAMPLES.
func (c FBConfig) Samples() uint32 { return c.Attribs[attrSamples] }

func (c FBConfig) satisfies(reqs []requirement) bool {
	for _, r := range reqs {
		got, ok := c.Attribs[r.attr]
		if !ok {
			return false
		}
		switch {
		case r.mask:
			if got&r.want != r.want {
				return false
			}
		case r.exact:
			if got != r.want {
				return false
			}
		default:
			if got < r.want {
				return false
			}
		}
	}
	return true
}

// parseFBConfigs splits a GetFBConfigs property list. Each config is
// numProps (attribute, value) pairs.
func parseFBConfigs(numConfigs, numProps uint32, props []uint32) ([]FBConfig, error) {
	stride := int(numProps) * 2
	if want := int(numConfigs) * stride; len(props) < want {
		return nil, fmt.Errorf("fbconfig property list truncated: have %d words, want %d", len(props), want)
	}

	configs := make([]FBConfig, 0, numConfigs)
	for i := 0; i < int(numConfigs); i++ {
		chunk := props[i*stride : (i+1)*stride]
		attribs := make(map[uint32]uint32, numProps)
		for j := 0; j+1 < len(chunk); j += 2 {
			attribs[chunk[j]] = chunk[j+1]
		}
		configs = append(configs, FBConfig{Attribs: attribs})
	}
	return configs, nil
}

// filterFBConfigs keeps configs that satisfy the base requirements and are
// bound to an X visual, preserving server order.
func filterFBConfigs(configs []FBConfig) []FBConfig {
	var out []FBConfig
	for _, c := range configs {
		if c.VisualID() == 0 {
			continue
		}
		if c.satisfies(baseRequirements) {
			out = append(out, c)
		}
	}
	return out
}

// chooseFBConfig returns the index of the config with the most samples among
// those with at least one sample buffer. The first config wins ties and is
// the fallback when none is multisampled.
func chooseFBConfig(configs []FBConfig) int {
	if len(configs) == 0 {
		return -1
	}
	best := -1
	var bestSamples uint32
	for i, c := range configs {
		if c.SampleBuffers() == 0 {
			continue
		}
		if best < 0 || c.Samples() > bestSamples {
			best = i
			bestSamples = c.Samples()
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// legacyVisual is one entry of a GetVisualConfigs reply.
type legacyVisual struct {
	VisualID     uint32
	Class        uint32
	RGBA         bool
	DoubleBuffer bool
	DepthSize    uint32
}

// legacyFixedProps is the number of untagged leading values per visual.
const legacyFixedProps = 18

// parseVisualConfigs decodes a GetVisualConfigs property list. Each visual
// starts with 18 fixed-position values (id, class, rgba, r, g, b, a, accum
// r/g/b/a, double buffer, stereo, buffer size, depth, stencil, aux, level)
// followed by tagged pairs.
func parseVisualConfigs(numVisuals, numProps uint32, props []uint32) ([]legacyVisual, error) {
	if numProps < legacyFixedProps {
		return nil, fmt.Errorf("visual config has %d properties, need at least %d", numProps, legacyFixedProps)
	}
	stride := int(numProps)
	if want := int(numVisuals) * stride; len(props) < want {
		return nil, fmt.Errorf("visual config list truncated: have %d words, want %d", len(props), want)
	}

	visuals := make([]legacyVisual, 0, numVisuals)
	for i := 0; i < int(numVisuals); i++ {
		p := props[i*stride : (i+1)*stride]
		visuals = append(visuals, legacyVisual{
			VisualID:     p[0],
			Class:        p[1],
			RGBA:         p[2] != 0,
			DoubleBuffer: p[11] != 0,
			DepthSize:    p[14],
		})
	}
	return visuals, nil
}

// chooseLegacyVisual mirrors glXChooseVisual for {RGBA, DOUBLEBUFFER,
// DEPTH_SIZE 24}: the first TrueColor match wins.
func chooseLegacyVisual(visuals []legacyVisual) (legacyVisual, bool) {
	for _, v := range visuals {
		if v.RGBA && v.DoubleBuffer && v.DepthSize >= 24 && v.Class == xTrueColor {
			return v, true
		}
	}
	return legacyVisual{}, false
}
