package pbn

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color. It is the only representation that
// crosses the pipeline's public boundary — the clustering color space is an
// internal detail of the quantizer.
type RGB struct {
	R, G, B uint8
}

// ColorSpace selects the domain the K-means clusterer measures distance in.
// It is a configuration option, not a type parameter: a tagged-enum
// dispatch around three pure converters, per §9's design note.
type ColorSpace int

const (
	// RGBSpace clusters directly on 0-255 RGB channels.
	RGBSpace ColorSpace = iota
	// HSLSpace clusters on hue/saturation/lightness.
	HSLSpace
	// LABSpace clusters on CIE-LAB (D65, sRGB gamma) — perceptually uniform.
	LABSpace
)

// String returns the canonical settings name for the color space.
func (c ColorSpace) String() string {
	switch c {
	case RGBSpace:
		return "RGB"
	case HSLSpace:
		return "HSL"
	case LABSpace:
		return "LAB"
	default:
		return "unknown"
	}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// rgbToVectorValues converts an RGB color into the raw dimensional values of
// the given clustering space. The conversions are pure functions of their
// input.
func rgbToVectorValues(c RGB, space ColorSpace) []float64 {
	switch space {
	case HSLSpace:
		h, s, l := toColorful(c).Hsl()
		return []float64{h, s, l}
	case LABSpace:
		l, a, b := toColorful(c).Lab()
		return []float64{l, a, b}
	default: // RGBSpace
		return []float64{float64(c.R), float64(c.G), float64(c.B)}
	}
}

// vectorValuesToRGB converts dimensional values back to RGB, inverting
// rgbToVectorValues for the given space. The output space is always RGB, per
// §4.4's quantizer output contract.
func vectorValuesToRGB(values []float64, space ColorSpace) RGB {
	switch space {
	case HSLSpace:
		return fromColorful(colorful.Hsl(values[0], values[1], values[2]))
	case LABSpace:
		return fromColorful(colorful.Lab(values[0], values[1], values[2]))
	default: // RGBSpace
		clampByte := func(v float64) uint8 {
			if v < 0 {
				return 0
			}
			if v > 255 {
				return 255
			}
			return uint8(v + 0.5)
		}
		return RGB{R: clampByte(values[0]), G: clampByte(values[1]), B: clampByte(values[2])}
	}
}

// colorDistanceRGBSquared is the squared Euclidean RGB distance. Comparisons
// between distances are monotonic in the square, so callers that only need
// ordering (the narrow-strip cleaner's nearest-neighbor pick, the facet
// reducer's color tie-break) skip the sqrt.
func colorDistanceRGBSquared(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// colorDistanceRGB is the Euclidean RGB distance used where §4.5/§4.8
// reference an actual distance value rather than just an ordering.
func colorDistanceRGB(a, b RGB) float64 {
	return math.Sqrt(colorDistanceRGBSquared(a, b))
}
