package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorSpace_String(t *testing.T) {
	cases := []struct {
		space ColorSpace
		want  string
	}{
		{RGBSpace, "RGB"},
		{HSLSpace, "HSL"},
		{LABSpace, "LAB"},
		{ColorSpace(99), "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.space.String())
	}
}

func TestRGBVectorRoundTrip(t *testing.T) {
	spaces := []ColorSpace{RGBSpace, HSLSpace, LABSpace}
	colors := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 12, G: 34, B: 56},
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
	}
	for _, space := range spaces {
		for _, c := range colors {
			values := rgbToVectorValues(c, space)
			back := vectorValuesToRGB(values, space)
			assert.InDelta(t, int(c.R), int(back.R), 2, "R round-trip in %s", space)
			assert.InDelta(t, int(c.G), int(back.G), 2, "G round-trip in %s", space)
			assert.InDelta(t, int(c.B), int(back.B), 2, "B round-trip in %s", space)
		}
	}
}

func TestColorDistanceRGB_IdenticalIsZero(t *testing.T) {
	c := RGB{R: 10, G: 20, B: 30}
	assert.Equal(t, 0.0, colorDistanceRGB(c, c))
}

func TestColorDistanceRGB_KnownDistance(t *testing.T) {
	a := RGB{R: 0, G: 0, B: 0}
	b := RGB{R: 3, G: 4, B: 0}
	assert.Equal(t, 5.0, colorDistanceRGB(a, b))
}
