package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanNarrowStrips_IsolatedPixelGetsRepainted(t *testing.T) {
	field := RGB{R: 0, G: 0, B: 0}
	odd := RGB{R: 255, G: 255, B: 255}
	idx, colors := gridFromColors(5, 5, func(x, y int) RGB {
		if x == 2 && y == 2 {
			return odd
		}
		return field
	})
	fieldIdx := 0

	changed := CleanNarrowStrips(idx, colors, 1)
	assert.Equal(t, 1, changed)
	assert.Equal(t, fieldIdx, idx.Get(2, 2))
}

func TestCleanNarrowStrips_EdgePixelsAreNeverTouched(t *testing.T) {
	field := RGB{R: 0, G: 0, B: 0}
	odd := RGB{R: 255, G: 255, B: 255}
	idx, colors := gridFromColors(5, 5, func(x, y int) RGB {
		if x == 0 && y == 2 {
			return odd
		}
		return field
	})

	changed := CleanNarrowStrips(idx, colors, 3)
	assert.Equal(t, 0, changed)
	assert.Equal(t, odd, colors[idx.Get(0, 2)])
}

func TestCleanNarrowStrips_SolidImageIsUntouched(t *testing.T) {
	idx, colors := gridFromColors(6, 6, func(x, y int) RGB { return RGB{R: 5, G: 5, B: 5} })
	changed := CleanNarrowStrips(idx, colors, 2)
	assert.Equal(t, 0, changed)
}

func TestCleanNarrowStrips_StopsEarlyWhenPassMakesNoChange(t *testing.T) {
	field := RGB{R: 0, G: 0, B: 0}
	odd := RGB{R: 255, G: 255, B: 255}
	idx, colors := gridFromColors(5, 5, func(x, y int) RGB {
		if x == 2 && y == 2 {
			return odd
		}
		return field
	})

	total := CleanNarrowStrips(idx, colors, 10)
	assert.Equal(t, 1, total, "second pass should find nothing left to clean")
}

func TestClosestNeighborColor_TiesGoToLowerIndex(t *testing.T) {
	colors := ColorTable{
		{R: 0, G: 0, B: 0},
		{R: 10, G: 0, B: 0},
		{R: 0, G: 10, B: 0},
	}
	// Candidates 1 and 2 are equidistant (10) from self (index 0); the lower
	// candidate index should win the tie.
	got := closestNeighborColor(colors, 0, []int{1, 2})
	assert.Equal(t, 1, got)
}
