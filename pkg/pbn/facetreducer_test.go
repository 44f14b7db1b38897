package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldWithBlockGrid(w, h, ox, oy, blockSize int) (*IndexGrid, ColorTable) {
	field := RGB{R: 100, G: 100, B: 100}
	block := RGB{R: 200, G: 50, B: 50}
	return gridFromColors(w, h, func(x, y int) RGB {
		if x >= ox && x < ox+blockSize && y >= oy && y < oy+blockSize {
			return block
		}
		return field
	})
}

func TestReduceFacets_SmallFacetIsAbsorbedByFieldNeighbor(t *testing.T) {
	idx, colors := fieldWithBlockGrid(20, 20, 8, 8, 4)
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)
	require.Equal(t, 2, fr.GetFacetCount())

	ReduceFacets(fr, idx, colors, 20, false, 0, nil)

	assert.Equal(t, 1, fr.GetFacetCount())
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			assert.Equal(t, 0, idx.Get(x, y))
		}
	}
}

func TestReduceFacets_AboveThresholdSurvives(t *testing.T) {
	idx, colors := fieldWithBlockGrid(20, 20, 8, 8, 4)
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)

	ReduceFacets(fr, idx, colors, 10, false, 0, nil)

	assert.Equal(t, 2, fr.GetFacetCount())
}

func TestReduceFacets_MaxFacetsCapsCount(t *testing.T) {
	// Four quadrants of distinct colors, each comfortably above any size
	// threshold, capped down to 2 by maxFacets.
	idx, colors := gridFromColors(10, 10, func(x, y int) RGB {
		switch {
		case x < 5 && y < 5:
			return RGB{R: 10, G: 10, B: 10}
		case x >= 5 && y < 5:
			return RGB{R: 20, G: 20, B: 20}
		case x < 5 && y >= 5:
			return RGB{R: 30, G: 30, B: 30}
		default:
			return RGB{R: 40, G: 40, B: 40}
		}
	})
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)
	require.Equal(t, 4, fr.GetFacetCount())

	ReduceFacets(fr, idx, colors, 0, false, 2, nil)

	assert.Equal(t, 2, fr.GetFacetCount())
}

func TestReduceFacets_NoopWhenNoThresholdOrCap(t *testing.T) {
	idx, colors := fieldWithBlockGrid(20, 20, 8, 8, 4)
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)

	progressCalls := 0
	ReduceFacets(fr, idx, colors, 0, false, 0, func(stage string, fraction float64) {
		progressCalls++
		assert.Equal(t, "reduce", stage)
		assert.Equal(t, 1.0, fraction)
	})

	assert.Equal(t, 2, fr.GetFacetCount())
	assert.Equal(t, 1, progressCalls)
}
