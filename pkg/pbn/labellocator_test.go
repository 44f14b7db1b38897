package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateLabel_RectangleFacetLandsNearCenter(t *testing.T) {
	idx, colors := gridFromColors(20, 10, func(x, y int) RGB { return RGB{R: 7, G: 7, B: 7} })
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)
	TraceBorders(fr)
	LocateLabels(fr)

	f := fr.Get(0)
	assert.InDelta(t, 9.5, float64(f.LabelPoint.X), 1.5)
	assert.InDelta(t, 4.5, float64(f.LabelPoint.Y), 1.5)
	assert.True(t, f.LabelBounds.Width() > 0)
}

func TestLocateLabels_SkipsTombstonedFacets(t *testing.T) {
	idx, colors := fieldWithBlockGrid(20, 20, 8, 8, 4)
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)
	ReduceFacets(fr, idx, colors, 20, false, 0, nil)
	require.Equal(t, 1, fr.GetFacetCount())

	TraceBorders(fr)
	LocateLabels(fr)

	for _, f := range fr.Facets {
		if f == nil {
			continue
		}
		assert.True(t, f.LabelBounds.Width() >= 0)
	}
}

func TestLocateLabel_AnchorLiesWithinBoundingBox(t *testing.T) {
	idx, colors := gridFromColors(15, 15, func(x, y int) RGB { return RGB{R: 3, G: 3, B: 3} })
	fr := BuildFacets(idx, colors)
	BuildAllNeighbors(fr)
	TraceBorders(fr)
	LocateLabels(fr)

	f := fr.Get(0)
	assert.GreaterOrEqual(t, f.LabelPoint.X, f.BBox.MinX)
	assert.LessOrEqual(t, f.LabelPoint.X, f.BBox.MaxX)
	assert.GreaterOrEqual(t, f.LabelPoint.Y, f.BBox.MinY)
	assert.LessOrEqual(t, f.LabelPoint.Y, f.BBox.MaxY)
}
