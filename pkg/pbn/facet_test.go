package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacetResult_GetOutOfRangeOrTombstonedIsNil(t *testing.T) {
	fr := NewFacetResult(5, 5)
	fr.Facets = append(fr.Facets, &Facet{ID: 0}, nil)

	assert.NotNil(t, fr.Get(0))
	assert.Nil(t, fr.Get(1), "tombstoned slot")
	assert.Nil(t, fr.Get(-1))
	assert.Nil(t, fr.Get(2))
	assert.Equal(t, 1, fr.GetFacetCount())
}

func TestFacet_String(t *testing.T) {
	f := &Facet{ID: 3, ColorIndex: 2, PointCount: 40, BorderPoints: []Point{{X: 0, Y: 0}}}
	assert.Contains(t, f.String(), "id=3")
	assert.Contains(t, f.String(), "pointCount=40")
}

func TestBoundingBox_ExtendAndDimensions(t *testing.T) {
	b := NewEmptyBoundingBox()
	b.Extend(2, 3)
	b.Extend(5, 1)
	assert.Equal(t, 2, b.MinX)
	assert.Equal(t, 1, b.MinY)
	assert.Equal(t, 5, b.MaxX)
	assert.Equal(t, 3, b.MaxY)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 3, b.Height())
}
