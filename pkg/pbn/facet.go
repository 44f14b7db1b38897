package pbn

import "fmt"

// Facet is a single connected region of same-colored pixels. Facets are
// built by the flood-fill facet builder, merged away by the facet reducer,
// and finally traced into border segments and a label point.
type Facet struct {
	ID               int
	ColorIndex       int
	PointCount       int
	BBox             BoundingBox
	BorderPoints     []Point
	Neighbors        []int
	NeighborsDirty   bool
	Borders          []*BorderSegment
	LabelBounds      BoundingBox
	LabelPoint       Point
}

func (f *Facet) String() string {
	return fmt.Sprintf("Facet(id=%d, color=%d, pointCount=%d, borderPoints=%d)",
		f.ID, f.ColorIndex, f.PointCount, len(f.BorderPoints))
}

// FacetResult is the region graph for a pipeline run: the per-pixel facet
// map plus the facet slot table. Facets is slot-indexed: a merged-away facet
// becomes a nil slot rather than being removed, so surviving facet ids and
// indices into Facets always agree. len(Facets) therefore only ever grows;
// GetFacetCount reports the number of live (non-nil) slots.
type FacetResult struct {
	Width, Height int
	FacetMap      *FacetIDGrid
	Facets        []*Facet
}

// NewFacetResult allocates an empty result sized to w×h.
func NewFacetResult(w, h int) *FacetResult {
	return &FacetResult{
		Width:    w,
		Height:   h,
		FacetMap: NewFacetIDGrid(w, h),
	}
}

// GetFacetCount returns the number of live (non-tombstoned) facets.
func (fr *FacetResult) GetFacetCount() int {
	n := 0
	for _, f := range fr.Facets {
		if f != nil {
			n++
		}
	}
	return n
}

// Get returns the facet for id, or nil if id is out of range or tombstoned.
func (fr *FacetResult) Get(id int) *Facet {
	if id < 0 || id >= len(fr.Facets) {
		return nil
	}
	return fr.Facets[id]
}
