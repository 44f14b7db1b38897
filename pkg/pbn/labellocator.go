package pbn

// defaultLabelPrecision is the pole-of-inaccessibility search precision:
// §4.10 asks for "one pixel" precision.
const defaultLabelPrecision = 1.0

// LocateLabels computes each live facet's label anchor and label bounding
// box (§4.10). Call after TraceBorders (and any smoothing), since it reuses
// the same unit-edge loop trace to build the facet's polygon.
func LocateLabels(fr *FacetResult) {
	for _, f := range fr.Facets {
		if f == nil {
			continue
		}
		LocateLabel(f, fr)
	}
}

// LocateLabel computes the label anchor for a single facet.
func LocateLabel(facet *Facet, fr *FacetResult) {
	polygon := facetPolygon(facet, fr)
	if polygon == nil {
		facet.LabelPoint = Point{X: facet.BBox.MinX, Y: facet.BBox.MinY}
		facet.LabelBounds = NewEmptyBoundingBox()
		facet.LabelBounds.Extend(facet.LabelPoint.X, facet.LabelPoint.Y)
		return
	}

	result := Polylabel(polygon, defaultLabelPrecision)

	anchor := Point{X: int(result.Point.X + 0.5), Y: int(result.Point.Y + 0.5)}
	facet.LabelPoint = anchor

	half := int(result.Distance + 0.5)
	bounds := NewEmptyBoundingBox()
	bounds.Extend(anchor.X-half, anchor.Y-half)
	bounds.Extend(anchor.X+half, anchor.Y+half)
	facet.LabelBounds = bounds
}

// facetPolygon converts facet's traced unit-edge loops into a Polygon: the
// longest loop (by vertex count) is the outer ring, the rest are holes.
func facetPolygon(facet *Facet, fr *FacetResult) Polygon {
	loops := traceFacetLoops(facet, fr)
	if len(loops) == 0 {
		return nil
	}

	rings := make([]Ring, 0, len(loops))
	for _, loop := range loops {
		if len(loop) == 0 {
			continue
		}
		ring := make(Ring, 0, len(loop))
		for _, e := range loop {
			ring = append(ring, PolygonPoint{X: float64(e.from.X), Y: float64(e.from.Y)})
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil
	}

	longest := 0
	for i, r := range rings {
		if len(r) > len(rings[longest]) {
			longest = i
		}
		_ = r
	}
	if longest != 0 {
		rings[0], rings[longest] = rings[longest], rings[0]
	}

	return Polygon(rings)
}
