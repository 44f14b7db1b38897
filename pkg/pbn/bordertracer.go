package pbn

import (
	"fmt"
	"sort"
)

// BorderSegment is a polyline shared between a facet and exactly one
// neighbor (or the image boundary, NeighborID == -1). Key identifies the
// segment independent of which of the two facets it was traced from, so
// a serializer can recognize the same physical edge from both sides.
type BorderSegment struct {
	NeighborID int
	Points     []Point
	Key        string
}

type unitEdge struct {
	from, to   Point
	neighborID int
}

// TraceBorders derives every surviving facet's cyclic border-segment
// sequence (§4.9) and stores it on facet.Borders. Call before smoothing.
func TraceBorders(fr *FacetResult) {
	for _, f := range fr.Facets {
		if f == nil {
			continue
		}
		f.Borders = traceFacetBorder(f, fr)
	}
}

// SmoothBorders runs passes rounds of midpoint-subdivision smoothing over
// every facet's border segments (§4.9). Each pass replaces every polyline
// edge (p_i, p_{i+1}) with (p_i, midpoint, p_{i+1}), keeping the endpoints
// fixed. Because a shared edge's two segments are traced as exact mirror
// images of one another (reverse point order, same coordinates),
// subdividing each independently keeps both sides of the edge aligned
// without needing a separate shared cache.
func SmoothBorders(fr *FacetResult, passes int) {
	for _, f := range fr.Facets {
		if f == nil {
			continue
		}
		for i := range f.Borders {
			for p := 0; p < passes; p++ {
				f.Borders[i].Points = subdivide(f.Borders[i].Points)
			}
		}
	}
}

func subdivide(points []Point) []Point {
	if len(points) < 2 {
		return points
	}
	out := make([]Point, 0, len(points)*2-1)
	for i := 0; i < len(points)-1; i++ {
		out = append(out, points[i])
		out = append(out, midpoint(points[i], points[i+1]))
	}
	out = append(out, points[len(points)-1])
	return out
}

func midpoint(a, b Point) Point {
	// Half-pixel midpoints are rounded toward the lower coordinate so
	// successive passes stay on an integer grid; this biases smoothing by
	// at most half a pixel, acceptable at the precision this module works
	// at.
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// traceFacetBorder walks facet's unit boundary edges (one per border-pixel
// side that meets a different facet or the image edge) into closed loops,
// then collapses each loop's maximal same-neighbor runs into segments.
func traceFacetBorder(facet *Facet, fr *FacetResult) []*BorderSegment {
	loops := traceFacetLoops(facet, fr)

	var segments []*BorderSegment
	for _, loop := range loops {
		segments = append(segments, groupIntoSegments(loop, facet.ID)...)
	}
	return segments
}

// traceFacetLoops walks facet's unit boundary edges into closed loops of
// corner points. The first (and usually only) loop is the outer boundary;
// any further loops are holes. Shared by TraceBorders and the label
// locator's polygon construction.
func traceFacetLoops(facet *Facet, fr *FacetResult) [][]unitEdge {
	edgesFrom := make(map[Point][]unitEdge)

	for _, p := range facet.BorderPoints {
		x, y := p.X, p.Y
		collect := func(nx, ny int, e unitEdge) {
			nid := -1
			if fr.FacetMap.InBounds(nx, ny) {
				nid = fr.FacetMap.Get(nx, ny)
			}
			if nid == facet.ID {
				return
			}
			e.neighborID = nid
			edgesFrom[e.from] = append(edgesFrom[e.from], e)
		}

		collect(x, y-1, unitEdge{from: Point{x, y}, to: Point{x + 1, y}})
		collect(x+1, y, unitEdge{from: Point{x + 1, y}, to: Point{x + 1, y + 1}})
		collect(x, y+1, unitEdge{from: Point{x + 1, y + 1}, to: Point{x, y + 1}})
		collect(x-1, y, unitEdge{from: Point{x, y + 1}, to: Point{x, y}})
	}

	// Corner points are walked in sorted order, not map iteration order:
	// Go randomizes map iteration per-process, and the starting vertex of
	// a loop trace otherwise decided which run of loop got split across
	// the slice boundary in groupIntoSegments, breaking §8 reproducibility.
	starts := make([]Point, 0, len(edgesFrom))
	for p := range edgesFrom {
		starts = append(starts, p)
	}
	sort.Slice(starts, func(i, j int) bool {
		if starts[i].Y != starts[j].Y {
			return starts[i].Y < starts[j].Y
		}
		return starts[i].X < starts[j].X
	})

	used := make(map[unitEdge]bool)
	var loops [][]unitEdge

	for _, start := range starts {
		for _, e := range edgesFrom[start] {
			if used[e] {
				continue
			}
			var loop []unitEdge
			cur := e
			for {
				used[cur] = true
				loop = append(loop, cur)
				if cur.to == start {
					break
				}
				next := findUnusedFrom(edgesFrom, cur.to, used)
				if next == nil {
					break
				}
				cur = *next
			}
			loops = append(loops, rotateToRunBoundary(loop))
		}
	}

	return loops
}

// rotateToRunBoundary rotates loop so element 0 begins a new same-neighbor
// run rather than landing mid-run. Without this, groupIntoSegments's forced
// cut at the slice end splits one logical wraparound run into two whenever
// the loop happens to start inside it. A loop with a single uniform
// neighbor id throughout has no run boundary to rotate to and is returned
// unchanged.
func rotateToRunBoundary(loop []unitEdge) []unitEdge {
	if len(loop) < 2 {
		return loop
	}
	for i, e := range loop {
		prev := loop[(i-1+len(loop))%len(loop)]
		if e.neighborID != prev.neighborID {
			if i == 0 {
				return loop
			}
			rotated := make([]unitEdge, 0, len(loop))
			rotated = append(rotated, loop[i:]...)
			rotated = append(rotated, loop[:i]...)
			return rotated
		}
	}
	return loop
}

func findUnusedFrom(edgesFrom map[Point][]unitEdge, from Point, used map[unitEdge]bool) *unitEdge {
	for _, e := range edgesFrom[from] {
		if !used[e] {
			return &e
		}
	}
	return nil
}

// groupIntoSegments collapses a closed unit-edge loop into maximal runs
// sharing one neighbor id, each becoming one BorderSegment.
func groupIntoSegments(loop []unitEdge, facetID int) []*BorderSegment {
	if len(loop) == 0 {
		return nil
	}

	var segments []*BorderSegment
	runStart := 0
	for i := 1; i <= len(loop); i++ {
		atEnd := i == len(loop)
		changed := atEnd || loop[i].neighborID != loop[runStart].neighborID
		if changed {
			segments = append(segments, newBorderSegment(loop[runStart:i], facetID))
			runStart = i
		}
	}
	return segments
}

func newBorderSegment(run []unitEdge, facetID int) *BorderSegment {
	points := make([]Point, 0, len(run)+1)
	points = append(points, run[0].from)
	for _, e := range run {
		points = append(points, e.to)
	}

	neighborID := run[0].neighborID
	a, b := facetID, neighborID
	if b < a {
		a, b = b, a
	}
	// Endpoints go into the key in (Y, X) order, since the facet on the
	// other side traces the same run in reverse.
	first, last := points[0], points[len(points)-1]
	if last.Y < first.Y || (last.Y == first.Y && last.X < first.X) {
		first, last = last, first
	}
	key := fmt.Sprintf("%d:%d:%d,%d-%d,%d", a, b, first.X, first.Y, last.X, last.Y)

	return &BorderSegment{NeighborID: neighborID, Points: points, Key: key}
}
