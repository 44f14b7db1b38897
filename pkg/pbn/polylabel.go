package pbn

import (
	"container/heap"
	"math"
)

// PolygonPoint is a floating-point vertex used by the pole-of-inaccessibility
// search; facets work in integer pixel coordinates but the search itself
// needs fractional cell centers.
type PolygonPoint struct {
	X, Y float64
}

// Ring is a closed polygon ring (not explicitly closing the last point back
// to the first — the distance/inside tests treat it as implicitly closed).
type Ring []PolygonPoint

// Polygon is an outer ring followed by zero or more hole rings.
type Polygon []Ring

// LabelResult is the outcome of a pole-of-inaccessibility search: the
// anchor point and its distance to the nearest boundary edge.
type LabelResult struct {
	Point    PolygonPoint
	Distance float64
}

type cell struct {
	x, y, h float64
	d       float64
	max     float64
}

func newCell(x, y, h float64, polygon Polygon) cell {
	d := pointToPolygonDist(x, y, polygon)
	return cell{x: x, y: y, h: h, d: d, max: d + h*math.Sqrt2}
}

// cellHeap is a max-heap on cell.max, per §4.10's "expand the cell with the
// highest upper bound" rule.
type cellHeap []cell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].max > h[j].max }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(cell)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Polylabel finds the pole of inaccessibility of polygon to within
// precision pixels (§4.10). polygon[0] is the outer ring; any further rings
// are holes. A degenerate (zero-area) bounding box returns polygon[0][0]
// with distance 0.
func Polylabel(polygon Polygon, precision float64) LabelResult {
	outer := polygon[0]

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range outer {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	width := maxX - minX
	height := maxY - minY
	cellSize := math.Min(width, height)
	h := cellSize / 2

	if cellSize == 0 {
		return LabelResult{Point: outer[0], Distance: 0}
	}

	var queue cellHeap
	for y := minY; y < maxY; y += cellSize {
		for x := minX; x < maxX; x += cellSize {
			heap.Push(&queue, newCell(x+h, y+h, h, polygon))
		}
	}

	best := centroidCell(polygon)

	bboxCell := newCell(minX+width/2, minY+height/2, 0, polygon)
	if bboxCell.d > best.d {
		best = bboxCell
	}

	for queue.Len() > 0 {
		c := heap.Pop(&queue).(cell)

		if c.d > best.d {
			best = c
		}

		if c.max-best.d <= precision {
			continue
		}

		half := c.h / 2
		heap.Push(&queue, newCell(c.x-half, c.y-half, half, polygon))
		heap.Push(&queue, newCell(c.x+half, c.y-half, half, polygon))
		heap.Push(&queue, newCell(c.x-half, c.y+half, half, polygon))
		heap.Push(&queue, newCell(c.x+half, c.y+half, half, polygon))
	}

	return LabelResult{Point: PolygonPoint{X: best.x, Y: best.y}, Distance: best.d}
}

func segDistSquared(px, py float64, a, b PolygonPoint) float64 {
	x, y := a.X, a.Y
	dx := b.X - x
	dy := b.Y - y

	if dx != 0 || dy != 0 {
		t := ((px-x)*dx + (py-y)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x, y = b.X, b.Y
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}

	dx = px - x
	dy = py - y
	return dx*dx + dy*dy
}

// pointToPolygonDist returns the signed distance from (x,y) to polygon's
// outline: positive inside, negative outside.
func pointToPolygonDist(x, y float64, polygon Polygon) float64 {
	inside := false
	minDistSq := math.Inf(1)

	for _, ring := range polygon {
		n := len(ring)
		j := n - 1
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[j]

			if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}

			if d := segDistSquared(x, y, a, b); d < minDistSq {
				minDistSq = d
			}

			j = i
		}
	}

	sign := -1.0
	if inside {
		sign = 1.0
	}
	return sign * math.Sqrt(minDistSq)
}

// centroidCell seeds the search with the outer ring's area centroid.
func centroidCell(polygon Polygon) cell {
	area := 0.0
	x, y := 0.0, 0.0
	points := polygon[0]

	n := len(points)
	j := n - 1
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[j]
		f := a.X*b.Y - b.X*a.Y
		x += (a.X + b.X) * f
		y += (a.Y + b.Y) * f
		area += f * 3
		j = i
	}

	if area == 0 {
		return newCell(points[0].X, points[0].Y, 0, polygon)
	}
	return newCell(x/area, y/area, 0, polygon)
}
