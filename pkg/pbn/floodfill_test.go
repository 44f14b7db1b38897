package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloodFillPoints_FullGrid(t *testing.T) {
	w, h := 5, 5
	include := func(x, y int) bool { return true }
	pts := FloodFillPoints(2, 2, w, h, include)
	assert.Len(t, pts, w*h)
}

func TestFloodFillPoints_BoundedRegion(t *testing.T) {
	w, h := 6, 6
	// Region is the left half only.
	include := func(x, y int) bool { return x < 3 }
	pts := FloodFillPoints(0, 0, w, h, include)
	assert.Len(t, pts, 3*h)
	for _, p := range pts {
		assert.Less(t, p.X, 3)
	}
}

func TestFloodFillPoints_DoesNotCrossDiagonalGap(t *testing.T) {
	// Two included pixels touching only at a corner should not be connected
	// by a 4-connected fill.
	w, h := 2, 2
	include := func(x, y int) bool { return (x == 0 && y == 0) || (x == 1 && y == 1) }
	pts := FloodFillPoints(0, 0, w, h, include)
	assert.Len(t, pts, 1)
}

func TestFloodFillPoints_SeedExcludedReturnsEmpty(t *testing.T) {
	include := func(x, y int) bool { return false }
	pts := FloodFillPoints(1, 1, 3, 3, include)
	assert.Empty(t, pts)
}

func TestFloodFillPoints_VisitsEachPixelOnce(t *testing.T) {
	w, h := 10, 10
	include := func(x, y int) bool { return true }
	seen := make(map[Point]int)
	FloodFillCallback(5, 5, w, h, include, func(x, y int) {
		seen[Point{X: x, Y: y}]++
	})
	for p, n := range seen {
		assert.Equal(t, 1, n, "pixel %v visited more than once", p)
	}
	assert.Len(t, seen, w*h)
}
