package pbn

import "sort"

// BuildFacets walks idx in row-major order and flood-fills each unvisited
// pixel into a new facet, producing the facet-id grid and facet list
// (§4.7). Facet ids are assigned in the order regions are first
// encountered, so re-running BuildFacets on identical input reproduces
// identical ids.
func BuildFacets(idx *IndexGrid, colors ColorTable) *FacetResult {
	w, h := idx.W, idx.H
	result := NewFacetResult(w, h)
	visited := make([]bool, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] {
				continue
			}
			colorIndex := idx.Get(x, y)
			facetID := len(result.Facets)
			facet := buildFacet(facetID, colorIndex, x, y, idx, visited, result)
			result.Facets = append(result.Facets, facet)
		}
	}

	return result
}

func buildFacet(facetID, colorIndex, x, y int, idx *IndexGrid, visited []bool, result *FacetResult) *Facet {
	facet := &Facet{
		ID:             facetID,
		ColorIndex:     colorIndex,
		BBox:           NewEmptyBoundingBox(),
		NeighborsDirty: true,
	}

	w, h := idx.W, idx.H
	include := func(px, py int) bool {
		return !visited[py*w+px] && idx.Get(px, py) == colorIndex
	}

	floodFill(x, y, w, h, include, func(px, py int) {
		visited[py*w+px] = true
		result.FacetMap.Set(px, py, facetID)
		facet.PointCount++
		facet.BBox.Extend(px, py)

		if isBorderPixel(idx, px, py, colorIndex) {
			facet.BorderPoints = append(facet.BorderPoints, Point{X: px, Y: py})
		}
	})

	return facet
}

// isBorderPixel reports whether (x, y) has a 4-neighbor of a different
// color index, or lies on the image boundary.
func isBorderPixel(idx *IndexGrid, x, y, colorIndex int) bool {
	if x == 0 || x == idx.W-1 || y == 0 || y == idx.H-1 {
		return true
	}
	if idx.Get(x-1, y) != colorIndex {
		return true
	}
	if idx.Get(x+1, y) != colorIndex {
		return true
	}
	if idx.Get(x, y-1) != colorIndex {
		return true
	}
	if idx.Get(x, y+1) != colorIndex {
		return true
	}
	return false
}

// BuildNeighbors scans facet's border points' 4-neighbors in result's
// FacetMap and rebuilds its Neighbors set, clearing NeighborsDirty (§4.7).
func BuildNeighbors(facet *Facet, result *FacetResult) {
	seen := make(map[int]struct{})

	w, h := result.Width, result.Height
	for _, p := range facet.BorderPoints {
		if p.X > 0 {
			addNeighbor(seen, result.FacetMap.Get(p.X-1, p.Y), facet.ID)
		}
		if p.X < w-1 {
			addNeighbor(seen, result.FacetMap.Get(p.X+1, p.Y), facet.ID)
		}
		if p.Y > 0 {
			addNeighbor(seen, result.FacetMap.Get(p.X, p.Y-1), facet.ID)
		}
		if p.Y < h-1 {
			addNeighbor(seen, result.FacetMap.Get(p.X, p.Y+1), facet.ID)
		}
	}

	neighbors := make([]int, 0, len(seen))
	for id := range seen {
		neighbors = append(neighbors, id)
	}
	sort.Ints(neighbors)
	facet.Neighbors = neighbors
	facet.NeighborsDirty = false
}

func addNeighbor(seen map[int]struct{}, neighborID, selfID int) {
	if neighborID == selfID || neighborID < 0 {
		return
	}
	seen[neighborID] = struct{}{}
}

// EnsureNeighbors rebuilds facet's neighbor set if it is marked dirty
// (§5's "read of a dirty neighbor set must rebuild it first" discipline).
func EnsureNeighbors(facet *Facet, result *FacetResult) {
	if facet.NeighborsDirty {
		BuildNeighbors(facet, result)
	}
}

// BuildAllNeighbors rebuilds the neighbor set of every live facet in result.
func BuildAllNeighbors(result *FacetResult) {
	for _, f := range result.Facets {
		if f != nil {
			BuildNeighbors(f, result)
		}
	}
}
