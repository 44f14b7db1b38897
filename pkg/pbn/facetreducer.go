package pbn

import (
	"sort"
	"time"
)

// ReduceFacets removes facets below threshold and then enforces a maximum
// facet count, reassigning pixels to neighbors and repairing the region
// graph as it goes (§4.8). largeFirst controls Phase 1's processing order.
// maxFacets <= 0 means no cap. onProgress, if non-nil, is called at most
// twice per second with a fraction in [0,1].
func ReduceFacets(fr *FacetResult, idx *IndexGrid, colors ColorTable, smallerThan int, largeFirst bool, maxFacets int, onProgress ProgressFunc) {
	if smallerThan <= 0 && maxFacets <= 0 {
		if onProgress != nil {
			onProgress("reduce", 1.0)
		}
		return
	}

	colorDist := buildColorDistanceMatrix(colors)
	visited := make([]bool, fr.Width*fr.Height)

	liveIDs := func() []int {
		var ids []int
		for _, f := range fr.Facets {
			if f != nil {
				ids = append(ids, f.ID)
			}
		}
		return ids
	}

	processing := liveIDs()
	sort.SliceStable(processing, func(i, j int) bool {
		pi, pj := fr.Facets[processing[i]].PointCount, fr.Facets[processing[j]].PointCount
		if largeFirst {
			return pi > pj
		}
		return pi < pj
	})

	lastProgress := time.Now()
	maybeUpdate := func(fraction float64) {
		if onProgress == nil {
			return
		}
		now := time.Now()
		if now.Sub(lastProgress) >= 500*time.Millisecond {
			lastProgress = now
			if fraction < 0 {
				fraction = 0
			}
			if fraction > 1 {
				fraction = 1
			}
			onProgress("reduce", fraction)
		}
	}

	facetCount := len(processing)
	startFacetCount := facetCount

	n := len(processing)
	for i, fid := range processing {
		f := fr.Facets[fid]
		if f == nil {
			continue
		}
		if f.PointCount < smallerThan {
			deleteFacet(f.ID, fr, idx, colorDist, visited)
			facetCount--
		}
		maybeUpdate(0.5 * float64(i+1) / float64(maxInt(1, n)))
	}

	if maxFacets > 0 && facetCount > maxFacets {
		for facetCount > maxFacets {
			ids := liveIDs()
			if len(ids) == 0 {
				break
			}
			sort.Slice(ids, func(i, j int) bool {
				return fr.Facets[ids[i]].PointCount < fr.Facets[ids[j]].PointCount
			})
			smallest := fr.Facets[ids[0]]
			if smallest == nil {
				facetCount = len(liveIDs())
				continue
			}

			deleteFacet(smallest.ID, fr, idx, colorDist, visited)
			facetCount--

			denom := maxInt(1, startFacetCount-maxFacets)
			progress := 0.5 + 0.5*(1.0-float64(facetCount-maxFacets)/float64(denom))
			maybeUpdate(progress)
		}
	}

	if onProgress != nil {
		onProgress("reduce", 1.0)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// deleteFacet reassigns every pixel of facet id to the nearest surviving
// neighbor, repairs the affected neighbors, then tombstones the slot.
func deleteFacet(id int, fr *FacetResult, idx *IndexGrid, colorDist [][]float64, visited []bool) {
	if id < 0 || id >= len(fr.Facets) {
		return
	}
	facet := fr.Facets[id]
	if facet == nil {
		return
	}

	EnsureNeighbors(facet, fr)

	if len(facet.Neighbors) == 0 {
		fr.Facets[id] = nil
		return
	}

	minX, maxX := facet.BBox.MinX, facet.BBox.MaxX
	minY, maxY := facet.BBox.MinY, facet.BBox.MaxY

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if fr.FacetMap.Get(x, y) != id {
				continue
			}
			neighID := closestNeighborForPixel(facet, fr, x, y, colorDist)
			if neighID == -1 {
				continue
			}
			neigh := fr.Facets[neighID]
			if neigh == nil {
				continue
			}
			idx.Set(x, y, neigh.ColorIndex)
		}
	}

	rebuildForFacetChange(visited, facet, idx, fr)

	fr.Facets[id] = nil
}

// closestNeighborForPixel finds facet's surviving neighbor whose nearest
// border point is Manhattan-closest to (x,y); ties break by lower color
// distance to facet's color, then lowest neighbor id.
func closestNeighborForPixel(facet *Facet, fr *FacetResult, x, y int, colorDist [][]float64) int {
	EnsureNeighbors(facet, fr)
	if len(facet.Neighbors) == 0 {
		return -1
	}

	closest := -1
	minDistance := 1 << 30
	minColorDistance := maxFloat

	colorRow := colorDist[facet.ColorIndex]

	for _, nID := range facet.Neighbors {
		neigh := fr.Facets[nID]
		if neigh == nil || len(neigh.BorderPoints) == 0 {
			continue
		}

		dx := 0
		if x < neigh.BBox.MinX {
			dx = neigh.BBox.MinX - x
		} else if x > neigh.BBox.MaxX {
			dx = x - neigh.BBox.MaxX
		}
		dy := 0
		if y < neigh.BBox.MinY {
			dy = neigh.BBox.MinY - y
		} else if y > neigh.BBox.MaxY {
			dy = y - neigh.BBox.MaxY
		}
		if dx+dy > minDistance {
			continue
		}

		minD := 1 << 30
		for _, bp := range neigh.BorderPoints {
			d := absInt(bp.X-x) + absInt(bp.Y-y)
			if d < minD {
				minD = d
			}
		}

		if minD < minDistance {
			minDistance = minD
			closest = nID
			minColorDistance = colorRow[neigh.ColorIndex]
		} else if minD == minDistance {
			cd := colorRow[neigh.ColorIndex]
			if cd < minColorDistance || (cd == minColorDistance && nID < closest) {
				minColorDistance = cd
				closest = nID
			}
		}
	}

	return closest
}

const maxFloat = 1.0e308

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rebuildForFacetChange rebuilds facet-to-remove's neighbors (whose pixel
// membership changed), then runs the fallback sweep for any orphan pixel
// still tagged with the removed id, repeating the neighbor rebuild if the
// sweep touched anything.
func rebuildForFacetChange(visited []bool, facetToRemove *Facet, idx *IndexGrid, fr *FacetResult) {
	rebuildChangedNeighbors(visited, facetToRemove, idx, fr)

	needsRebuild := false

	minX, maxX := facetToRemove.BBox.MinX, facetToRemove.BBox.MaxX
	minY, maxY := facetToRemove.BBox.MinY, facetToRemove.BBox.MaxY
	removedID := facetToRemove.ID
	w, h := fr.Width, fr.Height

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if fr.FacetMap.Get(x, y) != removedID {
				continue
			}
			needsRebuild = true

			assigned := false
			if x-1 >= 0 {
				if nid := fr.FacetMap.Get(x-1, y); nid != removedID {
					if neigh := fr.Get(nid); neigh != nil {
						idx.Set(x, y, neigh.ColorIndex)
						assigned = true
					}
				}
			}
			if !assigned && y-1 >= 0 {
				if nid := fr.FacetMap.Get(x, y-1); nid != removedID {
					if neigh := fr.Get(nid); neigh != nil {
						idx.Set(x, y, neigh.ColorIndex)
						assigned = true
					}
				}
			}
			if !assigned && x+1 < w {
				if nid := fr.FacetMap.Get(x+1, y); nid != removedID {
					if neigh := fr.Get(nid); neigh != nil {
						idx.Set(x, y, neigh.ColorIndex)
						assigned = true
					}
				}
			}
			if !assigned && y+1 < h {
				if nid := fr.FacetMap.Get(x, y+1); nid != removedID {
					if neigh := fr.Get(nid); neigh != nil {
						idx.Set(x, y, neigh.ColorIndex)
					}
				}
			}
		}
	}

	if needsRebuild {
		rebuildChangedNeighbors(visited, facetToRemove, idx, fr)
	}
}

// rebuildChangedNeighbors re-floods every neighbor of facetToRemove from one
// of its remaining border points using the updated idx, and marks the
// neighbors' own neighbors dirty.
func rebuildChangedNeighbors(visited []bool, facetToRemove *Facet, idx *IndexGrid, fr *FacetResult) {
	if facetToRemove == nil {
		return
	}
	EnsureNeighbors(facetToRemove, fr)
	if len(facetToRemove.Neighbors) == 0 {
		return
	}

	changed := make(map[int]struct{})
	rebuilt := make(map[int]struct{})

	neighborIDs := append([]int(nil), facetToRemove.Neighbors...)

	for _, nID := range neighborIDs {
		neigh := fr.Facets[nID]
		if neigh == nil {
			continue
		}
		changed[nID] = struct{}{}

		EnsureNeighbors(neigh, fr)
		for _, nn := range neigh.Neighbors {
			changed[nn] = struct{}{}
		}

		if len(neigh.BorderPoints) > 0 {
			if _, done := rebuilt[nID]; !done {
				bp := neigh.BorderPoints[0]
				newFacet := buildFacet(nID, neigh.ColorIndex, bp.X, bp.Y, idx, visited, fr)
				fr.Facets[nID] = newFacet
				rebuilt[nID] = struct{}{}

				if newFacet.PointCount == 0 {
					fr.Facets[nID] = nil
				}
			}
		}
	}

	for _, nID := range neighborIDs {
		neigh := fr.Facets[nID]
		if neigh == nil {
			continue
		}
		for y := neigh.BBox.MinY; y <= neigh.BBox.MaxY; y++ {
			for x := neigh.BBox.MinX; x <= neigh.BBox.MaxX; x++ {
				if fr.FacetMap.Get(x, y) == neigh.ID {
					visited[y*fr.Width+x] = false
				}
			}
		}
	}

	for k := range changed {
		if f := fr.Get(k); f != nil {
			f.Neighbors = nil
			f.NeighborsDirty = true
		}
	}
}

// buildColorDistanceMatrix precomputes the pairwise Euclidean distance
// between every pair of palette colors.
func buildColorDistanceMatrix(colors ColorTable) [][]float64 {
	n := len(colors)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = colorDistanceRGB(colors[i], colors[j])
		}
	}
	return m
}
