package pbn

// CleanNarrowStrips runs up to passes scans of idx, rewriting isolated
// single-pixel color anomalies (§4.5). A pixel is rewritten when its color
// differs from every one of its 4-neighbors and those neighbors together
// use at most two distinct colors; it is repainted to whichever of those
// neighbor colors is closest to its own by Euclidean RGB distance (ties go
// to the lower neighbor color index). Edge and corner pixels are never
// touched. Returns the total number of pixels changed across all passes;
// a pass that changes nothing ends the loop early.
func CleanNarrowStrips(idx *IndexGrid, colors ColorTable, passes int) int {
	total := 0
	for p := 0; p < passes; p++ {
		changed := cleanPass(idx, colors)
		total += changed
		if changed == 0 {
			break
		}
	}
	return total
}

func cleanPass(idx *IndexGrid, colors ColorTable) int {
	w, h := idx.W, idx.H
	if w < 3 || h < 3 {
		return 0
	}

	// Replacements are computed against a snapshot of the pass's starting
	// state so within-pass decisions don't see each other's rewrites.
	original := make([]int, len(idx.Data))
	copy(original, idx.Data)

	changed := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			self := original[y*w+x]

			left := original[y*w+x-1]
			right := original[y*w+x+1]
			up := original[(y-1)*w+x]
			down := original[(y+1)*w+x]

			if left == self || right == self || up == self || down == self {
				continue
			}

			distinct := distinctColors(left, right, up, down)
			if len(distinct) > 2 {
				continue
			}

			replacement := closestNeighborColor(colors, self, distinct)
			idx.Set(x, y, replacement)
			changed++
		}
	}

	return changed
}

func distinctColors(vals ...int) []int {
	var out []int
	for _, v := range vals {
		found := false
		for _, o := range out {
			if o == v {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}

func closestNeighborColor(colors ColorTable, self int, candidates []int) int {
	best := candidates[0]
	bestDist := colorDistanceRGBSquared(colors[self], colors[best])
	for _, c := range candidates[1:] {
		d := colorDistanceRGBSquared(colors[self], colors[c])
		if d < bestDist || (d == bestDist && c < best) {
			bestDist = d
			best = c
		}
	}
	return best
}
