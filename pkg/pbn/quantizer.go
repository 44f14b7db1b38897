package pbn

import "sort"

// QuantizeAlgorithm selects how the color table is derived. KMeansQuantize
// is the core algorithm specified by §4.4; MedianCutQuantize and
// OctreeQuantize are alternative, faster approximations offered alongside
// it for callers that don't need K-means' convergence guarantees.
type QuantizeAlgorithm int

const (
	KMeansQuantize QuantizeAlgorithm = iota
	MedianCutQuantize
	OctreeQuantize
)

// QuantizeResult is the color table plus per-pixel index grid produced by
// Quantize.
type QuantizeResult struct {
	Colors ColorTable
	Index  *IndexGrid
}

// Quantize builds the color-index grid for img (§4.4). A zero-sized image
// returns an empty color table and index grid, per §4.4's failure case.
func Quantize(img *Image, settings Settings) (*QuantizeResult, error) {
	if img.W <= 0 || img.H <= 0 {
		return &QuantizeResult{Colors: ColorTable{}, Index: NewIndexGrid(img.W, img.H)}, nil
	}
	if settings.KMeansClusters < 1 {
		return nil, invalidInput("k_means_clusters must be >= 1, got %d", settings.KMeansClusters)
	}

	histogram := buildHistogram(img)

	switch settings.QuantizeAlgorithm {
	case MedianCutQuantize:
		return quantizeMedianCut(img, histogram, settings.KMeansClusters)
	case OctreeQuantize:
		return quantizeOctree(img, histogram, settings.KMeansClusters)
	default:
		return quantizeKMeans(img, histogram, settings)
	}
}

// buildHistogram maps each exact 24-bit RGB color to its pixel frequency.
func buildHistogram(img *Image) map[RGB]int {
	hist := make(map[RGB]int)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			hist[img.At(x, y)]++
		}
	}
	return hist
}

func quantizeKMeans(img *Image, histogram map[RGB]int, settings Settings) (*QuantizeResult, error) {
	uniqueColors := make([]RGB, 0, len(histogram))
	for c := range histogram {
		uniqueColors = append(uniqueColors, c)
	}
	// Deterministic ordering: map iteration order is randomized in Go, and
	// the PRNG draw for initial centroids depends on point order.
	sort.Slice(uniqueColors, func(i, j int) bool { return rgbLess(uniqueColors[i], uniqueColors[j]) })

	points := make([]*Vector, len(uniqueColors))
	for i, c := range uniqueColors {
		points[i] = NewVector(rgbToVectorValues(c, settings.ColorSpace), float64(histogram[c]), c)
	}

	k := settings.KMeansClusters
	if k > len(points) {
		k = len(points)
	}

	rnd := settings.newRandom()
	km, err := NewKMeans(points, k, rnd, nil)
	if err != nil {
		return nil, err
	}
	km.RunUntilConverged(settings.KMeansMinDelta, settings.kMeansMaxIterations())

	colors := make(ColorTable, k)
	for i, c := range km.Centroids() {
		colors[i] = vectorValuesToRGB(c.Values, settings.ColorSpace)
	}

	colorCluster := make(map[RGB]int, len(uniqueColors))
	for _, p := range points {
		colorCluster[p.Tag.(RGB)] = km.Classify(p)
	}

	idx := NewIndexGrid(img.W, img.H)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			idx.Set(x, y, colorCluster[img.At(x, y)])
		}
	}

	return &QuantizeResult{Colors: colors, Index: idx}, nil
}

func rgbLess(a, b RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}

// CountUniqueColors returns the number of distinct 24-bit RGB colors in img.
func CountUniqueColors(img *Image) int {
	return len(buildHistogram(img))
}

// --- median cut -------------------------------------------------------

func quantizeMedianCut(img *Image, histogram map[RGB]int, k int) (*QuantizeResult, error) {
	weighted := make([]weightedColor, 0, len(histogram))
	for c, n := range histogram {
		weighted = append(weighted, weightedColor{c: c, n: n})
	}
	sort.Slice(weighted, func(i, j int) bool { return rgbLess(weighted[i].c, weighted[j].c) })

	if k > len(weighted) {
		k = len(weighted)
	}
	if k == 0 {
		return &QuantizeResult{Colors: ColorTable{}, Index: NewIndexGrid(img.W, img.H)}, nil
	}

	buckets := []colorBucket{{colors: weighted}}
	for len(buckets) < k {
		maxRange := 0
		maxIdx := 0
		for i, b := range buckets {
			if r := b.colorRange(); r > maxRange {
				maxRange = r
				maxIdx = i
			}
		}
		if maxRange == 0 {
			break
		}
		left, right := buckets[maxIdx].split()
		buckets = append(buckets[:maxIdx], append([]colorBucket{left, right}, buckets[maxIdx+1:]...)...)
	}

	colors := make(ColorTable, len(buckets))
	for i, b := range buckets {
		colors[i] = b.average()
	}

	colorCluster := make(map[RGB]int, len(weighted))
	for i, b := range buckets {
		for _, wc := range b.colors {
			colorCluster[wc.c] = i
		}
	}

	idx := NewIndexGrid(img.W, img.H)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			idx.Set(x, y, colorCluster[img.At(x, y)])
		}
	}

	return &QuantizeResult{Colors: colors, Index: idx}, nil
}

type weightedColor struct {
	c RGB
	n int
}

type colorBucket struct {
	colors []weightedColor
}

func (b *colorBucket) colorRange() int {
	if len(b.colors) == 0 {
		return 0
	}
	minR, minG, minB := 255, 255, 255
	maxR, maxG, maxB := 0, 0, 0
	for _, wc := range b.colors {
		c := wc.c
		if int(c.R) < minR {
			minR = int(c.R)
		}
		if int(c.R) > maxR {
			maxR = int(c.R)
		}
		if int(c.G) < minG {
			minG = int(c.G)
		}
		if int(c.G) > maxG {
			maxG = int(c.G)
		}
		if int(c.B) < minB {
			minB = int(c.B)
		}
		if int(c.B) > maxB {
			maxB = int(c.B)
		}
	}
	return (maxR - minR) + (maxG - minG) + (maxB - minB)
}

func (b *colorBucket) split() (colorBucket, colorBucket) {
	if len(b.colors) < 2 {
		return *b, colorBucket{}
	}

	minR, minG, minB := 255, 255, 255
	maxR, maxG, maxB := 0, 0, 0
	for _, wc := range b.colors {
		c := wc.c
		if int(c.R) < minR {
			minR = int(c.R)
		}
		if int(c.R) > maxR {
			maxR = int(c.R)
		}
		if int(c.G) < minG {
			minG = int(c.G)
		}
		if int(c.G) > maxG {
			maxG = int(c.G)
		}
		if int(c.B) < minB {
			minB = int(c.B)
		}
		if int(c.B) > maxB {
			maxB = int(c.B)
		}
	}

	rRange, gRange, bRange := maxR-minR, maxG-minG, maxB-minB

	colors := make([]weightedColor, len(b.colors))
	copy(colors, b.colors)

	switch {
	case rRange >= gRange && rRange >= bRange:
		sort.Slice(colors, func(i, j int) bool { return colors[i].c.R < colors[j].c.R })
	case gRange >= bRange:
		sort.Slice(colors, func(i, j int) bool { return colors[i].c.G < colors[j].c.G })
	default:
		sort.Slice(colors, func(i, j int) bool { return colors[i].c.B < colors[j].c.B })
	}

	mid := len(colors) / 2
	return colorBucket{colors: colors[:mid]}, colorBucket{colors: colors[mid:]}
}

func (b *colorBucket) average() RGB {
	if len(b.colors) == 0 {
		return RGB{}
	}
	var sumR, sumG, sumB, count uint64
	for _, wc := range b.colors {
		w := uint64(wc.n)
		sumR += uint64(wc.c.R) * w
		sumG += uint64(wc.c.G) * w
		sumB += uint64(wc.c.B) * w
		count += w
	}
	if count == 0 {
		return RGB{}
	}
	return RGB{R: uint8(sumR / count), G: uint8(sumG / count), B: uint8(sumB / count)}
}

// --- octree -------------------------------------------------------------

func quantizeOctree(img *Image, histogram map[RGB]int, k int) (*QuantizeResult, error) {
	root := &octreeNode{}
	levels := make([][]*octreeNode, 8)

	for c, n := range histogram {
		root.insert(c.R, c.G, c.B, uint64(n), 0, levels)
	}

	for root.leafCount() > k && k > 0 {
		level := 7
		for level >= 0 && len(levels[level]) == 0 {
			level--
		}
		if level < 0 {
			// Even the root's children outnumber k: the root itself
			// becomes the only leaf.
			root.reduce()
			break
		}
		node := levels[level][0]
		levels[level] = levels[level][1:]
		node.reduce()
	}

	var palette ColorTable
	root.collectPalette(&palette)
	if len(palette) == 0 {
		palette = ColorTable{RGB{}}
	}

	colorCluster := make(map[RGB]int, len(histogram))
	for c := range histogram {
		colorCluster[c] = root.classify(c.R, c.G, c.B, 0, palette)
	}

	idx := NewIndexGrid(img.W, img.H)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			idx.Set(x, y, colorCluster[img.At(x, y)])
		}
	}

	return &QuantizeResult{Colors: palette, Index: idx}, nil
}

type octreeNode struct {
	r, g, b, pixelCount uint64
	children            [8]*octreeNode
	isLeaf              bool
	paletteIndex        int
}

func (n *octreeNode) insert(r, g, b uint8, weight uint64, level int, levels [][]*octreeNode) {
	n.r += uint64(r) * weight
	n.g += uint64(g) * weight
	n.b += uint64(b) * weight
	n.pixelCount += weight

	if level >= 8 || n.isLeaf {
		n.isLeaf = true
		return
	}

	idx := octreeIndex(r, g, b, level)
	if n.children[idx] == nil {
		n.children[idx] = &octreeNode{}
		levels[level] = append(levels[level], n.children[idx])
	}
	n.children[idx].insert(r, g, b, weight, level+1, levels)
}

func octreeIndex(r, g, b uint8, level int) int {
	shift := 7 - level
	idx := 0
	if r&(1<<shift) != 0 {
		idx |= 4
	}
	if g&(1<<shift) != 0 {
		idx |= 2
	}
	if b&(1<<shift) != 0 {
		idx |= 1
	}
	return idx
}

func (n *octreeNode) reduce() {
	n.isLeaf = true
	for i := range n.children {
		n.children[i] = nil
	}
}

func (n *octreeNode) leafCount() int {
	if n.isLeaf {
		return 1
	}
	count := 0
	for _, c := range n.children {
		if c != nil {
			count += c.leafCount()
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

func (n *octreeNode) collectPalette(palette *ColorTable) {
	if n.isLeaf || allNil(n.children) {
		if n.pixelCount > 0 {
			n.paletteIndex = len(*palette)
			*palette = append(*palette, RGB{
				R: uint8(n.r / n.pixelCount),
				G: uint8(n.g / n.pixelCount),
				B: uint8(n.b / n.pixelCount),
			})
		}
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.collectPalette(palette)
		}
	}
}

func allNil(children [8]*octreeNode) bool {
	for _, c := range children {
		if c != nil {
			return false
		}
	}
	return true
}

// classify walks the same path insert would have taken for (r,g,b) down to
// the first leaf it meets, returning that leaf's palette index.
func (n *octreeNode) classify(r, g, b uint8, level int, palette ColorTable) int {
	if n.isLeaf || allNil(n.children) {
		return n.paletteIndex
	}
	idx := octreeIndex(r, g, b, level)
	if n.children[idx] == nil {
		return n.paletteIndex
	}
	return n.children[idx].classify(r, g, b, level+1, palette)
}

// --- dithered preview ----------------------------------------------------

// DitherPreview remaps img to the nearest colors in colors using
// Floyd-Steinberg error diffusion, producing a preview of how the quantized
// palette would render before facet construction. This is a convenience for
// callers, not part of the core IDX/FID pipeline.
func DitherPreview(img *Image, colors ColorTable) *Image {
	w, h := img.W, img.H
	type errColor struct{ r, g, b float64 }
	buf := make([]errColor, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(x, y)
			buf[y*w+x] = errColor{float64(c.R), float64(c.G), float64(c.B)}
		}
	}

	out := NewImage(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := buf[y*w+x]
			clamped := RGB{R: clampByteF(old.r), G: clampByteF(old.g), B: clampByteF(old.b)}
			nearest := nearestColor(clamped, colors)
			out.Set(x, y, nearest)

			errR := old.r - float64(nearest.R)
			errG := old.g - float64(nearest.G)
			errB := old.b - float64(nearest.B)

			diffuse := func(dx, dy int, frac float64) {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					return
				}
				i := ny*w + nx
				buf[i].r += errR * frac
				buf[i].g += errG * frac
				buf[i].b += errB * frac
			}

			diffuse(1, 0, 7.0/16.0)
			diffuse(-1, 1, 3.0/16.0)
			diffuse(0, 1, 5.0/16.0)
			diffuse(1, 1, 1.0/16.0)
		}
	}

	return out
}

func clampByteF(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func nearestColor(c RGB, colors ColorTable) RGB {
	if len(colors) == 0 {
		return c
	}
	best := colors[0]
	bestDist := colorDistanceRGBSquared(c, best)
	for _, cand := range colors[1:] {
		if d := colorDistanceRGBSquared(c, cand); d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}
