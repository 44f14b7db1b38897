// Package pbn implements the paint-by-numbers core pipeline: color
// quantization, facet construction, facet reduction, border tracing and
// smoothing, and label-point placement.
//
// The package is pure with respect to the filesystem — it accepts a decoded
// pixel buffer and a Settings record and returns a PipelineResult. Image
// decoding/encoding, SVG serialization, and the command-line surface are
// left to callers.
package pbn

import "fmt"

// Image is the input pixel buffer: a decoded W×H×3 RGB array. It is
// immutable for the lifetime of a pipeline run. Decoding image files into an
// Image is an external collaborator's job, not this package's.
type Image struct {
	W, H int
	// Pix holds W*H*3 bytes in row-major order, 3 bytes (R,G,B) per pixel.
	Pix []uint8
}

// NewImage allocates a zeroed W×H image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// At returns the RGB value at (x, y). The caller must ensure the
// coordinates are in bounds; Image does no bounds checking on the hot path.
func (img *Image) At(x, y int) RGB {
	i := (y*img.W + x) * 3
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// Set writes the RGB value at (x, y).
func (img *Image) Set(x, y int, c RGB) {
	i := (y*img.W + x) * 3
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
}

// InBounds reports whether (x, y) lies within the image.
func (img *Image) InBounds(x, y int) bool {
	return x >= 0 && x < img.W && y >= 0 && y < img.H
}

// Point is a 2D integer coordinate, origin at top-left.
type Point struct {
	X, Y int
}

// BoundingBox is an inclusive min/max rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY int
}

// NewEmptyBoundingBox returns a bounding box in the "no points yet" state;
// the first call to Extend establishes real bounds.
func NewEmptyBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: int(^uint(0) >> 1), MinY: int(^uint(0) >> 1),
		MaxX: -int(^uint(0)>>1) - 1, MaxY: -int(^uint(0)>>1) - 1,
	}
}

// Extend grows the bounding box to include (x, y).
func (b *BoundingBox) Extend(x, y int) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Width and Height report the inclusive box's pixel span.
func (b BoundingBox) Width() int  { return b.MaxX - b.MinX + 1 }
func (b BoundingBox) Height() int { return b.MaxY - b.MinY + 1 }

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// ColorTable is the ordered, stable-indexed palette produced by the
// quantizer. Facets and IndexGrid entries reference colors by index into
// this table.
type ColorTable []RGB

// IndexGrid is a W×H grid of indices into a ColorTable, mutable by the
// narrow-strip cleaner and the facet reducer.
type IndexGrid struct {
	W, H int
	Data []int
}

// NewIndexGrid allocates a zeroed W×H index grid.
func NewIndexGrid(w, h int) *IndexGrid {
	return &IndexGrid{W: w, H: h, Data: make([]int, w*h)}
}

func (g *IndexGrid) Get(x, y int) int       { return g.Data[y*g.W+x] }
func (g *IndexGrid) Set(x, y, v int)        { g.Data[y*g.W+x] = v }
func (g *IndexGrid) InBounds(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// FacetIDGrid is a W×H grid identifying, per pixel, the facet that
// currently owns it. -1 means unassigned.
type FacetIDGrid struct {
	W, H int
	Data []int
}

// NewFacetIDGrid allocates a W×H facet-id grid initialized to -1.
func NewFacetIDGrid(w, h int) *FacetIDGrid {
	g := &FacetIDGrid{W: w, H: h, Data: make([]int, w*h)}
	for i := range g.Data {
		g.Data[i] = -1
	}
	return g
}

func (g *FacetIDGrid) Get(x, y int) int { return g.Data[y*g.W+x] }
func (g *FacetIDGrid) Set(x, y, v int)  { g.Data[y*g.W+x] = v }
func (g *FacetIDGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}
