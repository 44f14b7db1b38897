// Package testutil provides synthetic fixture images for pipeline tests, so
// test cases don't depend on golden image files checked into the repo.
package testutil

import "github.com/Nuopel/paintbynumbers-go/pkg/pbn"

// SolidImage returns a w×h image filled with a single color.
func SolidImage(w, h int, c pbn.RGB) *pbn.Image {
	img := pbn.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// TwoHalvesImage returns a w×h image split vertically at column w/2: left
// filled with left, right filled with right.
func TwoHalvesImage(w, h int, left, right pbn.RGB) *pbn.Image {
	img := pbn.NewImage(w, h)
	mid := w / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < mid {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

// CheckerboardImage returns a w×h image alternating between a and b, one
// pixel per cell.
func CheckerboardImage(w, h int, a, b pbn.RGB) *pbn.Image {
	img := pbn.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

// FieldWithBlockImage returns a w×h image filled with field, with a
// blockSize×blockSize square of block color placed at (ox, oy).
func FieldWithBlockImage(w, h int, field, block pbn.RGB, ox, oy, blockSize int) *pbn.Image {
	img := SolidImage(w, h, field)
	for y := oy; y < oy+blockSize && y < h; y++ {
		for x := ox; x < ox+blockSize && x < w; x++ {
			img.Set(x, y, block)
		}
	}
	return img
}

// PseudoRandomImage returns a w×h image whose pixels are derived from
// pbn's own seeded PRNG, so tests that need "noisy but reproducible" input
// don't depend on math/rand's global state.
func PseudoRandomImage(w, h int, seed int64) *pbn.Image {
	rnd := pbn.NewRandom(seed)
	img := pbn.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, pbn.RGB{
				R: uint8(rnd.RandInt(0, 255)),
				G: uint8(rnd.RandInt(0, 255)),
				B: uint8(rnd.RandInt(0, 255)),
			})
		}
	}
	return img
}
