package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/Nuopel/paintbynumbers-go/pkg/pbn"
)

// toPBNImage converts a decoded stdlib image into the packed RGB buffer the
// pipeline operates on, reducing 16-bit channels to 8 bits by shifting
// right 8 and dropping alpha.
func toPBNImage(img image.Image) *pbn.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := pbn.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(x, y, pbn.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return out
}

// writePNG encodes img as a PNG file at path. The parent directory must
// already exist; it is not created here.
func writePNG(path string, img *pbn.Image) error {
	out := image.NewRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			c := img.At(x, y)
			out.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
