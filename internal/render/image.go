// Package render rasterizes the ink fields of a fluid grid.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/fluidlab/internal/fluid"
)

var ErrInvalidScale = errors.New("render: scale must be positive")

// Channel maps a density value to an 8-bit intensity: v*255 rounded to the
// nearest integer, capped at 255, negatives as 0.
func Channel(v float32) uint8 {
	s := v * 255
	switch {
	case !(s > 0):
		return 0
	case s >= 255:
		return 255
	}
	return uint8(s + 0.5)
}

// Image returns one opaque pixel per cell.
func Image(g *fluid.Grid) *image.RGBA {
	n := g.Size()
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := 0; i < n*n; i++ {
		o := i * 4
		img.Pix[o] = Channel(g.R[i])
		img.Pix[o+1] = Channel(g.G[i])
		img.Pix[o+2] = Channel(g.B[i])
		img.Pix[o+3] = 255
	}
	return img
}

// At is the colour of cell (x, y) as shown on screen.
func At(g *fluid.Grid, x, y int) color.RGBA {
	i := g.IX(x, y)
	return color.RGBA{Channel(g.R[i]), Channel(g.G[i]), Channel(g.B[i]), 255}
}

// Scaled is a nearest-neighbour upscale of img by k.
func Scaled(img *image.RGBA, k int) *image.RGBA {
	if k <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	for y := 0; y < b.Dy()*k; y++ {
		sy := b.Min.Y + y/k
		for x := 0; x < b.Dx()*k; x++ {
			src := img.PixOffset(b.Min.X+x/k, sy)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+4], img.Pix[src:src+4])
		}
	}
	return out
}

// WritePNG encodes the grid at scale pixels per cell.
func WritePNG(w io.Writer, g *fluid.Grid, scale int) error {
	if scale <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidScale, scale)
	}
	if err := png.Encode(w, Scaled(Image(g), scale)); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
