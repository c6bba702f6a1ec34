package img2ascii

import (
	"image"

	"github.com/wbrown/img2ascii/imageutil"
)

// PixelGrid is the renderer's view of a decoded image or frame. Luminance
// returns a value in [0, MaxLuminance] for 0 <= x < Width() and
// 0 <= y < Height().
//
// The renderer only reads a grid during a call and never keeps it.
type PixelGrid interface {
	Width() int
	Height() int
	Luminance(x, y int) float64
}

// ImageGrid adapts a decoded still image to PixelGrid.
type ImageGrid struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageGrid wraps img. Coordinates are relative to img.Bounds().Min.
func NewImageGrid(img image.Image) *ImageGrid {
	return &ImageGrid{img: img, bounds: img.Bounds()}
}

func (g *ImageGrid) Width() int  { return g.bounds.Dx() }
func (g *ImageGrid) Height() int { return g.bounds.Dy() }

// Luminance returns the BT.601 luma of the pixel at (x, y).
func (g *ImageGrid) Luminance(x, y int) float64 {
	x += g.bounds.Min.X
	y += g.bounds.Min.Y
	switch img := g.img.(type) {
	case *image.RGBA:
		c := img.RGBAAt(x, y)
		return imageutil.Luminance(c.R, c.G, c.B)
	case *image.Gray:
		return float64(img.GrayAt(x, y).Y)
	}
	c := imageutil.RGBFromColor(g.img.At(x, y))
	return imageutil.Luminance(c.R, c.G, c.B)
}

// GrayGrid adapts an 8-bit grayscale plane to PixelGrid.
type GrayGrid struct {
	*imageutil.GrayImage
}

// NewGrayGrid wraps an existing grayscale image.
func NewGrayGrid(gray *imageutil.GrayImage) GrayGrid {
	return GrayGrid{GrayImage: gray}
}

// Luminance returns the gray value at (x, y).
func (g GrayGrid) Luminance(x, y int) float64 {
	return float64(g.GetGray(x, y))
}
