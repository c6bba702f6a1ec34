package imageutil

import (
	"image"
	"image/color"
	"math"
)

// BT.601 luma weights, the same ones OpenCV's COLOR_BGR2GRAY uses.
const (
	WeightR = 0.299
	WeightG = 0.587
	WeightB = 0.114
)

// Luminance returns Y = 0.299*R + 0.587*G + 0.114*B in [0, 255].
func Luminance(r, g, b uint8) float64 {
	return WeightR*float64(r) + WeightG*float64(g) + WeightB*float64(b)
}

// ToGrayscale converts any image to an 8-bit luminance plane using
// Luminance, rounded to the nearest integer.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := RGBFromColor(img.At(x, y))
			lum := math.Round(c.Luminance())
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}
