package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the best choice for downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	}
	return draw.CatmullRom
}

// Resize scales img to width x height.
func Resize(img image.Image, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// ThumbnailSize returns the size an image of w x h is shrunk to so that
// neither side exceeds maxSide. Images that already fit keep their size,
// and neither side drops below 1.
func ThumbnailSize(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}

// Thumbnail shrinks img to fit in a maxSide square, keeping its aspect
// ratio. It never enlarges.
func Thumbnail(img image.Image, maxSide int) *RGBAImage {
	b := img.Bounds()
	w, h := ThumbnailSize(b.Dx(), b.Dy(), maxSide)
	if w == b.Dx() && h == b.Dy() {
		return RGBAImageFromImage(img)
	}
	return Resize(img, w, h, InterpolationArea)
}
