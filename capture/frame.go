// Package capture reads frames from video files and cameras through
// OpenCV and exposes them as pixel grids for the renderer.
package capture

import (
	"fmt"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/wbrown/img2ascii/imageutil"
)

// Frame is a decoded OpenCV image. Pixels are stored in OpenCV's BGR (or
// BGRA) channel order; single-channel Mats are treated as gray.
//
// Frame implements img2ascii.PixelGrid. Close releases the native memory
// and must be called once the frame has been rendered.
type Frame struct {
	mat gocv.Mat
}

// NewFrame takes ownership of mat.
func NewFrame(mat gocv.Mat) *Frame {
	return &Frame{mat: mat}
}

// StillExtensions lists still image formats OpenCV reads that the Go
// decoders do not.
var StillExtensions = []string{".jp2", ".jpe", ".exr", ".hdr", ".pic", ".pbm", ".pgm", ".ppm", ".pnm", ".pxm", ".sr", ".ras", ".dib"}

// IsStillImage reports whether path has one of StillExtensions, ignoring
// case.
func IsStillImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range StillExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadImage decodes a still image with OpenCV. It covers formats the Go
// decoders in imageutil do not, such as JPEG 2000 or OpenEXR.
func ReadImage(path string) (*Frame, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("could not read image from %s", path)
	}
	return NewFrame(mat), nil
}

func (f *Frame) Width() int  { return f.mat.Cols() }
func (f *Frame) Height() int { return f.mat.Rows() }

// Luminance returns the BT.601 luma of the pixel at (x, y).
func (f *Frame) Luminance(x, y int) float64 {
	if f.mat.Channels() == 1 {
		return float64(f.mat.GetUCharAt(y, x))
	}
	c := rgbFromVecb(f.mat.GetVecbAt(y, x))
	return c.Luminance()
}

// Close releases the frame's Mat.
func (f *Frame) Close() error {
	return f.mat.Close()
}

// rgbFromVecb converts a BGR(A) gocv.Vecb to an RGB color.
func rgbFromVecb(v gocv.Vecb) imageutil.RGB {
	return imageutil.RGB{
		R: v[2],
		G: v[1],
		B: v[0],
	}
}
