package img2ascii

import (
	"fmt"
	"math"
)

// MaxLuminance is the top of the luminance scale used throughout the
// renderer. Luminance values are in [0, MaxLuminance].
const MaxLuminance = 255.0

// MaxDimension is the largest number of output columns or rows a render
// may produce.
const MaxDimension = 10000

// contrastMidpoint is the value contrast scales around.
const contrastMidpoint = MaxLuminance / 2

// Sampling selects how a source region is reduced to one cell value.
type Sampling int

const (
	// SampleArea averages the luminance of every source pixel the cell
	// covers.
	SampleArea Sampling = iota

	// SampleNearest takes the source pixel at the centre of the cell.
	SampleNearest
)

// RenderConfig holds the parameters of a single render. It is a value
// type; the renderer never modifies it.
type RenderConfig struct {
	// Width is the number of output columns.
	Width int
	// Height is the number of output rows. Zero derives the height from
	// the source aspect ratio and LineSpacing.
	Height int
	// Brightness is added to every luminance value before clamping.
	Brightness float64
	// Contrast scales luminance around the midpoint of the range. 1 leaves
	// it unchanged, 0 flattens everything to mid grey.
	Contrast float64
	// Invert swaps dark and light.
	Invert bool
	// LineSpacing compensates for glyph cells being taller than wide.
	LineSpacing float64
	// FrameInterval keeps every Nth frame of a multi-frame source.
	FrameInterval int
	// Sampling selects area averaging or nearest-pixel sampling.
	Sampling Sampling
}

// DefaultConfig returns the settings the tool starts with.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		Width:         100,
		Brightness:    0,
		Contrast:      1,
		LineSpacing:   0.55,
		FrameInterval: 1,
		Sampling:      SampleArea,
	}
}

// Validate reports whether the config can be rendered with.
func (c RenderConfig) Validate() error {
	switch {
	case c.Width < 1:
		return fmt.Errorf("%w: width must be at least 1, got %d",
			ErrInvalidConfig, c.Width)
	case c.Width > MaxDimension:
		return fmt.Errorf("%w: width must be at most %d, got %d",
			ErrInvalidConfig, MaxDimension, c.Width)
	case c.Height < 0:
		return fmt.Errorf("%w: height must not be negative, got %d",
			ErrInvalidConfig, c.Height)
	case c.Height > MaxDimension:
		return fmt.Errorf("%w: height must be at most %d, got %d",
			ErrInvalidConfig, MaxDimension, c.Height)
	case !(c.LineSpacing > 0) || math.IsInf(c.LineSpacing, 0):
		return fmt.Errorf("%w: line spacing must be positive, got %v",
			ErrInvalidConfig, c.LineSpacing)
	case !(c.Contrast >= 0) || math.IsInf(c.Contrast, 0):
		return fmt.Errorf("%w: contrast must not be negative, got %v",
			ErrInvalidConfig, c.Contrast)
	case math.IsNaN(c.Brightness) || math.IsInf(c.Brightness, 0):
		return fmt.Errorf("%w: brightness must be finite, got %v",
			ErrInvalidConfig, c.Brightness)
	case c.FrameInterval < 1:
		return fmt.Errorf("%w: frame interval must be at least 1, got %d",
			ErrInvalidConfig, c.FrameInterval)
	case c.Sampling != SampleArea && c.Sampling != SampleNearest:
		return fmt.Errorf("%w: unknown sampling mode %d",
			ErrInvalidConfig, c.Sampling)
	}
	return nil
}

// OutputSize returns the number of columns and rows a source of the given
// size renders to. It fails with ErrInvalidConfig when the derived row
// count exceeds MaxDimension.
func (c RenderConfig) OutputSize(srcWidth, srcHeight int) (cols, rows int, err error) {
	cols = c.Width
	if c.Height > 0 {
		return cols, c.Height, nil
	}
	aspect := float64(srcHeight) / float64(srcWidth)
	r := math.Round(aspect * float64(cols) * c.LineSpacing)
	if !(r <= MaxDimension) {
		return 0, 0, fmt.Errorf("%w: %dx%d source at width %d and line spacing %v needs more than %d rows",
			ErrInvalidConfig, srcWidth, srcHeight, cols, c.LineSpacing, MaxDimension)
	}
	rows = int(r)
	if rows < 1 {
		rows = 1
	}
	return cols, rows, nil
}

// Adjust applies brightness and contrast to a luminance value, clamping
// after each step.
func (c RenderConfig) Adjust(lum float64) float64 {
	lum = clampLuminance(lum + c.Brightness)
	lum = clampLuminance((lum-contrastMidpoint)*c.Contrast + contrastMidpoint)
	return lum
}

// ToneIndex maps a luminance value to a tone index in [0, n-1], where 0 is
// the darkest tone. Invert mirrors the index, which is the luminance flip
// MaxLuminance-l made exact at bucket boundaries.
func (c RenderConfig) ToneIndex(lum float64, n int) int {
	index := int(math.Floor(c.Adjust(lum) / MaxLuminance * float64(n-1)))
	if index < 0 {
		index = 0
	} else if index > n-1 {
		index = n - 1
	}
	if c.Invert {
		index = n - 1 - index
	}
	return index
}

func clampLuminance(v float64) float64 {
	return math.Max(0, math.Min(MaxLuminance, v))
}
