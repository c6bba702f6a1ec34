// Package img2ascii renders images, video frames and camera frames as
// text by mapping the luminance of each sampled region to a glyph from a
// character ramp.
package img2ascii

import (
	"fmt"
	"strings"
)

// Renderer pairs a RenderConfig with the active CharacterRamp so callers
// can render many grids with the same settings. A Renderer is not
// modified by rendering and may be shared between goroutines.
type Renderer struct {
	Config RenderConfig
	Ramp   CharacterRamp
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with DefaultConfig and the first preset
// ramp, then applies opts.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Config: DefaultConfig(),
		Ramp:   PresetDense.Clone(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithConfig replaces the whole render configuration.
func WithConfig(cfg RenderConfig) RendererOption {
	return func(r *Renderer) {
		r.Config = cfg
	}
}

// WithRamp sets the character ramp.
func WithRamp(ramp CharacterRamp) RendererOption {
	return func(r *Renderer) {
		r.Ramp = ramp
	}
}

// WithTargetWidth sets the output width in characters.
func WithTargetWidth(width int) RendererOption {
	return func(r *Renderer) {
		r.Config.Width = width
	}
}

// WithLineSpacing sets the vertical correction for glyph aspect ratio.
func WithLineSpacing(spacing float64) RendererOption {
	return func(r *Renderer) {
		r.Config.LineSpacing = spacing
	}
}

// WithBrightness sets the additive brightness offset.
func WithBrightness(brightness float64) RendererOption {
	return func(r *Renderer) {
		r.Config.Brightness = brightness
	}
}

// WithContrast sets the contrast scale.
func WithContrast(contrast float64) RendererOption {
	return func(r *Renderer) {
		r.Config.Contrast = contrast
	}
}

// WithInvert enables or disables inversion.
func WithInvert(invert bool) RendererOption {
	return func(r *Renderer) {
		r.Config.Invert = invert
	}
}

// WithSampling selects area or nearest sampling.
func WithSampling(s Sampling) RendererOption {
	return func(r *Renderer) {
		r.Config.Sampling = s
	}
}

// Render renders grid with the renderer's config and ramp.
func (r *Renderer) Render(grid PixelGrid) (Rendering, error) {
	return Render(grid, r.Config, r.Ramp)
}

// Render maps grid to text. The result has exactly the number of rows
// given by cfg.OutputSize, each exactly cfg.Width glyphs long.
//
// Render fails with ErrInvalidConfig when cfg or ramp are unusable and
// with ErrInvalidInput when grid is nil or empty. It has no side effects.
func Render(grid PixelGrid, cfg RenderConfig, ramp CharacterRamp) (Rendering, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, fmt.Errorf("%w: pixel grid is nil", ErrInvalidInput)
	}
	srcW, srcH := grid.Width(), grid.Height()
	if srcW < 1 || srcH < 1 {
		return nil, fmt.Errorf("%w: pixel grid is %dx%d", ErrInvalidInput, srcW, srcH)
	}

	cols, rows, err := cfg.OutputSize(srcW, srcH)
	if err != nil {
		return nil, err
	}
	n := ramp.Len()
	lines := make([]string, rows)

	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		sb.Reset()
		y0, y1 := cellSpan(cy, rows, srcH)
		for cx := 0; cx < cols; cx++ {
			x0, x1 := cellSpan(cx, cols, srcW)
			var lum float64
			if cfg.Sampling == SampleNearest {
				lum = grid.Luminance((x0+x1-1)/2, (y0+y1-1)/2)
			} else {
				lum = areaLuminance(grid, x0, x1, y0, y1)
			}
			sb.WriteRune(ramp.Glyph(cfg.ToneIndex(lum, n)))
		}
		lines[cy] = sb.String()
	}
	return Rendering(lines), nil
}

// cellSpan returns the half-open range of source pixels [lo, hi) covered
// by output cell i of n over a source axis of length size. The range
// always holds at least one pixel.
func cellSpan(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if lo > size-1 {
		lo = size - 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// areaLuminance averages luminance over the box [x0,x1) x [y0,y1).
func areaLuminance(grid PixelGrid, x0, x1, y0, y1 int) float64 {
	var sum float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += grid.Luminance(x, y)
		}
	}
	return sum / float64((x1-x0)*(y1-y0))
}
