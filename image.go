package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wbrown/img2ascii/imageutil"
)

// PNGOptions controls how a Rendering is drawn into an image.
type PNGOptions struct {
	// Face is the font used for glyphs. Nil selects basicfont.Face7x13.
	Face font.Face
	// FG and BG default to white on black.
	FG, BG color.Color
	// Padding is the margin in pixels around the text.
	Padding int
}

// LoadFace loads a TrueType font from path at the given point size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// cellMetrics returns the advance of one cell and the line height, both in
// whole pixels, for a face. Faces are assumed monospaced; the widest of a
// few common glyphs is used so proportional faces do not overlap.
func cellMetrics(face font.Face) (advance, lineHeight, ascent int) {
	var widest fixed.Int26_6
	for _, r := range "M@#W█ " {
		if a, ok := face.GlyphAdvance(r); ok && a > widest {
			widest = a
		}
	}
	m := face.Metrics()
	advance = widest.Ceil()
	if advance < 1 {
		advance = 1
	}
	lineHeight = m.Height.Ceil()
	if lineHeight < 1 {
		lineHeight = (m.Ascent + m.Descent).Ceil()
	}
	return advance, lineHeight, m.Ascent.Ceil()
}

// DrawRendering draws r into a new RGBA image, one cell per glyph.
func DrawRendering(r Rendering, opts PNGOptions) *imageutil.RGBAImage {
	face := opts.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	fg, bg := opts.FG, opts.BG
	if fg == nil {
		fg = color.White
	}
	if bg == nil {
		bg = color.Black
	}

	advance, lineHeight, ascent := cellMetrics(face)
	cols, rows := r.Columns(), r.Rows()
	width := cols*advance + 2*opts.Padding
	height := rows*lineHeight + 2*opts.Padding
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	img := imageutil.NewRGBAImage(width, height)
	draw.Draw(img.RGBA, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img.RGBA,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	for row, line := range r {
		col := 0
		for _, g := range line {
			// Fixed grid, whatever the face's own advances are.
			d.Dot = fixed.P(opts.Padding+col*advance, opts.Padding+row*lineHeight+ascent)
			d.DrawString(string(g))
			col++
		}
	}
	return img
}

// SavePNG draws r and writes it to path as a PNG.
func SavePNG(path string, r Rendering, opts PNGOptions) error {
	return imageutil.SavePNG(DrawRendering(r, opts).RGBA, path)
}
