package img2ascii

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// RampOrder tells the renderer which end of a CharacterRamp holds the
// densest glyph.
type RampOrder int

const (
	// LightFirst ramps list glyphs from the sparsest to the densest,
	// e.g. " .:-=+*#%@". Dark pixels select glyphs from the end.
	LightFirst RampOrder = iota

	// DarkFirst ramps list the densest glyph first, e.g. "@%#*+=-,.".
	// Dark pixels select glyphs from the start.
	DarkFirst
)

func (o RampOrder) String() string {
	switch o {
	case LightFirst:
		return "light-first"
	case DarkFirst:
		return "dark-first"
	}
	return fmt.Sprintf("RampOrder(%d)", int(o))
}

// MarshalText encodes the order as "light-first" or "dark-first".
func (o RampOrder) MarshalText() ([]byte, error) {
	if o != LightFirst && o != DarkFirst {
		return nil, fmt.Errorf("%w: unknown ramp order %d", ErrInvalidConfig, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText parses the output of MarshalText.
func (o *RampOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "light-first":
		*o = LightFirst
	case "dark-first":
		*o = DarkFirst
	default:
		return fmt.Errorf("%w: unknown ramp order %q", ErrInvalidConfig, text)
	}
	return nil
}

// CharacterRamp is the lookup table from luminance to glyph.
type CharacterRamp struct {
	Glyphs []rune
	Order  RampOrder
}

// Default presets, in slot order.
var (
	PresetDense   = CharacterRamp{Glyphs: []rune("@%#*+=-,."), Order: DarkFirst}
	PresetSpaced  = CharacterRamp{Glyphs: []rune("@%#*+=-.: "), Order: DarkFirst}
	PresetShading = CharacterRamp{Glyphs: []rune("█▓▒░ "), Order: DarkFirst}
)

// PresetCount is the number of ramp slots kept in settings.
const PresetCount = 3

// Presets returns the three default ramps.
func Presets() [PresetCount]CharacterRamp {
	return [PresetCount]CharacterRamp{
		PresetDense.Clone(),
		PresetSpaced.Clone(),
		PresetShading.Clone(),
	}
}

// cellWidth ignores the locale: ambiguous-width glyphs such as '▓' are
// one cell even under CJK locales, where runewidth.NewCondition would
// count them as two.
var cellWidth = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// GlyphWidth returns the number of terminal cells g occupies, with
// ambiguous-width glyphs counted as one cell whatever the locale.
func GlyphWidth(g rune) int {
	return cellWidth.RuneWidth(g)
}

// NewRamp builds a ramp from the glyphs of s and validates it.
func NewRamp(s string, order RampOrder) (CharacterRamp, error) {
	r := CharacterRamp{Glyphs: []rune(s), Order: order}
	if err := r.Validate(); err != nil {
		return CharacterRamp{}, err
	}
	return r, nil
}

// MustRamp is like NewRamp but panics on an invalid ramp. It is meant
// for package-level literals and tests.
func MustRamp(s string, order RampOrder) CharacterRamp {
	r, err := NewRamp(s, order)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks that the ramp is non-empty, that its glyphs are distinct
// and that each occupies exactly one terminal cell.
func (r CharacterRamp) Validate() error {
	if len(r.Glyphs) == 0 {
		return fmt.Errorf("%w: character ramp is empty", ErrInvalidConfig)
	}
	if r.Order != LightFirst && r.Order != DarkFirst {
		return fmt.Errorf("%w: unknown ramp order %v", ErrInvalidConfig, r.Order)
	}
	seen := make(map[rune]bool, len(r.Glyphs))
	for i, g := range r.Glyphs {
		if w := GlyphWidth(g); w != 1 {
			return fmt.Errorf("%w: glyph %q at position %d is %d cells wide",
				ErrInvalidConfig, g, i, w)
		}
		if seen[g] {
			return fmt.Errorf("%w: glyph %q appears more than once",
				ErrInvalidConfig, g)
		}
		seen[g] = true
	}
	return nil
}

// Len returns the number of glyphs.
func (r CharacterRamp) Len() int {
	return len(r.Glyphs)
}

// String returns the glyphs as a string.
func (r CharacterRamp) String() string {
	return string(r.Glyphs)
}

// Clone returns a copy that does not share the glyph slice.
func (r CharacterRamp) Clone() CharacterRamp {
	glyphs := make([]rune, len(r.Glyphs))
	copy(glyphs, r.Glyphs)
	return CharacterRamp{Glyphs: glyphs, Order: r.Order}
}

// Reversed returns the ramp with its glyphs in the opposite order and the
// same Order value.
func (r CharacterRamp) Reversed() CharacterRamp {
	n := len(r.Glyphs)
	glyphs := make([]rune, n)
	for i, g := range r.Glyphs {
		glyphs[n-1-i] = g
	}
	return CharacterRamp{Glyphs: glyphs, Order: r.Order}
}

// Glyph returns the glyph for a tone index, where index 0 is the darkest
// tone and Len()-1 the lightest. Out of range indexes are clamped.
func (r CharacterRamp) Glyph(index int) rune {
	n := len(r.Glyphs)
	if index < 0 {
		index = 0
	} else if index > n-1 {
		index = n - 1
	}
	if r.Order == LightFirst {
		return r.Glyphs[n-1-index]
	}
	return r.Glyphs[index]
}
