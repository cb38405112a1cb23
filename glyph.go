package blockansi

import "fmt"

// Glyph identifies one block-element character. The numeric order is the
// enumeration order used to break ties during selection.
type Glyph uint8

const (
	GlyphSpace Glyph = iota
	GlyphLightShade
	GlyphMediumShade
	GlyphDarkShade
	GlyphFullBlock
	GlyphLowerHalf
	GlyphLeftHalf
	GlyphRightHalf
	GlyphUpperHalf
	GlyphQuadLowerLeft
	GlyphQuadLowerRight
	GlyphQuadUpperLeft
	GlyphQuadUpperRight
	GlyphQuadUpperLeftAndLower
	GlyphQuadUpperLeftLowerRight
	GlyphQuadUpperAndLowerLeft
	GlyphQuadUpperAndLowerRight
	GlyphQuadUpperRightLowerLeft
	GlyphQuadUpperRightAndLower

	glyphCount
)

// Quadrants represents the four quadrants of a cell. Each quadrant is true
// when it is painted with the foreground color.
type Quadrants struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

// glyphDef describes how a glyph covers a cell: either by quadrants or, for
// the shade characters, by a repeating two-row dither pattern.
type glyphDef struct {
	Rune  rune
	Quad  Quadrants
	Shade [2]uint8
}

var glyphDefs = [glyphCount]glyphDef{
	GlyphSpace:                   {Rune: ' '},
	GlyphLightShade:              {Rune: '░', Shade: [2]uint8{0x11, 0x44}},
	GlyphMediumShade:             {Rune: '▒', Shade: [2]uint8{0x55, 0xAA}},
	GlyphDarkShade:               {Rune: '▓', Shade: [2]uint8{0xDD, 0x77}},
	GlyphFullBlock:               {Rune: '█', Quad: Quadrants{true, true, true, true}},
	GlyphLowerHalf:               {Rune: '▄', Quad: Quadrants{false, false, true, true}},
	GlyphLeftHalf:                {Rune: '▌', Quad: Quadrants{true, false, true, false}},
	GlyphRightHalf:               {Rune: '▐', Quad: Quadrants{false, true, false, true}},
	GlyphUpperHalf:               {Rune: '▀', Quad: Quadrants{true, true, false, false}},
	GlyphQuadLowerLeft:           {Rune: '▖', Quad: Quadrants{false, false, true, false}},
	GlyphQuadLowerRight:          {Rune: '▗', Quad: Quadrants{false, false, false, true}},
	GlyphQuadUpperLeft:           {Rune: '▘', Quad: Quadrants{true, false, false, false}},
	GlyphQuadUpperRight:          {Rune: '▝', Quad: Quadrants{false, true, false, false}},
	GlyphQuadUpperLeftAndLower:   {Rune: '▙', Quad: Quadrants{true, false, true, true}},
	GlyphQuadUpperLeftLowerRight: {Rune: '▚', Quad: Quadrants{true, false, false, true}},
	GlyphQuadUpperAndLowerLeft:   {Rune: '▛', Quad: Quadrants{true, true, true, false}},
	GlyphQuadUpperAndLowerRight:  {Rune: '▜', Quad: Quadrants{true, true, false, true}},
	GlyphQuadUpperRightLowerLeft: {Rune: '▞', Quad: Quadrants{false, true, true, false}},
	GlyphQuadUpperRightAndLower:  {Rune: '▟', Quad: Quadrants{false, true, true, true}},
}

// Rune returns the Unicode block element for g.
func (g Glyph) Rune() rune {
	if g >= glyphCount {
		return '?'
	}
	return glyphDefs[g].Rune
}

func (g Glyph) String() string {
	if g >= glyphCount {
		return fmt.Sprintf("Glyph(%d)", uint8(g))
	}
	return string(glyphDefs[g].Rune)
}

// Repertoire is an ordered set of candidate glyphs. It is fixed for a
// whole conversion.
type Repertoire struct {
	name   string
	glyphs []Glyph
}

var (
	// RestrictedRepertoire holds the shading blocks, half blocks and the
	// full block.
	RestrictedRepertoire = Repertoire{
		name: "restricted",
		glyphs: []Glyph{
			GlyphSpace, GlyphLightShade, GlyphMediumShade, GlyphDarkShade,
			GlyphFullBlock, GlyphLowerHalf, GlyphLeftHalf, GlyphRightHalf,
			GlyphUpperHalf,
		},
	}

	// FullRepertoire holds every block element, the restricted set first.
	FullRepertoire = func() Repertoire {
		r := Repertoire{name: "full", glyphs: make([]Glyph, 0, glyphCount)}
		for g := Glyph(0); g < glyphCount; g++ {
			r.glyphs = append(r.glyphs, g)
		}
		return r
	}()
)

// Name returns "full" or "restricted".
func (r Repertoire) Name() string {
	return r.name
}

// Glyphs returns a copy of the repertoire in enumeration order.
func (r Repertoire) Glyphs() []Glyph {
	return append([]Glyph(nil), r.glyphs...)
}

// Len returns the number of glyphs in the repertoire.
func (r Repertoire) Len() int {
	return len(r.glyphs)
}

// Contains reports whether g is part of the repertoire.
func (r Repertoire) Contains(g Glyph) bool {
	for _, candidate := range r.glyphs {
		if candidate == g {
			return true
		}
	}
	return false
}
