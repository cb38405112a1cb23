package blockansi

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpace selects how cell colors are represented in the output.
type ColorSpace int

const (
	// Ansi16 maps every color to the nearest entry of the 16-color palette.
	Ansi16 ColorSpace = iota
	// Truecolor passes 24-bit colors through unchanged.
	Truecolor
)

func (cs ColorSpace) String() string {
	switch cs {
	case Ansi16:
		return "ansi16"
	case Truecolor:
		return "truecolor"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(cs))
}

// PaletteSize is the number of entries in the 16-color palette.
const PaletteSize = 16

// CGAPalette is the IBM CGA palette in ANSI order: entries 0-7 are the
// normal colors (SGR 30-37), entries 8-15 their bright variants.
var CGAPalette = [PaletteSize]RGB{
	{0, 0, 0},       // black
	{170, 0, 0},     // red
	{0, 170, 0},     // green
	{170, 85, 0},    // brown
	{0, 0, 170},     // blue
	{170, 0, 170},   // magenta
	{0, 170, 170},   // cyan
	{170, 170, 170}, // light gray
	{85, 85, 85},    // dark gray
	{255, 85, 85},   // bright red
	{85, 255, 85},   // bright green
	{255, 255, 85},  // yellow
	{85, 85, 255},   // bright blue
	{255, 85, 255},  // bright magenta
	{85, 255, 255},  // bright cyan
	{255, 255, 255}, // white
}

// Color is a quantized color. Index is the palette entry in Ansi16 mode and
// -1 in Truecolor mode.
type Color struct {
	RGB
	Index int
}

// Bright reports whether c is one of the bright palette entries.
func (c Color) Bright() bool {
	return c.Index >= PaletteSize/2
}

// Quantizer maps arbitrary colors into a ColorSpace. It is immutable after
// construction and safe for concurrent use.
type Quantizer struct {
	space   ColorSpace
	palette [PaletteSize]RGB
	lab     [PaletteSize][3]float64
}

// NewQuantizer creates a Quantizer for the given color space using
// CGAPalette.
func NewQuantizer(space ColorSpace) *Quantizer {
	q := &Quantizer{
		space:   space,
		palette: CGAPalette,
	}
	for i, c := range q.palette {
		q.lab[i] = okLab(c)
	}
	return q
}

// Space returns the quantizer's color space.
func (q *Quantizer) Space() ColorSpace {
	return q.space
}

// PaletteColor returns palette entry i as a Color.
func (q *Quantizer) PaletteColor(i int) Color {
	return Color{RGB: q.palette[i], Index: i}
}

// Quantize returns the representable color closest to c. In Truecolor mode
// this is c itself. In Ansi16 mode it is the palette entry nearest in OkLab,
// ties going to the lowest index.
func (q *Quantizer) Quantize(c RGB) Color {
	if q.space == Truecolor {
		return Color{RGB: c, Index: -1}
	}

	lab := okLab(c)
	best := 0
	bestDist := labDistanceSq(lab, q.lab[0])
	for i := 1; i < PaletteSize; i++ {
		if d := labDistanceSq(lab, q.lab[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return Color{RGB: q.palette[best], Index: best}
}

func okLab(c RGB) [3]float64 {
	l, a, b := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.OkLab()
	return [3]float64{l, a, b}
}

func labDistanceSq(x, y [3]float64) float64 {
	dl := x[0] - y[0]
	da := x[1] - y[1]
	db := x[2] - y[2]
	return dl*dl + da*da + db*db
}
