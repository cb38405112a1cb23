package blockansi

import (
	"math"

	"github.com/wbrown/blockansi/imageutil"
)

// Cell is one character cell's block of pixels in row-major order. The
// backing array is sized for the largest font so cells never allocate.
type Cell struct {
	pix    [GlyphWidth * GlyphHeight]RGB
	width  int
	height int
}

// NewCell returns an empty cell of the given font's dimensions.
func NewCell(f *Font) Cell {
	return Cell{width: f.Width(), height: f.Height()}
}

// Width returns the cell width in pixels.
func (c *Cell) Width() int { return c.width }

// Height returns the cell height in pixels.
func (c *Cell) Height() int { return c.height }

// At returns the pixel at (x, y).
func (c *Cell) At(x, y int) RGB {
	return c.pix[y*c.width+x]
}

// Set sets the pixel at (x, y).
func (c *Cell) Set(x, y int, rgb RGB) {
	c.pix[y*c.width+x] = rgb
}

// Fill sets every pixel of the cell to rgb.
func (c *Cell) Fill(rgb RGB) {
	for i := 0; i < c.width*c.height; i++ {
		c.pix[i] = rgb
	}
}

// Load copies the cell at column col and row row of img into c.
func (c *Cell) Load(img *imageutil.RGBAImage, col, row int) {
	x0, y0 := col*c.width, row*c.height
	for y := 0; y < c.height; y++ {
		off := img.PixOffset(x0, y0+y)
		for x := 0; x < c.width; x++ {
			c.pix[y*c.width+x] = RGB{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2]}
			off += 4
		}
	}
}

// CellChoice is the selected glyph and color pair for one cell. Error is
// the summed squared RGB distance between the cell and its reconstruction.
type CellChoice struct {
	Glyph Glyph
	FG    Color
	BG    Color
	Error int64
}

// subsetStats accumulates the pixels that a mask assigns to one color.
type subsetStats struct {
	sum   [3]int64
	sumSq int64
	n     int64
}

func (s *subsetStats) add(p RGB) {
	r, g, b := int64(p.R), int64(p.G), int64(p.B)
	s.sum[0] += r
	s.sum[1] += g
	s.sum[2] += b
	s.sumSq += r*r + g*g + b*b
	s.n++
}

// errorTo returns the sum over the subset of |p - q|^2, expanded as
// sum|p|^2 - 2 q.sum(p) + n|q|^2.
func (s *subsetStats) errorTo(q RGB) int64 {
	qr, qg, qb := int64(q.R), int64(q.G), int64(q.B)
	dot := qr*s.sum[0] + qg*s.sum[1] + qb*s.sum[2]
	return s.sumSq - 2*dot + s.n*(qr*qr+qg*qg+qb*qb)
}

// SelectGlyph picks the glyph and color pair that best reconstructs cell.
//
// Each glyph mask splits the cell into a foreground and a background
// subset. Each subset's mean color is quantized and the candidate's error
// is the summed squared distance of every pixel to its subset's quantized
// color. An empty subset contributes no error and takes the other subset's
// color. The lowest error wins; ties go to the glyph listed first in rep.
//
// A winner whose two colors coincide is drawn as a solid cell, so it is
// stored as the full block with matching colors.
func SelectGlyph(cell *Cell, font *Font, rep Repertoire, q *Quantizer) CellChoice {
	best := CellChoice{Error: math.MaxInt64}

	for _, g := range rep.glyphs {
		mask := &font.glyphs[g]

		var fg, bg subsetStats
		for y := 0; y < cell.height; y++ {
			bits := mask[y]
			row := cell.pix[y*cell.width : (y+1)*cell.width]
			for x, p := range row {
				if bits&(0x80>>uint(x)) != 0 {
					fg.add(p)
				} else {
					bg.add(p)
				}
			}
		}

		var choice CellChoice
		choice.Glyph = g
		if fg.n > 0 {
			choice.FG = q.Quantize(meanRGB(fg.sum, fg.n))
			choice.Error += fg.errorTo(choice.FG.RGB)
		}
		if bg.n > 0 {
			choice.BG = q.Quantize(meanRGB(bg.sum, bg.n))
			choice.Error += bg.errorTo(choice.BG.RGB)
		}
		if fg.n == 0 {
			choice.FG = choice.BG
		}
		if bg.n == 0 {
			choice.BG = choice.FG
		}

		if choice.Error < best.Error {
			best = choice
		}
	}

	if best.FG == best.BG {
		best.Glyph = GlyphFullBlock
	}
	return best
}
