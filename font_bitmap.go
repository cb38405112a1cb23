package blockansi

import (
	"fmt"
	"image"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// GlyphWidth is the pixel width of every character cell.
	GlyphWidth = 8
	// GlyphHeight is the cell height of the standard 80x25 font.
	GlyphHeight = 16
	// SmallGlyphHeight is the cell height of the 80x50 font.
	SmallGlyphHeight = 8
)

// GlyphBitmap is a cell mask stored one byte per row with the most
// significant bit as the leftmost pixel, the layout of VGA font ROMs.
// A set bit belongs to the foreground. Only the first Font.Height() rows
// are meaningful.
type GlyphBitmap [GlyphHeight]uint8

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g[y]&(0x80>>uint(x)) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	if value {
		g[y] |= 0x80 >> uint(x)
	} else {
		g[y] &^= 0x80 >> uint(x)
	}
}

// count returns the number of foreground pixels in the first height rows.
func (g GlyphBitmap) count(height int) int {
	n := 0
	for y := 0; y < height; y++ {
		n += bits.OnesCount8(g[y])
	}
	return n
}

// Font holds the cell geometry and one mask per glyph. The same masks drive
// glyph selection and preview rendering.
type Font struct {
	name   string
	height int
	glyphs [glyphCount]GlyphBitmap
}

var (
	vgaFont   = newBuiltinFont("IBM VGA", GlyphHeight)
	vga50Font = newBuiltinFont("IBM VGA50", SmallGlyphHeight)
)

// VGA returns the built-in 8x16 font.
func VGA() *Font {
	return vgaFont
}

// VGA50 returns the built-in 8x8 font.
func VGA50() *Font {
	return vga50Font
}

// Name returns the font name, as recorded in SAUCE metadata.
func (f *Font) Name() string {
	return f.name
}

// Width returns the cell width in pixels.
func (f *Font) Width() int {
	return GlyphWidth
}

// Height returns the cell height in pixels.
func (f *Font) Height() int {
	return f.height
}

// Bitmap returns the mask of g.
func (f *Font) Bitmap(g Glyph) GlyphBitmap {
	return f.glyphs[g]
}

func newBuiltinFont(name string, height int) *Font {
	f := &Font{name: name, height: height}
	for g := Glyph(0); g < glyphCount; g++ {
		f.glyphs[g] = bitmapFromDef(glyphDefs[g], height)
	}
	return f
}

// bitmapFromDef draws a glyph definition into a cell of the given height.
// Shades repeat their two-row pattern; block glyphs fill whole quadrants
// split at the cell's horizontal and vertical midlines.
func bitmapFromDef(def glyphDef, height int) GlyphBitmap {
	var bm GlyphBitmap
	if def.Shade != [2]uint8{} {
		for y := 0; y < height; y++ {
			bm[y] = def.Shade[y%2]
		}
		return bm
	}
	for y := 0; y < height; y++ {
		left, right := def.Quad.TopLeft, def.Quad.TopRight
		if y >= height/2 {
			left, right = def.Quad.BottomLeft, def.Quad.BottomRight
		}
		if left {
			bm[y] |= 0xF0
		}
		if right {
			bm[y] |= 0x0F
		}
	}
	return bm
}

// LoadFontTTF loads a TrueType font file and rasterizes the glyph
// repertoire at the given cell height.
func LoadFontTTF(path string, height int) (*Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseFontTTF(fontBytes, name, height)
}

// ParseFontTTF rasterizes the solid block elements from TrueType data.
// Glyphs the font lacks keep the built-in masks, as do the shades, whose
// dither pattern does not survive thresholding.
func ParseFontTTF(data []byte, name string, height int) (*Font, error) {
	if height != GlyphHeight && height != SmallGlyphHeight {
		return nil, fmt.Errorf("%w: font height %d, want %d or %d",
			ErrInvalidOption, height, GlyphHeight, SmallGlyphHeight)
	}

	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing font: %w", ErrInvalidOption, err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    ttfRenderSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	cell := cellBounds(face)
	f := newBuiltinFont(name, height)
	for g := Glyph(0); g < glyphCount; g++ {
		def := glyphDefs[g]
		if def.Shade != [2]uint8{} || (def.Rune != ' ' && ttf.Index(def.Rune) == 0) {
			continue
		}
		f.glyphs[g] = renderGlyphToBitmap(face, cell, def.Rune, height)
	}
	return f, nil
}

// ttfRenderSize is the em size glyphs are drawn at before being scaled
// down to the cell.
const ttfRenderSize = 64

// cellBounds returns the box that maps onto one character cell: the ink
// bounds of the full block, or the advance by ascent plus descent when the
// font has no full block.
func cellBounds(face font.Face) fixed.Rectangle26_6 {
	if b, _, ok := face.GlyphBounds('█'); ok && b.Max.X > b.Min.X && b.Max.Y > b.Min.Y {
		return b
	}

	m := face.Metrics()
	ascent, descent := m.Ascent, m.Descent
	if ascent+descent <= 0 {
		ascent, descent = fixed.I(ttfRenderSize), 0
	}
	adv, ok := face.GlyphAdvance('0')
	if !ok || adv <= 0 {
		adv = fixed.I(ttfRenderSize / 2)
	}
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{Y: -ascent},
		Max: fixed.Point26_6{X: adv, Y: descent},
	}
}

// renderGlyphToBitmap draws r with the cell box at the origin, scales the
// drawing to GlyphWidth x height and thresholds it. Coverage above 25%
// counts as foreground so thin anti-aliased edges survive.
func renderGlyphToBitmap(face font.Face, cell fixed.Rectangle26_6, r rune, height int) GlyphBitmap {
	size := cell.Max.Sub(cell.Min)
	hi := image.NewAlpha(image.Rect(0, 0, size.X.Ceil(), size.Y.Ceil()))
	d := &font.Drawer{
		Dst:  hi,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -cell.Min.X, Y: -cell.Min.Y},
	}
	d.DrawString(string(r))

	lo := image.NewAlpha(image.Rect(0, 0, GlyphWidth, height))
	draw.BiLinear.Scale(lo, lo.Bounds(), hi, hi.Bounds(), draw.Src, nil)

	var bitmap GlyphBitmap
	for y := 0; y < height; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if lo.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}
