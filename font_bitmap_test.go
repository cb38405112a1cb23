package blockansi

import (
	"testing"

	"github.com/golang/freetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestGlyphBitmapBitOperations(t *testing.T) {
	t.Parallel()

	var bitmap GlyphBitmap

	bitmap.setBit(0, 0, true)
	assert.True(t, bitmap.getBit(0, 0))
	assert.Equal(t, uint8(0x80), bitmap[0])

	bitmap.setBit(7, 15, true)
	assert.True(t, bitmap.getBit(7, 15))
	assert.Equal(t, uint8(0x01), bitmap[15])

	bitmap.setBit(0, 0, false)
	assert.False(t, bitmap.getBit(0, 0))

	// Out of range is ignored.
	bitmap.setBit(8, 16, true)
	assert.False(t, bitmap.getBit(8, 16))
	assert.Equal(t, 1, bitmap.count(GlyphHeight))
}

func TestBuiltinFontCoverage(t *testing.T) {
	t.Parallel()

	// Foreground pixels per glyph, as a fraction of the cell in eighths.
	eighths := map[Glyph]int{
		GlyphSpace:       0,
		GlyphLightShade:  2,
		GlyphMediumShade: 4,
		GlyphDarkShade:   6,
		GlyphFullBlock:   8,
		GlyphLowerHalf:   4,
		GlyphLeftHalf:    4,
		GlyphRightHalf:   4,
		GlyphUpperHalf:   4,

		GlyphQuadLowerLeft:           2,
		GlyphQuadLowerRight:          2,
		GlyphQuadUpperLeft:           2,
		GlyphQuadUpperRight:          2,
		GlyphQuadUpperLeftAndLower:   6,
		GlyphQuadUpperLeftLowerRight: 4,
		GlyphQuadUpperAndLowerLeft:   6,
		GlyphQuadUpperAndLowerRight:  6,
		GlyphQuadUpperRightLowerLeft: 4,
		GlyphQuadUpperRightAndLower:  6,
	}
	require.Len(t, eighths, int(glyphCount))

	for _, f := range []*Font{VGA(), VGA50()} {
		cell := f.Width() * f.Height()
		for g, n := range eighths {
			assert.Equal(t, cell*n/8, f.Bitmap(g).count(f.Height()), "%s %s", f.Name(), g)
		}
	}
}

func TestBuiltinFontHalves(t *testing.T) {
	t.Parallel()

	f := VGA()
	upper := f.Bitmap(GlyphUpperHalf)
	lower := f.Bitmap(GlyphLowerHalf)
	left := f.Bitmap(GlyphLeftHalf)
	right := f.Bitmap(GlyphRightHalf)

	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			assert.Equal(t, y < 8, upper.getBit(x, y), "upper (%d,%d)", x, y)
			assert.Equal(t, y >= 8, lower.getBit(x, y), "lower (%d,%d)", x, y)
			assert.Equal(t, x < 4, left.getBit(x, y), "left (%d,%d)", x, y)
			assert.Equal(t, x >= 4, right.getBit(x, y), "right (%d,%d)", x, y)
		}
	}
}

func TestBuiltinFontQuadrantsComplement(t *testing.T) {
	t.Parallel()

	pairs := [][2]Glyph{
		{GlyphQuadUpperLeft, GlyphQuadUpperRightAndLower},
		{GlyphQuadUpperRight, GlyphQuadUpperLeftAndLower},
		{GlyphQuadLowerLeft, GlyphQuadUpperAndLowerRight},
		{GlyphQuadLowerRight, GlyphQuadUpperAndLowerLeft},
		{GlyphQuadUpperLeftLowerRight, GlyphQuadUpperRightLowerLeft},
		{GlyphUpperHalf, GlyphLowerHalf},
		{GlyphLeftHalf, GlyphRightHalf},
		{GlyphSpace, GlyphFullBlock},
	}

	for _, f := range []*Font{VGA(), VGA50()} {
		for _, p := range pairs {
			a, b := f.Bitmap(p[0]), f.Bitmap(p[1])
			for y := 0; y < f.Height(); y++ {
				assert.Equal(t, uint8(0xFF), a[y]^b[y], "%s %s/%s row %d", f.Name(), p[0], p[1], y)
			}
		}
	}
}

func TestFontGeometry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IBM VGA", VGA().Name())
	assert.Equal(t, 8, VGA().Width())
	assert.Equal(t, 16, VGA().Height())

	assert.Equal(t, "IBM VGA50", VGA50().Name())
	assert.Equal(t, 8, VGA50().Width())
	assert.Equal(t, 8, VGA50().Height())
}

func TestParseFontTTFErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseFontTTF([]byte("not a font"), "bogus", GlyphHeight)
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = ParseFontTTF(nil, "bogus", 12)
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = LoadFontTTF("testdata/does-not-exist.ttf", GlyphHeight)
	require.Error(t, err)
}

func TestParseFontTTF(t *testing.T) {
	t.Parallel()

	tcs := map[string][]byte{
		"go mono":    gomono.TTF,
		"go regular": goregular.TTF,
	}

	for name, data := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ttf, err := freetype.ParseFont(data)
			require.NoError(t, err)

			for _, height := range []int{GlyphHeight, SmallGlyphHeight} {
				f, err := ParseFontTTF(data, name, height)
				require.NoError(t, err)
				assert.Equal(t, name, f.Name())
				assert.Equal(t, height, f.Height())

				builtin := newBuiltinFont("builtin", height)
				half := GlyphWidth * height / 2

				assert.Equal(t, 0, f.Bitmap(GlyphSpace).count(height), "space is empty")
				assert.Equal(t, GlyphWidth*height, f.Bitmap(GlyphFullBlock).count(height), "full block fills the cell")

				pairs := [][2]Glyph{
					{GlyphUpperHalf, GlyphLowerHalf},
					{GlyphLeftHalf, GlyphRightHalf},
				}
				for _, p := range pairs {
					a, b := f.Bitmap(p[0]), f.Bitmap(p[1])
					assert.Equal(t, half, a.count(height), "%s at %d", p[0], height)
					assert.Equal(t, half, b.count(height), "%s at %d", p[1], height)
					for y := 0; y < height; y++ {
						assert.Equal(t, uint8(0xFF), a[y]^b[y], "%s/%s at %d row %d", p[0], p[1], height, y)
					}
				}

				for y := 0; y < height; y++ {
					assert.Equal(t, uint8(0xF0), f.Bitmap(GlyphLeftHalf)[y], "left half row %d", y)
					assert.Equal(t, uint8(0x0F), f.Bitmap(GlyphRightHalf)[y], "right half row %d", y)
				}

				for _, g := range []Glyph{GlyphLightShade, GlyphMediumShade, GlyphDarkShade} {
					assert.Equal(t, builtin.Bitmap(g), f.Bitmap(g), "%s keeps its dither", g)
				}
				for g := Glyph(0); g < glyphCount; g++ {
					if r := g.Rune(); r != ' ' && ttf.Index(r) == 0 {
						assert.Equal(t, builtin.Bitmap(g), f.Bitmap(g), "missing %s keeps the built-in mask", g)
					}
				}
			}
		})
	}
}

func TestRepertoires(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 9, RestrictedRepertoire.Len())
	assert.Equal(t, int(glyphCount), FullRepertoire.Len())

	// The restricted set is a prefix of the full set so a full search
	// visits every restricted candidate in the same order.
	assert.Equal(t, RestrictedRepertoire.Glyphs(), FullRepertoire.Glyphs()[:RestrictedRepertoire.Len()])

	assert.True(t, RestrictedRepertoire.Contains(GlyphUpperHalf))
	assert.False(t, RestrictedRepertoire.Contains(GlyphQuadUpperLeft))
	assert.True(t, FullRepertoire.Contains(GlyphQuadUpperLeft))

	glyphs := RestrictedRepertoire.Glyphs()
	glyphs[0] = GlyphFullBlock
	assert.Equal(t, GlyphSpace, RestrictedRepertoire.Glyphs()[0], "Glyphs returns a copy")
}

func TestGlyphRunes(t *testing.T) {
	t.Parallel()

	var got []rune
	for _, g := range FullRepertoire.Glyphs() {
		got = append(got, g.Rune())
	}
	assert.Equal(t, []rune(" ░▒▓█▄▌▐▀▖▗▘▝▙▚▛▜▞▟"), got)
	assert.Equal(t, "█", GlyphFullBlock.String())
	assert.Equal(t, '?', Glyph(200).Rune())
}
