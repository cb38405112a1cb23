package blockansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizePaletteEntriesMapToThemselves(t *testing.T) {
	t.Parallel()

	q := NewQuantizer(Ansi16)
	for i, c := range CGAPalette {
		got := q.Quantize(c)
		assert.Equal(t, i, got.Index, "entry %d %v", i, c)
		assert.Equal(t, c, got.RGB)
	}
}

func TestQuantizeNearest(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   RGB
		want int
	}{
		"near black":       {in: RGB{R: 3, G: 2, B: 4}, want: 0},
		"near white":       {in: RGB{R: 250, G: 252, B: 251}, want: 15},
		"near light gray":  {in: RGB{R: 168, G: 172, B: 170}, want: 7},
		"near dark gray":   {in: RGB{R: 86, G: 84, B: 88}, want: 8},
		"near bright red":  {in: RGB{R: 250, G: 90, B: 88}, want: 9},
		"near blue":        {in: RGB{R: 2, G: 0, B: 168}, want: 4},
		"near bright cyan": {in: RGB{R: 90, G: 250, B: 250}, want: 14},
	}

	q := NewQuantizer(Ansi16)
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := q.Quantize(tc.in)
			assert.Equal(t, tc.want, got.Index)
			assert.Equal(t, CGAPalette[tc.want], got.RGB)
		})
	}
}

func TestQuantizeTruecolorIsIdentity(t *testing.T) {
	t.Parallel()

	q := NewQuantizer(Truecolor)
	require.Equal(t, Truecolor, q.Space())

	for _, c := range []RGB{{}, {R: 1, G: 2, B: 3}, {R: 255, G: 128, B: 7}, {R: 255, G: 255, B: 255}} {
		got := q.Quantize(c)
		assert.Equal(t, c, got.RGB)
		assert.Equal(t, -1, got.Index)
		assert.False(t, got.Bright())
	}
}

func TestQuantizeIsIdempotent(t *testing.T) {
	t.Parallel()

	q := NewQuantizer(Ansi16)
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				once := q.Quantize(RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
				twice := q.Quantize(once.RGB)
				require.Equal(t, once, twice)
			}
		}
	}
}

func TestColorBright(t *testing.T) {
	t.Parallel()

	q := NewQuantizer(Ansi16)
	for i := 0; i < PaletteSize; i++ {
		assert.Equal(t, i >= 8, q.PaletteColor(i).Bright(), "entry %d", i)
	}
}

func TestColorSpaceString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ansi16", Ansi16.String())
	assert.Equal(t, "truecolor", Truecolor.String())
	assert.Equal(t, "ColorSpace(7)", ColorSpace(7).String())
}
