package blockansi

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/blockansi/imageutil"
)

func TestGridSize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		srcW, srcH int
		columns    int
		font       *Font
		aspect     float64
		rows       int
	}{
		"square vga":       {srcW: 16, srcH: 16, columns: 2, font: VGA(), aspect: 1, rows: 1},
		"square vga50":     {srcW: 16, srcH: 16, columns: 2, font: VGA50(), aspect: 1, rows: 2},
		"640x480 at 80":    {srcW: 640, srcH: 480, columns: 80, font: VGA(), aspect: 1, rows: 30},
		"tall 1x1 at 80":   {srcW: 1, srcH: 1, columns: 80, font: VGA(), aspect: 1, rows: 40},
		"rounds down":      {srcW: 100, srcH: 105, columns: 10, font: VGA(), aspect: 1, rows: 5},
		"rounds up":        {srcW: 100, srcH: 115, columns: 10, font: VGA(), aspect: 1, rows: 6},
		"pixel aspect 1.2": {srcW: 640, srcH: 480, columns: 80, font: VGA(), aspect: 1.2, rows: 25},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cols, rows, err := GridSize(tc.srcW, tc.srcH, tc.columns, tc.font, tc.aspect)
			require.NoError(t, err)
			assert.Equal(t, tc.columns, cols)
			assert.Equal(t, tc.rows, rows)
		})
	}
}

func TestGridSizeErrors(t *testing.T) {
	t.Parallel()

	_, _, err := GridSize(10, 10, 0, VGA(), 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, _, err = GridSize(10, 10, MaxColumns+1, VGA(), 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, _, err = GridSize(0, 10, 10, VGA(), 1)
	require.ErrorIs(t, err, ErrUnsupportedRaster)

	_, _, err = GridSize(10, 10, 10, VGA(), 0)
	require.ErrorIs(t, err, ErrInvalidOption)

	// A very wide strip has no whole row left.
	_, _, err = GridSize(1000, 1, 2, VGA(), 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestResampleDimensions(t *testing.T) {
	t.Parallel()

	srcs := map[string]image.Image{
		"gradient":    imageutil.CreateGradientImage(123, 77),
		"checker":     imageutil.CreateCheckerboardImage(640, 480, 8),
		"single":      imageutil.CreateSolidImage(1, 1, red),
		"offset gray": image.NewGray(image.Rect(10, 10, 50, 90)),
	}

	for name, src := range srcs {
		for _, font := range []*Font{VGA(), VGA50()} {
			for _, columns := range []int{1, 7, 80} {
				got, err := Resample(src, columns, font, 1, DefaultMaxPixels)
				if err != nil {
					require.ErrorIs(t, err, ErrInvalidDimensions, "%s", name)
					continue
				}
				assert.Equal(t, columns*8, got.Width(), "%s", name)
				assert.Zero(t, got.Height()%font.Height(), "%s", name)
				assert.Positive(t, got.Height(), "%s", name)
			}
		}
	}
}

func TestResampleErrors(t *testing.T) {
	t.Parallel()

	src := imageutil.CreateSolidImage(4, 4, red)

	_, err := Resample(src, 0, VGA(), 1, 0)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = Resample(nil, 0, VGA(), 1, 0)
	require.ErrorIs(t, err, ErrInvalidDimensions, "columns are checked before the image")

	_, err = Resample(nil, 10, VGA(), 1, 0)
	require.ErrorIs(t, err, ErrUnsupportedRaster)

	_, err = Resample(image.NewRGBA(image.Rectangle{}), 10, VGA(), 1, 0)
	require.ErrorIs(t, err, ErrUnsupportedRaster)

	// 80 columns of a square image is 640x640 pixels.
	_, err = Resample(src, 80, VGA(), 1, 640*640-1)
	require.ErrorIs(t, err, ErrAllocation)

	_, err = Resample(src, 80, VGA(), 1, 640*640)
	require.NoError(t, err)
}

// tallImage reports large bounds without backing pixels.
type tallImage struct{ w, h int }

func (t tallImage) ColorModel() color.Model { return color.RGBAModel }
func (t tallImage) Bounds() image.Rectangle { return image.Rect(0, 0, t.w, t.h) }
func (t tallImage) At(int, int) color.Color { return color.Black }

func TestResampleExtremeAspect(t *testing.T) {
	t.Parallel()

	tcs := map[string]tallImage{
		"rows beyond int32": {w: 1, h: 40_000_000},
		"near int32 rows":   {w: 1, h: 30_000},
		"large but finite":  {w: 1, h: 1000},
	}

	for name, src := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Resample(src, MaxColumns, VGA(), 1, DefaultMaxPixels)
			require.ErrorIs(t, err, ErrAllocation)
		})
	}

	_, _, err := GridSize(1, 40_000_000, MaxColumns, VGA(), 1)
	require.ErrorIs(t, err, ErrAllocation)
}

func TestResampleFlattensAlpha(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 8, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
		}
	}

	got, err := Resample(src, 1, VGA(), 1, 0)
	require.NoError(t, err)
	for y := 0; y < got.Height(); y++ {
		for x := 0; x < got.Width(); x++ {
			require.Equal(t, color.RGBA{A: 255}, got.RGBAAt(x, y))
		}
	}
}
