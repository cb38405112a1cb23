package blockansi

import (
	"fmt"
	"image"
	"math"

	"github.com/wbrown/blockansi/imageutil"
)

const (
	// MaxColumns is the largest supported column count.
	MaxColumns = 65535
	// DefaultMaxPixels bounds the size of the resampled raster and preview.
	DefaultMaxPixels = 1 << 28
)

// GridSize returns the cell grid a srcW x srcH image maps to. The width is
// always columns cells. The height keeps the source aspect ratio, given
// that one cell pixel is displayed pixelAspect times taller than wide, and
// is rounded to the nearest whole cell.
func GridSize(srcW, srcH, columns int, font *Font, pixelAspect float64) (cols, rows int, err error) {
	if columns <= 0 || columns > MaxColumns {
		return 0, 0, fmt.Errorf("%w: columns must be 1..%d, got %d",
			ErrInvalidDimensions, MaxColumns, columns)
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: image is %dx%d", ErrUnsupportedRaster, srcW, srcH)
	}
	if pixelAspect <= 0 || math.IsNaN(pixelAspect) || math.IsInf(pixelAspect, 0) {
		return 0, 0, fmt.Errorf("%w: pixel aspect %v", ErrInvalidOption, pixelAspect)
	}

	targetW := float64(columns * font.Width())
	targetH := float64(srcH) * targetW / float64(srcW) / pixelAspect
	rowsF := math.Round(targetH / float64(font.Height()))
	if rowsF > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: %dx%d image at %d columns needs %.0f rows",
			ErrAllocation, srcW, srcH, columns, rowsF)
	}
	rows = int(rowsF)
	if rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d image at %d columns has no rows",
			ErrInvalidDimensions, srcW, srcH, columns)
	}
	return columns, rows, nil
}

// Resample scales img to exactly columns cells wide and a whole number of
// cells high. Alpha is flattened over black.
func Resample(img image.Image, columns int, font *Font, pixelAspect float64, maxPixels int) (*imageutil.RGBAImage, error) {
	if columns <= 0 || columns > MaxColumns {
		return nil, fmt.Errorf("%w: columns must be 1..%d, got %d",
			ErrInvalidDimensions, MaxColumns, columns)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnsupportedRaster)
	}

	bounds := img.Bounds()
	cols, rows, err := GridSize(bounds.Dx(), bounds.Dy(), columns, font, pixelAspect)
	if err != nil {
		return nil, err
	}

	width, height := cols*font.Width(), rows*font.Height()
	if maxPixels > 0 && float64(width)*float64(height) > float64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d raster exceeds %d pixels",
			ErrAllocation, width, height, maxPixels)
	}

	return imageutil.Resize(imageutil.Flatten(img), width, height), nil
}
