package blockansi

import "errors"

var (
	// ErrInvalidDimensions indicates a column count outside 1..MaxColumns or
	// a resampled raster with no rows.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrUnsupportedRaster indicates a nil or zero-sized input image.
	ErrUnsupportedRaster = errors.New("unsupported raster")
	// ErrAllocation indicates that a raster or grid would exceed the
	// configured pixel budget.
	ErrAllocation = errors.New("allocation failure")
	// ErrInvalidOption indicates a configuration that cannot be honored, such
	// as an output encoding missing a repertoire glyph.
	ErrInvalidOption = errors.New("invalid option")
)
