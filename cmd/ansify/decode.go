package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"

	"github.com/wbrown/blockansi"
	"github.com/wbrown/blockansi/imageutil"
)

// readImage decodes the image at path, or from stdin when path is "-".
func readImage(path string, stdin io.Reader) (image.Image, string, error) {
	var (
		img    image.Image
		format string
		err    error
	)

	if path == "-" {
		img, format, err = imageutil.Decode(stdin)
	} else {
		img, format, err = imageutil.LoadImage(path)
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, "", fmt.Errorf("%w: %w", ErrReadInput, err)
	case err != nil:
		return nil, "", fmt.Errorf("%w: %s: %w", blockansi.ErrUnsupportedRaster, path, err)
	}

	return img, format, nil
}
