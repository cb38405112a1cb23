package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-sixel"

	"github.com/wbrown/blockansi"
	"github.com/wbrown/blockansi/imageutil"
	"github.com/wbrown/blockansi/sauce"
)

// writeANSI writes the emitted art to path, or to stdout when path is "-".
// Files get a SAUCE record when enabled and the grid fits one; stdout never
// does.
func writeANSI(path string, stdout io.Writer, art []byte, grid *blockansi.Grid, r *blockansi.Renderer, cfg *Config, logger *slog.Logger) error {
	if path == "-" {
		_, err := stdout.Write(art)
		if err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}

		return nil
	}

	var buf bytes.Buffer
	buf.Grow(len(art) + 1 + sauce.Size)
	buf.Write(art)

	if cfg.Sauce {
		rec, err := cfg.sauceRecord(r, len(art), grid.Columns, grid.Rows)

		switch {
		case errors.Is(err, sauce.ErrFieldRange):
			logger.Warn("omitting SAUCE record",
				slog.String("path", path),
				slog.Any("error", err))

		case err != nil:
			return err

		default:
			err = sauce.Write(&buf, rec)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
		}
	}

	err := os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// writePNG writes img as a PNG file.
func writePNG(path string, img image.Image) error {
	err := imageutil.SavePNG(img, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	return nil
}

// writeSixel draws img on a sixel capable terminal.
func writeSixel(w io.Writer, img image.Image) error {
	enc := sixel.NewEncoder(w)
	enc.Dither = false

	err := enc.Encode(img)
	if err != nil {
		return fmt.Errorf("%w: sixel: %w", ErrWriteOutput, err)
	}

	return nil
}
