// Package blockansi converts raster images into ANSI art built from block
// element characters.
//
// A conversion resamples the image to a grid of character cells, picks the
// glyph and color pair that best reconstructs each cell, and emits the
// grid as text with SGR color sequences. The same grid can be rendered
// back into a bitmap for inspection.
package blockansi

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/blockansi/imageutil"
)

// Renderer holds the configuration of a conversion. A Renderer is not
// modified by conversions and may be shared across goroutines.
type Renderer struct {
	Columns     int
	SmallFont   bool
	Restricted  bool
	Truecolor   bool
	Bright      BrightMode
	Encoding    Encoding
	CRLF        bool
	PixelAspect float64
	MaxPixels   int
	Workers     int

	font   *Font
	logger *slog.Logger
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Columns=80, 8x16 font, full repertoire, Ansi16,
// BrightAixterm, UTF-8, PixelAspect=1, MaxPixels=DefaultMaxPixels,
// Workers=GOMAXPROCS.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Columns:     80,
		PixelAspect: 1,
		MaxPixels:   DefaultMaxPixels,
		Workers:     runtime.GOMAXPROCS(0),
		logger:      slog.New(discardHandler{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithColumns sets the output width in characters.
func WithColumns(columns int) RendererOption {
	return func(r *Renderer) {
		r.Columns = columns
	}
}

// WithSmallFont selects the 8x8 font instead of the 8x16 font.
func WithSmallFont(small bool) RendererOption {
	return func(r *Renderer) {
		r.SmallFont = small
	}
}

// WithRestrictedGlyphs limits selection to the restricted repertoire.
func WithRestrictedGlyphs(restricted bool) RendererOption {
	return func(r *Renderer) {
		r.Restricted = restricted
	}
}

// WithTruecolor selects 24-bit color output instead of the 16-color palette.
func WithTruecolor(truecolor bool) RendererOption {
	return func(r *Renderer) {
		r.Truecolor = truecolor
	}
}

// WithBrightMode sets how bright palette colors are written.
func WithBrightMode(mode BrightMode) RendererOption {
	return func(r *Renderer) {
		r.Bright = mode
	}
}

// WithEncoding sets the output character encoding.
func WithEncoding(enc Encoding) RendererOption {
	return func(r *Renderer) {
		r.Encoding = enc
	}
}

// WithCRLF ends rows with CR LF instead of LF.
func WithCRLF(crlf bool) RendererOption {
	return func(r *Renderer) {
		r.CRLF = crlf
	}
}

// WithFont replaces the built-in font. The font's height takes precedence
// over WithSmallFont.
func WithFont(f *Font) RendererOption {
	return func(r *Renderer) {
		r.font = f
	}
}

// WithPixelAspect sets the displayed height/width ratio of one cell pixel.
func WithPixelAspect(aspect float64) RendererOption {
	return func(r *Renderer) {
		r.PixelAspect = aspect
	}
}

// WithMaxPixels bounds the resampled raster size; 0 disables the check.
func WithMaxPixels(n int) RendererOption {
	return func(r *Renderer) {
		r.MaxPixels = n
	}
}

// WithWorkers sets the number of rows selected concurrently.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.Workers = n
	}
}

// WithLogger sets the logger used for per-stage debug records.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Font returns the font cells are sized and matched with.
func (r *Renderer) Font() *Font {
	if r.font != nil {
		return r.font
	}
	if r.SmallFont {
		return VGA50()
	}
	return VGA()
}

// Repertoire returns the active glyph repertoire.
func (r *Renderer) Repertoire() Repertoire {
	if r.Restricted {
		return RestrictedRepertoire
	}
	return FullRepertoire
}

// ColorSpace returns the active color space.
func (r *Renderer) ColorSpace() ColorSpace {
	if r.Truecolor {
		return Truecolor
	}
	return Ansi16
}

// Emitter returns the emitter configured for this renderer.
func (r *Renderer) Emitter() Emitter {
	return Emitter{Bright: r.Bright, Encoding: r.Encoding, CRLF: r.CRLF}
}

// Validate checks the configuration without looking at any image.
func (r *Renderer) Validate() error {
	if r.Columns <= 0 || r.Columns > MaxColumns {
		return fmt.Errorf("%w: columns must be 1..%d, got %d",
			ErrInvalidDimensions, MaxColumns, r.Columns)
	}
	return r.Emitter().CheckRepertoire(r.Repertoire())
}

// Convert resamples img and selects a glyph for every cell. On error no
// grid is returned.
func (r *Renderer) Convert(ctx context.Context, img image.Image) (*Grid, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	raster, err := Resample(img, r.Columns, r.Font(), r.PixelAspect, r.MaxPixels)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "resampled",
		slog.Int("width", raster.Width()),
		slog.Int("height", raster.Height()),
		slog.Duration("took", time.Since(start)))

	return r.Select(ctx, raster)
}

// Select runs glyph selection over a raster whose dimensions are whole
// multiples of the font's cell size. Rows are distributed over a bounded
// pool of workers; each worker writes only its own rows of the grid.
func (r *Renderer) Select(ctx context.Context, raster *imageutil.RGBAImage) (*Grid, error) {
	font := r.Font()
	if raster == nil || raster.Width() == 0 || raster.Height() == 0 {
		return nil, fmt.Errorf("%w: empty raster", ErrUnsupportedRaster)
	}
	if raster.Width()%font.Width() != 0 || raster.Height()%font.Height() != 0 {
		return nil, fmt.Errorf("%w: %dx%d raster is not a multiple of the %dx%d cell",
			ErrInvalidDimensions, raster.Width(), raster.Height(), font.Width(), font.Height())
	}

	start := time.Now()
	cols, rows := raster.Width()/font.Width(), raster.Height()/font.Height()
	grid := newGrid(cols, rows, font, r.ColorSpace())
	rep := r.Repertoire()
	q := NewQuantizer(grid.Space)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for row := 0; row < rows; row++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cell := NewCell(font)
			out := grid.Row(row)
			for col := range out {
				cell.Load(raster, col, row)
				out[col] = SelectGlyph(&cell, font, rep, q)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "selected glyphs",
		slog.Int("columns", cols),
		slog.Int("rows", rows),
		slog.String("repertoire", rep.Name()),
		slog.String("color_space", grid.Space.String()),
		slog.Int64("error", grid.TotalError()),
		slog.Duration("took", time.Since(start)))

	return grid, nil
}

// Emit encodes grid as ANSI text.
func (r *Renderer) Emit(grid *Grid) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(grid.Columns * grid.Rows * 4)
	if err := r.Emitter().Emit(&buf, grid); err != nil {
		return nil, err
	}
	r.logger.Debug("emitted", slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Preview renders grid back into a bitmap, scaled by scale.
func (r *Renderer) Preview(grid *Grid, scale int) (*image.RGBA, error) {
	scale = max(scale, 1)
	w := float64(grid.Columns) * float64(grid.Font.Width()) * float64(scale)
	h := float64(grid.Rows) * float64(grid.Font.Height()) * float64(scale)
	if r.MaxPixels > 0 && w*h > float64(r.MaxPixels) {
		return nil, fmt.Errorf("%w: %.0fx%.0f preview exceeds %d pixels", ErrAllocation, w, h, r.MaxPixels)
	}
	return grid.RenderScaled(scale), nil
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
