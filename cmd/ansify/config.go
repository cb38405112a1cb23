package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/wbrown/blockansi"
	"github.com/wbrown/blockansi/sauce"
)

var (
	// ErrReadInput indicates a failure reading the input image or config.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates a failure writing the ANSI file or preview.
	ErrWriteOutput = errors.New("write output")
)

const (
	previewPNG   = "png"
	previewSixel = "sixel"
)

// Flags holds CLI flag names for conversion configuration.
type Flags struct {
	Config        string
	Columns       string
	SmallFont     string
	Restricted    string
	Truecolor     string
	Image         string
	PreviewFormat string
	PreviewScale  string
	BrightMode    string
	Encoding      string
	CRLF          string
	Sauce         string
	Title         string
	Author        string
	Group         string
	Font          string
	PixelAspect   string
	Workers       string
	MaxPixels     string
	FitTerminal   string
}

// Config holds conversion settings. Values come from the defaults set by
// [Config.RegisterFlags], then the YAML file named by --config, then any
// flag given on the command line.
type Config struct {
	Flags Flags `yaml:"-"`

	File          string  `yaml:"-"`
	Columns       int     `yaml:"columns"`
	SmallFont     bool    `yaml:"small_font"`
	Restricted    bool    `yaml:"restricted_glyphs"`
	Truecolor     bool    `yaml:"truecolor"`
	Image         bool    `yaml:"emit_preview_image"`
	PreviewFormat string  `yaml:"preview_format"`
	PreviewScale  int     `yaml:"preview_scale"`
	BrightMode    string  `yaml:"bright_mode"`
	Encoding      string  `yaml:"encoding"`
	CRLF          bool    `yaml:"crlf"`
	Sauce         bool    `yaml:"sauce"`
	Title         string  `yaml:"title"`
	Author        string  `yaml:"author"`
	Group         string  `yaml:"group"`
	Font          string  `yaml:"font"`
	PixelAspect   float64 `yaml:"pixel_aspect"`
	Workers       int     `yaml:"workers"`
	MaxPixels     int     `yaml:"max_pixels"`
	FitTerminal   bool    `yaml:"fit_terminal"`
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Config:        "config",
			Columns:       "columns",
			SmallFont:     "vga50",
			Restricted:    "restrict",
			Truecolor:     "truecolor",
			Image:         "image",
			PreviewFormat: "preview-format",
			PreviewScale:  "preview-scale",
			BrightMode:    "bright-mode",
			Encoding:      "encoding",
			CRLF:          "crlf",
			Sauce:         "sauce",
			Title:         "title",
			Author:        "author",
			Group:         "group",
			Font:          "font",
			PixelAspect:   "pixel-aspect",
			Workers:       "workers",
			MaxPixels:     "max-pixels",
			FitTerminal:   "fit-terminal",
		},
	}
}

// RegisterFlags adds conversion flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.File, c.Flags.Config, "c", "",
		"YAML file with default settings")
	flags.IntVarP(&c.Columns, c.Flags.Columns, "w", 80,
		fmt.Sprintf("number of columns, 1 to %d", blockansi.MaxColumns))
	flags.BoolVar(&c.SmallFont, c.Flags.SmallFont, false,
		"use the 8x8 font instead of 8x16")
	flags.BoolVar(&c.Restricted, c.Flags.Restricted, false,
		"use only shade and half blocks, no quadrants")
	flags.BoolVar(&c.Truecolor, c.Flags.Truecolor, false,
		"emit 24-bit colors instead of the 16-color palette")
	flags.BoolVar(&c.Image, c.Flags.Image, false,
		"also write a preview image next to the output")
	flags.StringVar(&c.PreviewFormat, c.Flags.PreviewFormat, previewPNG,
		"preview format, png (file) or sixel (terminal)")
	flags.IntVar(&c.PreviewScale, c.Flags.PreviewScale, 1,
		"preview pixels per font pixel")
	flags.StringVar(&c.BrightMode, c.Flags.BrightMode, blockansi.BrightAixterm.String(),
		"bright color sequences, aixterm or ice")
	flags.StringVar(&c.Encoding, c.Flags.Encoding, blockansi.EncodingUTF8.String(),
		"glyph encoding, utf8 or cp437")
	flags.BoolVar(&c.CRLF, c.Flags.CRLF, false,
		"end rows with CR LF")
	flags.BoolVar(&c.Sauce, c.Flags.Sauce, true,
		"append a SAUCE record to file output")
	flags.StringVar(&c.Title, c.Flags.Title, "",
		"SAUCE title")
	flags.StringVar(&c.Author, c.Flags.Author, "",
		"SAUCE author")
	flags.StringVar(&c.Group, c.Flags.Group, "",
		"SAUCE group")
	flags.StringVar(&c.Font, c.Flags.Font, "",
		"TrueType font to take glyph masks from")
	flags.Float64Var(&c.PixelAspect, c.Flags.PixelAspect, 1,
		"displayed height/width ratio of a font pixel")
	flags.IntVar(&c.Workers, c.Flags.Workers, 0,
		"rows converted in parallel, 0 for one per CPU")
	flags.IntVar(&c.MaxPixels, c.Flags.MaxPixels, blockansi.DefaultMaxPixels,
		"largest resampled image in pixels, 0 for no limit")
	flags.BoolVar(&c.FitTerminal, c.Flags.FitTerminal, false,
		"use the terminal width as the column count")
}

// RegisterCompletions registers shell completions for conversion flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := map[string][]string{
		c.Flags.PreviewFormat: {previewPNG, previewSixel},
		c.Flags.BrightMode:    {blockansi.BrightAixterm.String(), blockansi.BrightICE.String()},
		c.Flags.Encoding:      {blockansi.EncodingUTF8.String(), blockansi.EncodingCP437.String()},
	}
	for flag, values := range fixed {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Config,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Config, err)
	}

	return nil
}

// Load merges the --config file under the flags set on the command line.
func (c *Config) Load(flags *pflag.FlagSet) error {
	if c.File == "" {
		return nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	set := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		set[f.Name] = f.Value.String()
	})

	err = yaml.UnmarshalWithOptions(data, c, yaml.Strict())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", blockansi.ErrInvalidOption, c.File, err)
	}

	for name, value := range set {
		err := flags.Set(name, value)
		if err != nil {
			return fmt.Errorf("%w: --%s: %w", blockansi.ErrInvalidOption, name, err)
		}
	}

	return nil
}

// Validate checks values that are not checked by the renderer.
func (c *Config) Validate() error {
	switch c.PreviewFormat {
	case previewPNG, previewSixel:
	default:
		return fmt.Errorf("%w: unknown preview format %q", blockansi.ErrInvalidOption, c.PreviewFormat)
	}

	if c.PreviewScale < 1 {
		return fmt.Errorf("%w: preview scale must be at least 1, got %d",
			blockansi.ErrInvalidOption, c.PreviewScale)
	}

	return nil
}

// terminalColumns returns the width of the terminal on stdout.
func terminalColumns() (int, error) {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, fmt.Errorf("%w: unable to detect terminal size (use --columns): %w",
			blockansi.ErrInvalidOption, err)
	}

	return w, nil
}

// NewRenderer creates a [blockansi.Renderer] using this [Config].
func (c *Config) NewRenderer(logger *slog.Logger) (*blockansi.Renderer, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	bright, err := blockansi.ParseBrightMode(c.BrightMode)
	if err != nil {
		return nil, err
	}

	enc, err := blockansi.ParseEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}

	columns := c.Columns
	if c.FitTerminal {
		columns, err = terminalColumns()
		if err != nil {
			return nil, err
		}
	}

	opts := []blockansi.RendererOption{
		blockansi.WithColumns(columns),
		blockansi.WithSmallFont(c.SmallFont),
		blockansi.WithRestrictedGlyphs(c.Restricted),
		blockansi.WithTruecolor(c.Truecolor),
		blockansi.WithBrightMode(bright),
		blockansi.WithEncoding(enc),
		blockansi.WithCRLF(c.CRLF),
		blockansi.WithPixelAspect(c.PixelAspect),
		blockansi.WithMaxPixels(c.MaxPixels),
		blockansi.WithLogger(logger),
	}

	if c.Workers > 0 {
		opts = append(opts, blockansi.WithWorkers(c.Workers))
	}

	if c.Font != "" {
		height := blockansi.GlyphHeight
		if c.SmallFont {
			height = blockansi.SmallGlyphHeight
		}

		font, err := blockansi.LoadFontTTF(c.Font, height)
		if err != nil {
			if !errors.Is(err, blockansi.ErrInvalidOption) {
				err = fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			return nil, err
		}

		opts = append(opts, blockansi.WithFont(font))
	}

	r := blockansi.NewRenderer(opts...)

	err = r.Validate()
	if err != nil {
		return nil, err
	}

	if c.Sauce {
		_, err = c.sauceRecord(r, 0, 0, 0)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// sauceRecord builds the SAUCE record for an output of size bytes and
// checks that every text field fits.
func (c *Config) sauceRecord(r *blockansi.Renderer, size, columns, rows int) (sauce.Record, error) {
	rec, err := sauce.NewANSi(size, columns, rows, r.Font().Name(), sauceFlags(r))
	if err != nil {
		return sauce.Record{}, err
	}

	rec.Title = c.Title
	rec.Author = c.Author
	rec.Group = c.Group

	_, err = rec.MarshalBinary()
	if err != nil {
		return sauce.Record{}, fmt.Errorf("%w: %w", blockansi.ErrInvalidOption, err)
	}

	return rec, nil
}

// sauceFlags returns the SAUCE TFlags for a renderer's output.
func sauceFlags(r *blockansi.Renderer) sauce.Flags {
	flags := sauce.FlagLetterSpacing8
	if r.Bright == blockansi.BrightICE && !r.Truecolor {
		flags |= sauce.FlagICEColors
	}

	return flags
}

// previewPath returns the preview file name for an output path, replacing
// its extension with .ans.png.
func previewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".ans.png"
}
