// Package main provides the CLI entry point for ansify, which converts an
// image into ANSI art drawn with block characters.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/wbrown/blockansi"
	"github.com/wbrown/blockansi/log"
	"github.com/wbrown/blockansi/version"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := NewConfig()
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "ansify [flags] INPUT OUTPUT",
		Short: "Convert an image into block character ANSI art",
		Long: `ansify resamples an image to a grid of 8 pixel wide character cells and
picks, for every cell, the block character and color pair that reproduces it
best. The result is written as ANSI text with SGR color sequences.

INPUT and OUTPUT may be "-" for stdin and stdout.`,
		Version:       version.String(),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cfg.Load(cmd.Flags())
			if err != nil {
				return err
			}

			handler, err := logCfg.NewHandler(stderr)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg, slog.New(handler), args[0], args[1], stdin, stdout)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())

	err := cfg.RegisterCompletions(rootCmd)
	if err == nil {
		err = logCfg.RegisterCompletions(rootCmd)
	}

	if err != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", err)
	}

	return rootCmd
}

func run(ctx context.Context, cfg *Config, logger *slog.Logger, input, output string, stdin io.Reader, stdout io.Writer) error {
	start := time.Now()

	r, err := cfg.NewRenderer(logger)
	if err != nil {
		return err
	}

	img, format, err := readImage(input, stdin)
	if err != nil {
		return err
	}

	logger.Debug("decoded input",
		slog.String("path", input),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))

	grid, err := r.Convert(ctx, img)
	if err != nil {
		return err
	}

	art, err := r.Emit(grid)
	if err != nil {
		return err
	}

	err = writeANSI(output, stdout, art, grid, r, cfg, logger)
	if err != nil {
		return err
	}

	if output != "-" {
		logger.Info("wrote",
			slog.String("path", output),
			slog.Int("columns", grid.Columns),
			slog.Int("rows", grid.Rows),
			slog.String("font", grid.Font.Name()))
	}

	if cfg.Image {
		preview, err := r.Preview(grid, cfg.PreviewScale)
		if err != nil {
			return err
		}

		switch cfg.PreviewFormat {
		case previewSixel:
			err = writeSixel(stdout, preview)
			if err != nil {
				return err
			}

		default:
			name := output
			if name == "-" {
				name = input
			}

			if name == "-" {
				return fmt.Errorf("%w: a png preview needs a file name; use --preview-format sixel",
					blockansi.ErrInvalidOption)
			}

			path := previewPath(name)

			err = writePNG(path, preview)
			if err != nil {
				return err
			}

			logger.Info("wrote", slog.String("path", path))
		}
	}

	logger.Debug("done", slog.Duration("took", time.Since(start)))

	return nil
}
