package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	// Register decoders for the formats a source image may arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/meigma/gridzip"
	"github.com/meigma/gridzip/compose"
	"github.com/meigma/gridzip/http"
	"github.com/meigma/gridzip/internal/config"
	"github.com/meigma/gridzip/tile"
)

var splitCmd = &cobra.Command{
	Use:   "split <image>",
	Short: "Split an image into grid pieces and pack them as ZIP",
	Long: "Split cuts an image into a rows x cols grid of PNG pieces and " +
		"packs them into a ZIP archive. The image may be a local file or " +
		"an http(s) URL.",
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	registerSplitFlags(splitCmd.Flags())
	splitCmd.Flags().Int("workers", 0, "Concurrent PNG encoders (0 = one per CPU)")

	rootCmd.AddCommand(splitCmd)
}

// registerSplitFlags declares the flags that override config.yaml.
func registerSplitFlags(flags *pflag.FlagSet) {
	flags.IntP("rows", "r", 0, "Grid rows")
	flags.IntP("cols", "c", 0, "Grid columns")
	flags.StringP("out", "o", "", "Output archive path")
	flags.String("pattern", "", "Piece name pattern with two %d verbs (row, col)")
	flags.Bool("canvas", false, "Place the image on a square canvas before slicing")
	flags.Int("canvas-size", 0, "Canvas edge length in pixels")
	flags.String("background", "", "Canvas background color (hex, e.g. #ffffff)")
	flags.Bool("auto-center", false, "Center the canvas on the opaque region of the image")
	flags.Bool("fit", false, "Scale the image to fit inside the canvas")
	flags.Bool("cover", false, "Scale the image to cover the canvas, cropping overflow")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applySplitFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return err
	}
	workers, _ := cmd.Flags().GetInt("workers")

	ctx := cmd.Context()
	img, err := loadImage(ctx, args[0])
	if err != nil {
		return err
	}

	printer := newProgressPrinter()
	defer printer.Done()

	if cfg.Canvas.Enabled {
		fit, _ := cmd.Flags().GetBool("fit")
		cover, _ := cmd.Flags().GetBool("cover")
		printer.Report(gridzip.ProgressEvent{Stage: gridzip.StageComposing})
		img, err = composeCanvas(img, cfg.Canvas, fit, cover)
		if err != nil {
			return err
		}
	}

	printer.Report(gridzip.ProgressEvent{Stage: gridzip.StageSlicing})
	tiles, err := tile.Slice(img, cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return err
	}

	entries, err := tile.EncodeAll(ctx, tiles,
		tile.EncodeWithNamePattern(cfg.Grid.NamePattern),
		tile.EncodeWithWorkers(workers),
		tile.EncodeWithLogger(logger),
		tile.EncodeWithProgress(printer.Func()),
	)
	if err != nil {
		return err
	}

	archive, err := gridzip.Build(entries,
		gridzip.BuildWithLogger(logger),
		gridzip.BuildWithProgress(printer.Func()),
	)
	if err != nil {
		return err
	}

	printer.Report(gridzip.ProgressEvent{Stage: gridzip.StageSaving, BytesDone: uint64(len(archive))})
	if err := gridzip.Save(cfg.Output.Path, archive); err != nil {
		return err
	}

	printer.Done()
	fmt.Printf("wrote %s (%d pieces, %d bytes)\n", cfg.Output.Path, len(entries), len(archive))
	return nil
}

// loadConfig reads the config file named by --config, or the user
// config with defaults as fallback.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFrom(path)
	}
	return config.LoadOrDefault(), nil
}

// applySplitFlags overrides configuration with any flags the user set.
func applySplitFlags(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("rows") {
		cfg.Grid.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("pattern") {
		cfg.Grid.NamePattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("out") {
		cfg.Output.Path, _ = flags.GetString("out")
	}
	if flags.Changed("canvas") {
		cfg.Canvas.Enabled, _ = flags.GetBool("canvas")
	}
	if flags.Changed("canvas-size") {
		cfg.Canvas.Size, _ = flags.GetInt("canvas-size")
		cfg.Canvas.Enabled = true
	}
	if flags.Changed("background") {
		cfg.Canvas.Background, _ = flags.GetString("background")
		cfg.Canvas.Enabled = true
	}
	if flags.Changed("auto-center") {
		cfg.Canvas.AutoCenter, _ = flags.GetBool("auto-center")
		cfg.Canvas.Enabled = true
	}
	if flags.Changed("fit") || flags.Changed("cover") {
		cfg.Canvas.Enabled = true
	}
}

// composeCanvas renders the image onto the configured square canvas.
func composeCanvas(img image.Image, cc config.CanvasConfig, fit, cover bool) (image.Image, error) {
	opts := []compose.Option{compose.WithCanvasSize(cc.Size, cc.Size)}

	if cc.Background != "" {
		bg, err := compose.ParseHexColor(cc.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithBackground(bg))
	}

	b := img.Bounds()
	switch {
	case cc.AutoCenter:
		opts = append(opts, compose.WithAutoCenter(0))
	case fit:
		opts = append(opts, compose.WithPlacement(compose.Fit(b, cc.Size, cc.Size)))
	case cover:
		opts = append(opts, compose.WithPlacement(compose.Cover(b, cc.Size, cc.Size)))
	default:
		opts = append(opts, compose.WithPlacement(compose.Placement{
			OffsetX: (cc.Size - b.Dx()) / 2,
			OffsetY: (cc.Size - b.Dy()) / 2,
		}))
	}

	return compose.Render(img, opts...)
}

// loadImage reads and decodes an image from a local path or http(s) URL.
func loadImage(ctx context.Context, src string) (image.Image, error) {
	var data []byte
	var err error
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = http.Fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	logger.Debug("decoded source image",
		"source", src,
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, nil
}
