// Command paintbynumbers converts a raster photo into a paint-by-numbers
// region map: it decodes an image, runs the core pipeline, and writes a
// quantized preview PNG plus a one-line summary of the resulting facets.
//
// SVG rendering, the parameter-sweep explorer, and HTML reporting are
// deliberately out of scope for this binary (see pkg/pbn's package doc) —
// it exists to exercise the pipeline end to end, not to replace a real
// renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/Nuopel/paintbynumbers-go/pkg/config"
	"github.com/Nuopel/paintbynumbers-go/pkg/pbn"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		inputPath   = flag.String("input", "", "Path to the input image (PNG or JPEG)")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("paintbynumbers version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *debugMode {
		cfg.LogLevel = "debug"
	}

	logger := createLogger(cfg.LogLevel)
	runID := uuid.New().String()[:8]
	ctx := mtlog.PushProperty(context.Background(), "RunID", runID)
	runLogger := logger.WithContext(ctx)

	if *inputPath == "" {
		runLogger.Error("Missing required -input flag")
		os.Exit(1)
	}

	if err := run(*inputPath, cfg, runLogger); err != nil {
		runLogger.Error("Run failed: {Error}", err)
		os.Exit(1)
	}
}

func run(inputPath string, cfg *config.Config, logger core.Logger) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input image: %w", err)
	}
	defer f.Close()

	decoded, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding input image: %w", err)
	}
	logger.Information("Decoded {Format} image {Width}x{Height}", format, decoded.Bounds().Dx(), decoded.Bounds().Dy())

	settings := cfg.Settings()
	decoded = maybeResize(decoded, settings.ResizeMaxWidth, settings.ResizeMaxHeight, logger)

	img := toPBNImage(decoded)

	start := time.Now()
	var lastStage string
	onProgress := func(stage string, fraction float64) {
		if stage != lastStage {
			logger.Debug("Stage {Stage} starting", stage)
			lastStage = stage
		}
	}

	result, err := pbn.Run(img, settings, logger, onProgress)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	logger.Information("Pipeline finished in {Elapsed} with {FacetCount} facets and {ColorCount} colors",
		time.Since(start), result.Facets.GetFacetCount(), len(result.Colors))

	preview := pbn.DitherPreview(img, result.Colors)
	outPath := filepath.Join(cfg.OutputDir, baseNameWithoutExt(inputPath)+"_preview.png")
	if err := writePNG(outPath, preview); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	logger.Information("Wrote preview to {Path}", outPath)

	return nil
}

func maybeResize(img image.Image, maxW, maxH int, logger core.Logger) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return img
	}

	targetW, targetH := uint(0), uint(0)
	if maxW > 0 {
		targetW = uint(maxW)
	}
	if maxH > 0 {
		targetH = uint(maxH)
	}
	logger.Debug("Resizing {Width}x{Height} to fit within {MaxWidth}x{MaxHeight}", w, h, maxW, maxH)
	return resize.Resize(targetW, targetH, img, resize.Bilinear)
}

func baseNameWithoutExt(p string) string {
	base := filepath.Base(p)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

// createLogger creates a configured logger instance.
func createLogger(logLevel string) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "warn":
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	}

	return mtlog.New(opts...)
}
