package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/willbeason/buddhabrot/pkg/codec"
	"github.com/willbeason/buddhabrot/pkg/histogram"
	"github.com/willbeason/buddhabrot/pkg/manifest"
	"github.com/willbeason/buddhabrot/pkg/render"
	"github.com/willbeason/buddhabrot/pkg/tone"
	"github.com/willbeason/buddhabrot/pkg/trajectory"
)

const (
	flagOut           = "out"
	flagFormat        = "format"
	flagMirror        = "mirror"
	flagEscapeRadius2 = "escape-radius2"
	flagPreview       = "preview"
	flagDump          = "dump"
	flagManifest      = "manifest"
	flagGops          = "gops"
	flagVerbose       = "verbose"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buddhabrot SIZE ITERATIONS WORKERS MAX_SAMPLES",
		Short: "Render a Buddhabrot density image",
		Long: `Render a SIZE x SIZE Buddhabrot of [-2,2] x [-2,2] as a 16-bit grayscale image.

Every pixel cell is sampled at least 5 times and up to MAX_SAMPLES times,
depending on how close to the boundary of the Mandelbrot set it lies. Orbits
are capped at ITERATIONS steps. WORKERS goroutines render interleaved rows.`,
		Args: cobra.MatchAll(cobra.ExactArgs(4), positiveInts),
		RunE: runCmd,
	}

	cmd.Flags().String(flagOut, ".", "directory to write images into")
	cmd.Flags().String(flagFormat, string(codec.PNG), "image format: png or tiff")
	cmd.Flags().Bool(flagMirror, true, "fold the image onto its conjugate half")
	cmd.Flags().Float64(flagEscapeRadius2, trajectory.DefaultEscapeRadius2, "squared escape radius")
	cmd.Flags().Int(flagPreview, 0, "also write a preview scaled to this side length")
	cmd.Flags().Bool(flagDump, false, "also write the raw histogram for retone")
	cmd.Flags().Bool(flagManifest, true, "also write a JSON manifest of the render")
	cmd.Flags().Bool(flagGops, false, "start a gops diagnostics agent")
	cmd.Flags().BoolP(flagVerbose, "v", false, "log per-worker progress")

	return cmd
}

func positiveInts(_ *cobra.Command, args []string) error {
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%q is not an integer", arg)
		}
		if n <= 0 {
			return fmt.Errorf("%d must be positive", n)
		}
	}
	return nil
}

// Name is the file name, without extension, for a render. It carries every
// parameter that changes the image so runs never overwrite each other.
func Name(size, iterations, maxSamples int) string {
	return fmt.Sprintf("buddhabrot_%d_%d_%d", size, iterations, maxSamples)
}

func runCmd(cmd *cobra.Command, args []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	// Args have already been checked by positiveInts.
	ints := make([]int, len(args))
	for i, arg := range args {
		ints[i], _ = strconv.Atoi(arg)
	}

	flags := cmd.Flags()
	out, _ := flags.GetString(flagOut)
	formatName, _ := flags.GetString(flagFormat)
	mirror, _ := flags.GetBool(flagMirror)
	escapeRadius2, _ := flags.GetFloat64(flagEscapeRadius2)
	preview, _ := flags.GetInt(flagPreview)
	dump, _ := flags.GetBool(flagDump)
	writeManifest, _ := flags.GetBool(flagManifest)
	gops, _ := flags.GetBool(flagGops)
	verbose, _ := flags.GetBool(flagVerbose)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return err
	}
	// Config treats a zero radius as unset, so an explicit zero has to be
	// caught here.
	if !(escapeRadius2 > 0) || math.IsInf(escapeRadius2, 1) {
		return fmt.Errorf("--%s must be positive and finite, got %v", flagEscapeRadius2, escapeRadius2)
	}
	if preview < 0 {
		return fmt.Errorf("--%s must not be negative, got %d", flagPreview, preview)
	}

	cfg := render.Config{
		Size:          ints[0],
		Iterations:    ints[1],
		Workers:       ints[2],
		MaxSamples:    ints[3],
		EscapeRadius2: escapeRadius2,
		Mirror:        mirror,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("starting gops agent: %w", err)
		}
		defer agent.Close()
	}

	err = os.MkdirAll(out, os.ModePerm)
	if err != nil {
		return err
	}

	result, err := render.Render(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	base := filepath.Join(out, Name(cfg.Size, cfg.Iterations, cfg.MaxSamples))
	imagePath := base + format.Ext()
	img := tone.Normalize(result.Histogram, tone.Max16)

	var sides []output
	if preview > 0 {
		sides = append(sides, output{
			path: base + "_preview" + format.Ext(),
			write: func(path string) error {
				return codec.Write(path, codec.Preview(img, preview))
			},
		})
	}
	if dump {
		sides = append(sides, output{
			path: base + ".hist.zst",
			write: func(path string) error {
				return histogram.SaveDump(path, result.Histogram)
			},
		})
	}
	if writeManifest {
		sides = append(sides, output{
			path: base + ".json",
			write: func(path string) error {
				return manifest.Write(path, manifest.FromResult(filepath.Base(imagePath), result))
			},
		})
	}

	return writeOutputs(sides, imagePath, img)
}

// output is a file written alongside the image.
type output struct {
	path  string
	write func(path string) error
}

// writeOutputs writes the side files, then the image. The image goes last so
// that its presence means the whole run succeeded; on any failure the side
// files already written are removed.
func writeOutputs(sides []output, imagePath string, img image.Image) error {
	var written []string
	cleanup := func() {
		for _, path := range written {
			_ = os.Remove(path)
		}
	}

	for _, o := range sides {
		if err := o.write(o.path); err != nil {
			cleanup()
			return err
		}
		written = append(written, o.path)
	}

	if err := codec.Write(imagePath, img); err != nil {
		cleanup()
		return err
	}
	render.Logger().Info("wrote image", "path", imagePath)

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := mainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
