package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willbeason/buddhabrot/pkg/codec"
	"github.com/willbeason/buddhabrot/pkg/palette"
)

const defaultAmount = 3.0

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cubehelix IMAGE [AMOUNT]",
		Short: "Recolor a 16-bit grayscale image with the CubeHelix palette",
		Long: `Recolor a 16-bit grayscale image with the CubeHelix palette.

The result is written next to IMAGE as cubehelix_<name>.png. AMOUNT sets the
contrast of the tone curve and defaults to 3.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCmd,
	}

	return cmd
}

// OutputPath is where the recolored copy of path is written.
func OutputPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(filepath.Dir(path), "cubehelix_"+name+".png")
}

func runCmd(cmd *cobra.Command, args []string) error {
	amount := defaultAmount
	if len(args) == 2 {
		var err error
		amount, err = strconv.ParseFloat(args[1], 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("amount %q is not a finite number", args[1])
		}
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	img, err := codec.Read(args[0])
	if err != nil {
		return err
	}

	return codec.Write(OutputPath(args[0]), palette.Apply(img, amount))
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
