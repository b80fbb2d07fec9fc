package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/buddhabrot/pkg/codec"
	"github.com/willbeason/buddhabrot/pkg/histogram"
	"github.com/willbeason/buddhabrot/pkg/tone"
)

const flagBits = "bits"

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retone DUMP OUT",
		Short: "Tone-map a raw histogram written by buddhabrot --dump",
		Args:  cobra.ExactArgs(2),
		RunE:  runCmd,
	}

	cmd.Flags().Int(flagBits, 16, "output bit depth, 1 to 16")

	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	bits, _ := cmd.Flags().GetInt(flagBits)
	maxValue, err := tone.MaxForBits(bits)
	if err != nil {
		return err
	}

	h, err := histogram.LoadDump(args[0])
	if err != nil {
		return err
	}

	return codec.Write(args[1], tone.Normalize(h, maxValue))
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
