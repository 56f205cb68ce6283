package cmd

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/filter"
	"github.com/spf13/cobra"
)

// morphCmd represents the morph command.
var morphCmd = &cobra.Command{
	Use:   "morph <dilate|erode> <image> [images...]",
	Short: "Grayscale morphological dilation and erosion",
	Long: `Apply grayscale morphology with a rectangular structuring element of
--mask-rows x --mask-cols ones, anchored at its center.

Examples:
  rasterkit morph dilate mask.png
  rasterkit morph erode mask.png --mask-rows 5 --mask-cols 5`,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE:         runMorphCommand,
}

func runMorphCommand(cmd *cobra.Command, args []string) error {
	op := args[0]
	if op != "dilate" && op != "erode" {
		return fmt.Errorf("unknown morph operation %q (want dilate or erode)", op)
	}

	maskRows, _ := cmd.Flags().GetInt("mask-rows")
	maskCols, _ := cmd.Flags().GetInt("mask-cols")
	if maskRows < 1 || maskCols < 1 {
		return errors.New("--mask-rows and --mask-cols must be positive")
	}

	mask, err := dense.Ones(dense.NewShape(maskRows, maskCols))
	if err != nil {
		return err
	}
	defer mask.Release()

	return runFiles(cmd, args[1:], false, func(src *dense.Buffer) ([]outImage, error) {
		var out *dense.Buffer
		var err error
		if op == "dilate" {
			out, err = filter.Dilate(src, mask)
		} else {
			out, err = filter.Erode(src, mask)
		}
		if err != nil {
			return nil, err
		}
		return single(out), nil
	})
}

func init() {
	rootCmd.AddCommand(morphCmd)
	morphCmd.Flags().Int("mask-rows", 3, "structuring element height")
	morphCmd.Flags().Int("mask-cols", 3, "structuring element width")
}
