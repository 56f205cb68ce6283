package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/filter"
	"github.com/spf13/cobra"
)

// rankCmd represents the rank command.
var rankCmd = &cobra.Command{
	Use:   "rank <median|min|max> <image> [images...]",
	Short: "Sliding-window order statistic filters",
	Long: `Replace every pixel with the median, minimum, or maximum of its
--window-rows x --window-cols neighborhood. Both window dimensions
must be odd. --pad picks how samples past the border are read.

Examples:
  rasterkit rank median noisy.png
  rasterkit rank max scan.png --window-rows 5 --window-cols 5 --pad clamp`,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE:         runRankCommand,
}

func runRankCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	pad, err := resolvePad(cmd, cfg)
	if err != nil {
		return err
	}

	wRows, _ := cmd.Flags().GetInt("window-rows")
	wCols, _ := cmd.Flags().GetInt("window-cols")

	var rank func(*dense.Buffer, int, int, dense.Pad) (*dense.Buffer, error)
	switch args[0] {
	case "median":
		rank = filter.MedianFilter
	case "min":
		rank = filter.MinFilter
	case "max":
		rank = filter.MaxFilter
	default:
		return fmt.Errorf("unknown rank filter %q (want median, min, or max)", args[0])
	}

	return runFiles(cmd, args[1:], false, func(src *dense.Buffer) ([]outImage, error) {
		out, err := rank(src, wRows, wCols, pad)
		if err != nil {
			return nil, err
		}
		return single(out), nil
	})
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().Int("window-rows", 3, "window height (odd)")
	rankCmd.Flags().Int("window-cols", 3, "window width (odd)")
	rankCmd.Flags().String("pad", "", "border handling: zero or clamp")
}
