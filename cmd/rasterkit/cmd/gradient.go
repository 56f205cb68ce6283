package cmd

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/filter"
	"github.com/spf13/cobra"
)

// gradientCmd represents the gradient command.
var gradientCmd = &cobra.Command{
	Use:   "gradient <image> [images...]",
	Short: "Central-difference image gradients",
	Long: `Compute per-pixel central-difference derivatives and write them as
separate _dy (vertical) and _dx (horizontal) files. Negative
derivative values clamp to black when encoded.

Examples:
  rasterkit gradient height-map.png`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runGradientCommand,
}

func runGradientCommand(cmd *cobra.Command, args []string) error {
	return runFiles(cmd, args, false, func(src *dense.Buffer) ([]outImage, error) {
		dy, dx, err := filter.Gradient(src)
		if err != nil {
			return nil, err
		}
		return []outImage{{Tag: "_dy", Buf: dy}, {Tag: "_dx", Buf: dx}}, nil
	})
}

func init() {
	rootCmd.AddCommand(gradientCmd)
}
