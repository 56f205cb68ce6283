package cmd

import (
	"github.com/MeKo-Tech/rasterkit/colorspace"
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/spf13/cobra"
)

// colorCmd represents the color command.
var colorCmd = &cobra.Command{
	Use:   "color <image> [images...]",
	Short: "Convert images between color spaces",
	Long: `Convert between gray, rgb, hsv, and ycbcr encodings.

The conversion runs in each space's native range and the stored
channels are rescaled around it so files stay 8-bit: hue maps its
0..360 degrees onto 0..255, every other channel maps 0..1 onto 0..255.

Examples:
  rasterkit color photo.jpg --from rgb --to hsv
  rasterkit color photo.jpg --from rgb --to gray`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runColorCommand,
}

func runColorCommand(cmd *cobra.Command, args []string) error {
	fromName, _ := cmd.Flags().GetString("from")
	toName, _ := cmd.Flags().GetString("to")

	from, err := colorspace.ParseSpace(fromName)
	if err != nil {
		return err
	}
	to, err := colorspace.ParseSpace(toName)
	if err != nil {
		return err
	}

	return runFiles(cmd, args, from != colorspace.Gray, func(src *dense.Buffer) ([]outImage, error) {
		scaleChannels(src, byteToNative(from))
		out, err := colorspace.Convert(src, from, to)
		if err != nil {
			return nil, err
		}
		scaleChannels(out, nativeToByte(to))
		return single(out), nil
	})
}

// nativeToByte returns the per-channel factors that bring a space's
// native range into the stored 8-bit range.
func nativeToByte(s colorspace.Space) [3]float32 {
	if s == colorspace.HSV {
		return [3]float32{255.0 / 360.0, 255, 255}
	}
	return [3]float32{255, 255, 255}
}

// byteToNative returns the per-channel factors that bring stored 8-bit
// values into the space's native range.
func byteToNative(s colorspace.Space) [3]float32 {
	f := nativeToByte(s)
	for i := range f {
		f[i] = 1 / f[i]
	}
	return f
}

// scaleChannels multiplies every sample of each channel by its factor,
// in place.
func scaleChannels(buf *dense.Buffer, factors [3]float32) {
	channels := buf.Channels()
	for b := range buf.Batch() {
		for ch := range channels {
			p := buf.Plane(b*channels + ch).Data()
			f := factors[ch]
			for i := range p {
				p[i] *= f
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.Flags().String("from", "rgb", "input color space: gray, rgb, hsv, ycbcr")
	colorCmd.Flags().String("to", "gray", "output color space: gray, rgb, hsv, ycbcr")
}
