// Package histogram provides value-distribution reductions over dense
// buffers: counting, equalization, and threshold selection.
package histogram

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/chewxy/math32"
)

// Compute counts the samples of src into nbins equal-width bins
// spanning the buffer's own value range. The counts come back as a
// 1 x nbins buffer tagged u32.
func Compute(src *dense.Buffer, nbins int) (*dense.Buffer, error) {
	if err := dense.CheckSource("histogram", src); err != nil {
		return nil, err
	}
	minVal, maxVal := src.MinMax()
	return ComputeRange(src, nbins, minVal, maxVal)
}

// ComputeRange counts like Compute over an explicit value range.
// Samples outside the range land in the nearest boundary bin.
func ComputeRange(src *dense.Buffer, nbins int, minVal, maxVal float32) (*dense.Buffer, error) {
	const op = "histogram"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if nbins <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "bin count must be positive, got %d", nbins)
	}
	if math32.IsNaN(minVal) || math32.IsNaN(maxVal) || minVal > maxVal {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "bad value range [%v, %v]", minVal, maxVal)
	}

	out, err := dense.NewTyped(dense.NewShape(1, nbins), dense.U32)
	if err != nil {
		return nil, err
	}
	counts := out.Data()
	width := (maxVal - minVal) / float32(nbins)
	for _, v := range src.Data() {
		counts[binIndex(v, minVal, width, nbins)]++
	}
	return out, nil
}

// binIndex maps a sample to its bin, clamping to the boundary bins.
func binIndex(v, minVal, width float32, nbins int) int {
	if width <= 0 {
		return 0
	}
	bin := int(math32.Floor((v - minVal) / width))
	if bin < 0 {
		return 0
	}
	if bin >= nbins {
		return nbins - 1
	}
	return bin
}
