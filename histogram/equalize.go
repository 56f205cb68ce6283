package histogram

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
)

// Equalize remaps src through the cumulative distribution of hist,
// spreading the values across the source's own range. hist is a
// 1 x nbins counts buffer as produced by Compute; src is binned over
// its own min and max, so pair Equalize with a histogram taken over
// the same data. The mapping is monotone: ordering of samples never
// inverts.
func Equalize(src, hist *dense.Buffer) (*dense.Buffer, error) {
	const op = "histequal"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if err := dense.CheckSource(op, hist); err != nil {
		return nil, err
	}
	if hist.Rows() != 1 || hist.Channels() != 1 || hist.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "histogram must be a single row of counts, got %v", hist.Shape())
	}

	nbins := hist.Cols()
	cdf := make([]float32, nbins)
	var total float32
	for i, c := range hist.Data() {
		if c < 0 {
			return nil, dense.Errf(op, dense.ErrInvalidParameter, "negative count in bin %d", i)
		}
		total += c
		cdf[i] = total
	}
	if total == 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "histogram is empty")
	}
	for i := range cdf {
		cdf[i] /= total
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	minVal, maxVal := src.MinMax()
	width := (maxVal - minVal) / float32(nbins)
	span := maxVal - minVal
	sp, dp := src.Data(), out.Data()
	parallel.For(len(sp), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dp[i] = minVal + cdf[binIndex(sp[i], minVal, width, nbins)]*span
		}
	})
	return out, nil
}
