package transform

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
)

// Resize samples src onto a rows x cols grid. The corner samples of
// source and destination coincide, so resizing to the source size
// reproduces the input exactly for every method.
func Resize(src *dense.Buffer, rows, cols int, method dense.Interp) (*dense.Buffer, error) {
	const op = "resize"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "target size %dx%d must be positive", rows, cols)
	}
	if !method.Valid() {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "unknown interpolation %v", method)
	}

	out, err := dense.NewTyped(src.Shape().WithSize(rows, cols), src.Dtype())
	if err != nil {
		return nil, err
	}

	srcRows, srcCols := src.Rows(), src.Cols()
	sy := cornerRatio(srcRows, rows)
	sx := cornerRatio(srcCols, cols)
	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		dp := out.Plane(pl).Data()
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				y := float32(r) * sy
				for c := range cols {
					dp[r*cols+c] = samplePlane(sp, srcRows, srcCols, y, float32(c)*sx, method)
				}
			}
		})
	}
	return out, nil
}

// ResizeScale resizes by a uniform factor, truncating the scaled
// dimensions to integers.
func ResizeScale(src *dense.Buffer, scale float32, method dense.Interp) (*dense.Buffer, error) {
	const op = "resize"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "scale must be positive, got %v", scale)
	}
	rows := int(scale * float32(src.Rows()))
	cols := int(scale * float32(src.Cols()))
	if rows <= 0 || cols <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "scale %v collapses %dx%d to zero size", scale, src.Rows(), src.Cols())
	}
	return Resize(src, rows, cols, method)
}

// cornerRatio maps destination index i to source position i*ratio so
// index 0 lands on sample 0 and the last index on the last sample.
func cornerRatio(srcN, dstN int) float32 {
	if dstN <= 1 {
		return 0
	}
	return float32(srcN-1) / float32(dstN-1)
}
