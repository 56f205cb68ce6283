package filter

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
)

// Gradient returns per-plane first derivatives of src: dy along rows
// and dx along columns. Interior samples use central differences,
// border samples the one-sided difference. Single-sample dimensions
// yield zero.
func Gradient(src *dense.Buffer) (dy, dx *dense.Buffer, err error) {
	const op = "gradient"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, nil, err
	}

	dy, err = dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, nil, err
	}
	dx, err = dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		dy.Release()
		return nil, nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		yd := dy.Plane(pl).Data()
		xd := dx.Plane(pl).Data()
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				for c := range cols {
					yd[r*cols+c] = diff(sp, r, rows, cols, c, true)
					xd[r*cols+c] = diff(sp, c, cols, cols, r, false)
				}
			}
		})
	}
	return dy, dx, nil
}

// diff computes the derivative at index i of n samples along one
// axis. For vertical true the plane is walked down column fixed,
// otherwise across row fixed.
func diff(sp []float32, i, n, cols, fixed int, vertical bool) float32 {
	at := func(k int) float32 {
		if vertical {
			return sp[k*cols+fixed]
		}
		return sp[fixed*cols+k]
	}
	switch {
	case n == 1:
		return 0
	case i == 0:
		return at(1) - at(0)
	case i == n-1:
		return at(n-1) - at(n-2)
	default:
		return (at(i+1) - at(i-1)) / 2
	}
}
