// Package transform provides geometric warps over dense buffers:
// resize, rotation, translation, scaling, shearing, and arbitrary
// affine transforms. Every operation maps each destination pixel back
// into the source and samples there, so destination pixels whose
// source position falls outside the image come out zero.
package transform

import (
	"math"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Affine warps src with a 2D affine matrix. The matrix acts on
// (x, y) = (col, row) positions: x' = m[0]*x + m[1]*y + m[2] and
// y' = m[3]*x + m[4]*y + m[5].
//
// With inverse true the matrix maps destination positions to source
// positions and is applied as given. With inverse false it expresses
// the forward source-to-destination warp and is inverted first, which
// fails on singular matrices. Zero rows or cols default to the source
// dimensions.
func Affine(src *dense.Buffer, mat f32.Aff3, rows, cols int, method dense.Interp, inverse bool) (*dense.Buffer, error) {
	const op = "affine"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if rows == 0 {
		rows = src.Rows()
	}
	if cols == 0 {
		cols = src.Cols()
	}
	inv := mat
	if !inverse {
		var err error
		inv, err = invertAff3(op, mat)
		if err != nil {
			return nil, err
		}
	}
	return warp(op, src, inv, rows, cols, method)
}

// warp runs the shared inverse-mapping loop: inv maps destination
// (col, row) to source (col, row).
func warp(op string, src *dense.Buffer, inv f32.Aff3, rows, cols int, method dense.Interp) (*dense.Buffer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "output size %dx%d must be positive", rows, cols)
	}
	if !method.Valid() {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "unknown interpolation %v", method)
	}
	for _, m := range inv {
		if math32.IsNaN(m) || math32.IsInf(m, 0) {
			return nil, dense.Errf(op, dense.ErrInvalidParameter, "matrix coefficients must be finite")
		}
	}

	out, err := dense.NewTyped(src.Shape().WithSize(rows, cols), src.Dtype())
	if err != nil {
		return nil, err
	}

	srcRows, srcCols := src.Rows(), src.Cols()
	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		dp := out.Plane(pl).Data()
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				y := float32(r)
				for c := range cols {
					x := float32(c)
					sx := inv[0]*x + inv[1]*y + inv[2]
					sy := inv[3]*x + inv[4]*y + inv[5]
					dp[r*cols+c] = samplePlane(sp, srcRows, srcCols, sy, sx, method)
				}
			}
		})
	}
	return out, nil
}

// invertAff3 inverts an affine matrix, failing on singular input.
func invertAff3(op string, m f32.Aff3) (f32.Aff3, error) {
	det := float64(m[0])*float64(m[4]) - float64(m[1])*float64(m[3])
	if math.Abs(det) < 1e-12 {
		return f32.Aff3{}, dense.Errf(op, dense.ErrInvalidParameter, "singular transform matrix")
	}
	id := 1 / det
	a := float32(float64(m[4]) * id)
	b := float32(-float64(m[1]) * id)
	c := float32(-float64(m[3]) * id)
	d := float32(float64(m[0]) * id)
	return f32.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		c, d, -(c*m[2] + d*m[5]),
	}, nil
}
