// Package filter provides windowed raster operations: morphology,
// rank filters, edge-preserving smoothers, and derivative kernels.
package filter

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
)

// Dilate replaces each sample with the maximum over the structuring
// element's support, applied per plane. A nil mask uses the default
// 3x3 all-ones element. Nonzero mask samples form the support; the
// window is clipped at the image border.
func Dilate(src, mask *dense.Buffer) (*dense.Buffer, error) {
	return morph2D("dilate", src, mask, true)
}

// Erode replaces each sample with the minimum over the structuring
// element's support, applied per plane. A nil mask uses the default
// 3x3 all-ones element.
func Erode(src, mask *dense.Buffer) (*dense.Buffer, error) {
	return morph2D("erode", src, mask, false)
}

// Dilate3 dilates (rows, cols, channels) volumes with a 3D
// structuring element, one volume per batch image. A nil mask uses
// the default 3x3x3 all-ones element.
func Dilate3(src, mask *dense.Buffer) (*dense.Buffer, error) {
	return morph3D("dilate3", src, mask, true)
}

// Erode3 erodes (rows, cols, channels) volumes with a 3D structuring
// element, one volume per batch image. A nil mask uses the default
// 3x3x3 all-ones element.
func Erode3(src, mask *dense.Buffer) (*dense.Buffer, error) {
	return morph3D("erode3", src, mask, false)
}

func morph2D(op string, src, mask *dense.Buffer, isMax bool) (*dense.Buffer, error) {
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if mask == nil {
		m, err := dense.Ones(dense.NewShape(3, 3))
		if err != nil {
			return nil, err
		}
		defer m.Release()
		mask = m
	}
	if err := dense.CheckSource(op, mask); err != nil {
		return nil, err
	}
	if mask.Channels() != 1 || mask.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "structuring element must be a single plane, got %v", mask.Shape())
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	mr, mc := mask.Rows(), mask.Cols()
	cr, cc := mr/2, mc/2
	md := mask.Data()

	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		dp := out.Plane(pl).Data()
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				for c := range cols {
					var acc float32
					hit := false
					for i := range mr {
						sr := r + i - cr
						if sr < 0 || sr >= rows {
							continue
						}
						for j := range mc {
							if md[i*mc+j] == 0 {
								continue
							}
							sc := c + j - cc
							if sc < 0 || sc >= cols {
								continue
							}
							v := sp[sr*cols+sc]
							if !hit || (isMax && v > acc) || (!isMax && v < acc) {
								acc = v
								hit = true
							}
						}
					}
					dp[r*cols+c] = acc
				}
			}
		})
	}
	return out, nil
}

func morph3D(op string, src, mask *dense.Buffer, isMax bool) (*dense.Buffer, error) {
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if mask == nil {
		m, err := dense.Ones(dense.NewShape(3, 3, 3))
		if err != nil {
			return nil, err
		}
		defer m.Release()
		mask = m
	}
	if err := dense.CheckSource(op, mask); err != nil {
		return nil, err
	}
	if mask.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "structuring element must be a single volume, got %v", mask.Shape())
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	rows, cols, depth := src.Rows(), src.Cols(), src.Channels()
	plane := rows * cols
	mr, mc, mk := mask.Rows(), mask.Cols(), mask.Channels()
	cr, cc, ck := mr/2, mc/2, mk/2
	md := mask.Data()
	mplane := mr * mc

	for b := range src.Batch() {
		sp := src.Data()[b*depth*plane : (b+1)*depth*plane]
		dp := out.Data()[b*depth*plane : (b+1)*depth*plane]
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				for c := range cols {
					for z := range depth {
						var acc float32
						hit := false
						for k := range mk {
							sz := z + k - ck
							if sz < 0 || sz >= depth {
								continue
							}
							for i := range mr {
								sr := r + i - cr
								if sr < 0 || sr >= rows {
									continue
								}
								for j := range mc {
									if md[k*mplane+i*mc+j] == 0 {
										continue
									}
									sc := c + j - cc
									if sc < 0 || sc >= cols {
										continue
									}
									v := sp[sz*plane+sr*cols+sc]
									if !hit || (isMax && v > acc) || (!isMax && v < acc) {
										acc = v
										hit = true
									}
								}
							}
						}
						dp[z*plane+r*cols+c] = acc
					}
				}
			}
		})
	}
	return out, nil
}
