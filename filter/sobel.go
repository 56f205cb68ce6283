package filter

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/mempool"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/chewxy/math32"
)

// SobelDerivatives convolves src with wLen x wLen Sobel operators and
// returns the horizontal derivative dx (along columns, vertical edges
// respond) and the vertical derivative dy (along rows). wLen must be
// odd and at least 3; larger sizes extend the operator binomially.
// Borders clamp to the edge sample.
func SobelDerivatives(src *dense.Buffer, wLen int) (dx, dy *dense.Buffer, err error) {
	const op = "sobel"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, nil, err
	}
	if wLen < 3 || wLen%2 == 0 {
		return nil, nil, dense.Errf(op, dense.ErrInvalidParameter, "kernel size must be odd and >= 3, got %d", wLen)
	}

	smooth, deriv := sobelVectors(wLen)

	dx, err = dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, nil, err
	}
	dy, err = dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		dx.Release()
		return nil, nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		correlateSeparable(sp, rows, cols, smooth, deriv, dx.Plane(pl).Data())
		correlateSeparable(sp, rows, cols, deriv, smooth, dy.Plane(pl).Data())
	}
	return dx, dy, nil
}

// Sobel returns the gradient magnitude of the Sobel derivatives. With
// fast true the magnitude is |dx| + |dy| instead of the Euclidean
// norm.
func Sobel(src *dense.Buffer, wLen int, fast bool) (*dense.Buffer, error) {
	dx, dy, err := SobelDerivatives(src, wLen)
	if err != nil {
		return nil, err
	}
	defer dx.Release()
	defer dy.Release()

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}
	xd, yd, od := dx.Data(), dy.Data(), out.Data()
	parallel.For(len(od), func(lo, hi int) {
		if fast {
			for i := lo; i < hi; i++ {
				od[i] = math32.Abs(xd[i]) + math32.Abs(yd[i])
			}
			return
		}
		for i := lo; i < hi; i++ {
			od[i] = math32.Hypot(xd[i], yd[i])
		}
	})
	return out, nil
}

// sobelVectors builds the separable factors of the wLen Sobel
// operator: a binomial smoothing vector and a derivative vector, the
// outer products of which give the full kernels.
func sobelVectors(wLen int) (smooth, deriv []float32) {
	smooth = pascalRow(wLen)
	base := pascalRow(wLen - 2)
	edge := []float32{-1, 0, 1}
	deriv = make([]float32, wLen)
	for k := range deriv {
		var sum float32
		for i, b := range base {
			j := k - i
			if j >= 0 && j < len(edge) {
				sum += b * edge[j]
			}
		}
		deriv[k] = sum
	}
	return smooth, deriv
}

// pascalRow returns the n binomial coefficients C(n-1, k).
func pascalRow(n int) []float32 {
	row := make([]float32, n)
	row[0] = 1
	for k := 1; k < n; k++ {
		row[k] = row[k-1] * float32(n-k) / float32(k)
	}
	return row
}

// correlateSeparable applies vert down the rows then horiz across the
// columns, clamping both passes at the border.
func correlateSeparable(sp []float32, rows, cols int, vert, horiz []float32, dp []float32) {
	tmp := mempool.GetFloat32(rows * cols)
	defer mempool.PutFloat32(tmp)

	rv := len(vert) / 2
	parallel.For(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			for c := range cols {
				var sum float32
				for i, w := range vert {
					sum += w * sp[clamp(r+i-rv, rows)*cols+c]
				}
				tmp[r*cols+c] = sum
			}
		}
	})

	rh := len(horiz) / 2
	parallel.For(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			for c := range cols {
				var sum float32
				for j, w := range horiz {
					sum += w * tmp[r*cols+clamp(c+j-rh, cols)]
				}
				dp[r*cols+c] = sum
			}
		}
	})
}
