package filter

import (
	"sort"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
)

// MedianFilter replaces each sample with the median of its w0 x w1
// window. Window sides must be odd. Pad selects how the window reads
// past the border: PadZero substitutes zeros, PadClampEdge repeats
// the edge sample.
func MedianFilter(src *dense.Buffer, w0, w1 int, pad dense.Pad) (*dense.Buffer, error) {
	return rankFilter("medfilt", src, w0, w1, pad, pickMedian)
}

// MinFilter replaces each sample with the minimum of its w0 x w1
// window. Window sides must be odd.
func MinFilter(src *dense.Buffer, w0, w1 int, pad dense.Pad) (*dense.Buffer, error) {
	return rankFilter("minfilt", src, w0, w1, pad, pickMin)
}

// MaxFilter replaces each sample with the maximum of its w0 x w1
// window. Window sides must be odd.
func MaxFilter(src *dense.Buffer, w0, w1 int, pad dense.Pad) (*dense.Buffer, error) {
	return rankFilter("maxfilt", src, w0, w1, pad, pickMax)
}

func rankFilter(op string, src *dense.Buffer, w0, w1 int, pad dense.Pad, pick func([]float32) float32) (*dense.Buffer, error) {
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if w0 <= 0 || w1 <= 0 || w0%2 == 0 || w1%2 == 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "window %dx%d must have odd positive sides", w0, w1)
	}
	if !pad.Valid() {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "unknown pad mode %v", pad)
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	r0, r1 := w0/2, w1/2

	for pl := range src.Shape().NumPlanes() {
		sp := src.Plane(pl).Data()
		dp := out.Plane(pl).Data()
		parallel.For(rows, func(lo, hi int) {
			window := make([]float32, 0, w0*w1)
			for r := lo; r < hi; r++ {
				for c := range cols {
					window = window[:0]
					for i := -r0; i <= r0; i++ {
						sr := r + i
						for j := -r1; j <= r1; j++ {
							sc := c + j
							if sr < 0 || sr >= rows || sc < 0 || sc >= cols {
								if pad == dense.PadZero {
									window = append(window, 0)
								} else {
									window = append(window, sp[clamp(sr, rows)*cols+clamp(sc, cols)])
								}
								continue
							}
							window = append(window, sp[sr*cols+sc])
						}
					}
					dp[r*cols+c] = pick(window)
				}
			}
		})
	}
	return out, nil
}

func pickMedian(window []float32) float32 {
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	return window[len(window)/2]
}

func pickMin(window []float32) float32 {
	m := window[0]
	for _, v := range window[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func pickMax(window []float32) float32 {
	m := window[0]
	for _, v := range window[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
