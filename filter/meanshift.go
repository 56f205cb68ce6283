package filter

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/chewxy/math32"
)

// meanShiftEps stops the iteration once the mean value settles.
const meanShiftEps = 0.01

// MeanShift filters src by iteratively moving each pixel's window
// toward the local mode: samples within the spatial radius whose
// value distance stays under cSigma pull the window mean and center,
// repeated up to iterations times. sSigma sets the window radius in
// pixels. With color true the channels of an image shift jointly.
func MeanShift(src *dense.Buffer, sSigma, cSigma float32, iterations int, color bool) (*dense.Buffer, error) {
	const op = "meanshift"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if err := checkSigma(op, sSigma, cSigma); err != nil {
		return nil, err
	}
	if iterations <= 0 {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "iterations must be positive, got %d", iterations)
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	radius := max(1, int(math32.Round(sSigma)))
	cLimit := cSigma * cSigma

	if color && src.Channels() > 1 {
		for b := range src.Batch() {
			meanShiftJoint(src, out, b, radius, cLimit, iterations)
		}
		return out, nil
	}
	for pl := range src.Shape().NumPlanes() {
		meanShiftPlane(src.Plane(pl).Data(), out.Plane(pl).Data(), src.Rows(), src.Cols(), radius, cLimit, iterations)
	}
	return out, nil
}

func meanShiftPlane(sp, dp []float32, rows, cols, radius int, cLimit float32, iterations int) {
	parallel.For(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			for c := range cols {
				cy, cx := r, c
				mean := sp[r*cols+c]
				for range iterations {
					var sumV, sumY, sumX float32
					var count int
					for i := -radius; i <= radius; i++ {
						sr := cy + i
						if sr < 0 || sr >= rows {
							continue
						}
						for j := -radius; j <= radius; j++ {
							sc := cx + j
							if sc < 0 || sc >= cols {
								continue
							}
							v := sp[sr*cols+sc]
							d := v - mean
							if d*d <= cLimit {
								sumV += v
								sumY += float32(sr)
								sumX += float32(sc)
								count++
							}
						}
					}
					if count == 0 {
						break
					}
					n := float32(count)
					newY := int(math32.Round(sumY / n))
					newX := int(math32.Round(sumX / n))
					newMean := sumV / n
					settled := newY == cy && newX == cx && math32.Abs(newMean-mean) < meanShiftEps
					cy, cx, mean = newY, newX, newMean
					if settled {
						break
					}
				}
				dp[r*cols+c] = mean
			}
		}
	})
}

func meanShiftJoint(src, out *dense.Buffer, b, radius int, cLimit float32, iterations int) {
	rows, cols, channels := src.Rows(), src.Cols(), src.Channels()
	plane := rows * cols
	sp := src.Data()[b*channels*plane : (b+1)*channels*plane]
	dp := out.Data()[b*channels*plane : (b+1)*channels*plane]

	parallel.For(rows, func(lo, hi int) {
		mean := make([]float32, channels)
		sums := make([]float32, channels)
		for r := lo; r < hi; r++ {
			for c := range cols {
				cy, cx := r, c
				for ch := range channels {
					mean[ch] = sp[ch*plane+r*cols+c]
				}
				for range iterations {
					for ch := range sums {
						sums[ch] = 0
					}
					var sumY, sumX float32
					var count int
					for i := -radius; i <= radius; i++ {
						sr := cy + i
						if sr < 0 || sr >= rows {
							continue
						}
						for j := -radius; j <= radius; j++ {
							sc := cx + j
							if sc < 0 || sc >= cols {
								continue
							}
							var dist2 float32
							for ch := range channels {
								d := sp[ch*plane+sr*cols+sc] - mean[ch]
								dist2 += d * d
							}
							if dist2 <= cLimit {
								for ch := range channels {
									sums[ch] += sp[ch*plane+sr*cols+sc]
								}
								sumY += float32(sr)
								sumX += float32(sc)
								count++
							}
						}
					}
					if count == 0 {
						break
					}
					n := float32(count)
					newY := int(math32.Round(sumY / n))
					newX := int(math32.Round(sumX / n))
					var shift float32
					for ch := range channels {
						d := sums[ch]/n - mean[ch]
						if d < 0 {
							d = -d
						}
						shift = max(shift, d)
						mean[ch] = sums[ch] / n
					}
					settled := newY == cy && newX == cx && shift < meanShiftEps
					cy, cx = newY, newX
					if settled {
						break
					}
				}
				for ch := range channels {
					dp[ch*plane+r*cols+c] = mean[ch]
				}
			}
		}
	})
}
