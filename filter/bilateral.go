package filter

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/chewxy/math32"
)

// Bilateral smooths src while preserving edges, weighting each window
// sample by spatial distance (sSigma) and value distance (cSigma).
// With color true the channels of an image are filtered jointly using
// their combined value distance; otherwise every plane is filtered on
// its own. The window radius is 2*sSigma rounded up and the border
// clamps to the edge sample.
func Bilateral(src *dense.Buffer, sSigma, cSigma float32, color bool) (*dense.Buffer, error) {
	const op = "bilateral"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if err := checkSigma(op, sSigma, cSigma); err != nil {
		return nil, err
	}

	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}

	radius := max(1, int(math32.Ceil(2*sSigma)))
	spatial := gaussTable(radius, sSigma)
	invC := 1 / (2 * cSigma * cSigma)

	if color && src.Channels() > 1 {
		for b := range src.Batch() {
			bilateralJoint(src, out, b, radius, spatial, invC)
		}
		return out, nil
	}
	for pl := range src.Shape().NumPlanes() {
		bilateralPlane(src.Plane(pl).Data(), out.Plane(pl).Data(), src.Rows(), src.Cols(), radius, spatial, invC)
	}
	return out, nil
}

func bilateralPlane(sp, dp []float32, rows, cols, radius int, spatial []float32, invC float32) {
	side := 2*radius + 1
	parallel.For(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			for c := range cols {
				center := sp[r*cols+c]
				var wsum, vsum float32
				for i := -radius; i <= radius; i++ {
					sr := clamp(r+i, rows)
					for j := -radius; j <= radius; j++ {
						sc := clamp(c+j, cols)
						v := sp[sr*cols+sc]
						d := v - center
						w := spatial[(i+radius)*side+j+radius] * math32.Exp(-d*d*invC)
						wsum += w
						vsum += w * v
					}
				}
				dp[r*cols+c] = vsum / wsum
			}
		}
	})
}

func bilateralJoint(src, out *dense.Buffer, b, radius int, spatial []float32, invC float32) {
	rows, cols, channels := src.Rows(), src.Cols(), src.Channels()
	plane := rows * cols
	side := 2*radius + 1
	sp := src.Data()[b*channels*plane : (b+1)*channels*plane]
	dp := out.Data()[b*channels*plane : (b+1)*channels*plane]

	parallel.For(rows, func(lo, hi int) {
		sums := make([]float32, channels)
		for r := lo; r < hi; r++ {
			for c := range cols {
				for ch := range sums {
					sums[ch] = 0
				}
				var wsum float32
				for i := -radius; i <= radius; i++ {
					sr := clamp(r+i, rows)
					for j := -radius; j <= radius; j++ {
						sc := clamp(c+j, cols)
						var dist2 float32
						for ch := range channels {
							d := sp[ch*plane+sr*cols+sc] - sp[ch*plane+r*cols+c]
							dist2 += d * d
						}
						w := spatial[(i+radius)*side+j+radius] * math32.Exp(-dist2*invC)
						wsum += w
						for ch := range channels {
							sums[ch] += w * sp[ch*plane+sr*cols+sc]
						}
					}
				}
				for ch := range channels {
					dp[ch*plane+r*cols+c] = sums[ch] / wsum
				}
			}
		}
	})
}

// gaussTable precomputes the spatial Gaussian over a square window.
func gaussTable(radius int, sigma float32) []float32 {
	side := 2*radius + 1
	tab := make([]float32, side*side)
	inv := 1 / (2 * sigma * sigma)
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			tab[(i+radius)*side+j+radius] = math32.Exp(-float32(i*i+j*j) * inv)
		}
	}
	return tab
}

func checkSigma(op string, sigmas ...float32) error {
	for _, s := range sigmas {
		if !(s > 0) || math32.IsInf(s, 0) {
			return dense.Errf(op, dense.ErrInvalidParameter, "sigma must be positive and finite, got %v", s)
		}
	}
	return nil
}
