package transform

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/chewxy/math32"
)

// samplePlane reads one plane at the real-valued position (y, x),
// with y along rows and x along columns. Positions outside
// [0, rows) x [0, cols) produce 0; taps of a valid position clamp to
// the nearest edge sample.
func samplePlane(p []float32, rows, cols int, y, x float32, method dense.Interp) float32 {
	if y < 0 || x < 0 || y >= float32(rows) || x >= float32(cols) {
		return 0
	}
	switch method {
	case dense.InterpNearest:
		r := min(int(math32.Round(y)), rows-1)
		c := min(int(math32.Round(x)), cols-1)
		return p[r*cols+c]
	case dense.InterpLower:
		return p[int(math32.Floor(y))*cols+int(math32.Floor(x))]
	case dense.InterpBilinear:
		return sampleBilinear(p, rows, cols, y, x)
	case dense.InterpBicubic:
		return sampleBicubic(p, rows, cols, y, x)
	default:
		return 0
	}
}

func sampleBilinear(p []float32, rows, cols int, y, x float32) float32 {
	y0 := math32.Floor(y)
	x0 := math32.Floor(x)
	r0, c0 := int(y0), int(x0)
	r1 := min(r0+1, rows-1)
	c1 := min(c0+1, cols-1)
	fy := y - y0
	fx := x - x0

	top := lerp(p[r0*cols+c0], p[r0*cols+c1], fx)
	bot := lerp(p[r1*cols+c0], p[r1*cols+c1], fx)
	return lerp(top, bot, fy)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func sampleBicubic(p []float32, rows, cols int, y, x float32) float32 {
	y0 := math32.Floor(y)
	x0 := math32.Floor(x)
	r0, c0 := int(y0), int(x0)
	fy := y - y0
	fx := x - x0

	var rowVals [4]float32
	for i := range 4 {
		r := clampIndex(r0-1+i, rows)
		var taps [4]float32
		for j := range 4 {
			taps[j] = p[r*cols+clampIndex(c0-1+j, cols)]
		}
		rowVals[i] = catmullRom(taps[0], taps[1], taps[2], taps[3], fx)
	}
	return catmullRom(rowVals[0], rowVals[1], rowVals[2], rowVals[3], fy)
}

// catmullRom evaluates the Catmull-Rom cubic through p0..p3 at
// parameter t in [0, 1], where t=0 yields p1 and t=1 yields p2.
func catmullRom(p0, p1, p2, p3, t float32) float32 {
	a := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	b := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c := 0.5 * (p2 - p0)
	return ((a*t+b)*t+c)*t + p1
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
