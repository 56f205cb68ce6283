package filter

import (
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func patternBuffer(rows, cols, seed int) *dense.Buffer {
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = float32((i*7+seed)%13) / 13.0
	}
	buf, _ := dense.FromSlice(data, dense.NewShape(rows, cols))
	return buf
}

// TestDilate_Extensive verifies dilation never lowers a sample.
func TestDilate_Extensive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("dilation is extensive", prop.ForAll(
		func(rows, cols, seed int) bool {
			src := patternBuffer(rows, cols, seed)
			out, err := Dilate(src, nil)
			if err != nil {
				return false
			}
			defer out.Release()

			for i, v := range src.Data() {
				if out.Data()[i] < v {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 30),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestErode_AntiExtensive verifies erosion never raises a sample.
func TestErode_AntiExtensive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("erosion is anti-extensive", prop.ForAll(
		func(rows, cols, seed int) bool {
			src := patternBuffer(rows, cols, seed)
			out, err := Erode(src, nil)
			if err != nil {
				return false
			}
			defer out.Release()

			for i, v := range src.Data() {
				if out.Data()[i] > v {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 30),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestRankFilters_StayWithinValueRange verifies windowed picks never
// leave the input value range.
func TestRankFilters_StayWithinValueRange(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rank filter output stays within [min, max] of input and pad", prop.ForAll(
		func(rows, cols, seed int, pad dense.Pad) bool {
			src := patternBuffer(rows, cols, seed)
			lo, hi := src.MinMax()
			if pad == dense.PadZero {
				lo = min(lo, 0)
				hi = max(hi, 0)
			}

			med, err := MedianFilter(src, 3, 3, pad)
			if err != nil {
				return false
			}
			defer med.Release()

			for _, v := range med.Data() {
				if v < lo || v > hi {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 25),
		gen.IntRange(1, 25),
		gen.IntRange(0, 100),
		gen.OneConstOf(dense.PadZero, dense.PadClampEdge),
	))

	properties.TestingRun(t)
}

// TestErode_BelowDilate verifies erosion never exceeds dilation.
func TestErode_BelowDilate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("erosion is pointwise below dilation", prop.ForAll(
		func(rows, cols, seed int) bool {
			src := patternBuffer(rows, cols, seed)
			dilated, err := Dilate(src, nil)
			if err != nil {
				return false
			}
			defer dilated.Release()
			eroded, err := Erode(src, nil)
			if err != nil {
				return false
			}
			defer eroded.Release()

			for i := range eroded.Data() {
				if eroded.Data()[i] > dilated.Data()[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 25),
		gen.IntRange(1, 25),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestSobel_ZeroOnConstant verifies constant images have no edges.
func TestSobel_ZeroOnConstant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("sobel magnitude of a constant image is zero", prop.ForAll(
		func(rows, cols int, v float32, fast bool) bool {
			src, err := dense.Full(dense.NewShape(rows, cols), v)
			if err != nil {
				return false
			}
			defer src.Release()

			out, err := Sobel(src, 3, fast)
			if err != nil {
				return false
			}
			defer out.Release()

			for _, got := range out.Data() {
				if got < -1e-3 || got > 1e-3 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 20),
		gen.Float32Range(-50, 50),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
