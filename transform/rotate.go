package transform

import (
	"math"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Rotate turns src by theta radians about the image center, positive
// angles carrying the column axis toward the row axis (clockwise with
// row 0 displayed on top). With crop true the output keeps the source
// dimensions and corners rotate out of frame; with crop false the
// output grows to the bounding box of the rotated extent. Destination
// pixels with no source under them are zero.
func Rotate(src *dense.Buffer, theta float32, crop bool, method dense.Interp) (*dense.Buffer, error) {
	const op = "rotate"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if math32.IsNaN(theta) || math32.IsInf(theta, 0) {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "angle must be finite")
	}

	sin, cos := math.Sincos(float64(theta))
	srcRows, srcCols := src.Rows(), src.Cols()

	rows, cols := srcRows, srcCols
	if !crop {
		rows = int(math.Abs(cos)*float64(srcRows) + math.Abs(sin)*float64(srcCols))
		cols = int(math.Abs(cos)*float64(srcCols) + math.Abs(sin)*float64(srcRows))
	}

	// Inverse rotation carries destination positions back to the
	// source frame, pivoting at the respective centers.
	dcx := float64(cols-1) / 2
	dcy := float64(rows-1) / 2
	scx := float64(srcCols-1) / 2
	scy := float64(srcRows-1) / 2
	inv := f32.Aff3{
		float32(cos), float32(sin), float32(scx - cos*dcx - sin*dcy),
		float32(-sin), float32(cos), float32(scy + sin*dcx - cos*dcy),
	}
	return warp(op, src, inv, rows, cols, method)
}
