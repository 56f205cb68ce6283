package transform

import (
	"math"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Translate shifts src by dr rows and dc columns, so output (r, c)
// reads source (r-dr, c-dc). Fractional shifts interpolate. Rows and
// cols of zero default to the source dimensions; negative sizes are
// rejected. Pixels shifted in from outside are zero.
func Translate(src *dense.Buffer, dr, dc float32, rows, cols int, method dense.Interp) (*dense.Buffer, error) {
	const op = "translate"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if rows == 0 {
		rows = src.Rows()
	}
	if cols == 0 {
		cols = src.Cols()
	}
	inv := f32.Aff3{
		1, 0, -dc,
		0, 1, -dr,
	}
	return warp(op, src, inv, rows, cols, method)
}

// Scale stretches src by s0 along rows and s1 along columns, so
// output (r, c) reads source (r/s0, c/s1). Rows and cols of zero
// derive from the scale factors, rounded up so the scaled content
// fits; negative sizes are rejected.
func Scale(src *dense.Buffer, s0, s1 float32, rows, cols int, method dense.Interp) (*dense.Buffer, error) {
	const op = "scale"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	if s0 <= 0 || s1 <= 0 || math32.IsInf(s0, 0) || math32.IsInf(s1, 0) {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "scale factors must be positive and finite, got %v, %v", s0, s1)
	}
	if rows == 0 {
		rows = int(math32.Ceil(s0 * float32(src.Rows())))
	}
	if cols == 0 {
		cols = int(math32.Ceil(s1 * float32(src.Cols())))
	}
	inv := f32.Aff3{
		1 / s1, 0, 0,
		0, 1 / s0, 0,
	}
	return warp(op, src, inv, rows, cols, method)
}

// Skew shears src by the angles theta0 and theta1 in radians, both in
// (-pi/2, pi/2). Theta0 shears along rows, displacing each column
// vertically in proportion to its index; theta1 shears along columns.
// With inverse true the angles describe the destination-to-source
// mapping directly; with inverse false the forward shear is inverted.
// Rows and cols of zero grow to the minimal canvas holding the
// sheared extent; negative sizes are rejected.
func Skew(src *dense.Buffer, theta0, theta1 float32, rows, cols int, method dense.Interp, inverse bool) (*dense.Buffer, error) {
	const op = "skew"
	if err := dense.CheckSource(op, src); err != nil {
		return nil, err
	}
	const halfPi = math.Pi / 2
	if !(theta0 > -halfPi && theta0 < halfPi) || !(theta1 > -halfPi && theta1 < halfPi) {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "skew angles must lie in (-pi/2, pi/2), got %v, %v", theta0, theta1)
	}

	t0 := float32(math.Tan(float64(theta0)))
	t1 := float32(math.Tan(float64(theta1)))
	if rows == 0 {
		rows = src.Rows() + int(math32.Ceil(math32.Abs(t0)*float32(src.Cols()-1)))
	}
	if cols == 0 {
		cols = src.Cols() + int(math32.Ceil(math32.Abs(t1)*float32(src.Rows()-1)))
	}
	mat := f32.Aff3{
		1, t1, 0,
		t0, 1, 0,
	}
	if !inverse {
		var err error
		mat, err = invertAff3(op, mat)
		if err != nil {
			return nil, err
		}
	}
	return warp(op, src, mat, rows, cols, method)
}
