package testutil

import (
	"math/rand"
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
)

// Ramp returns a single-plane buffer whose sample at (r, c) is
// r*cols + c. The strictly increasing values make interpolation and
// reduction results easy to predict.
func Ramp(t *testing.T, rows, cols int) *dense.Buffer {
	t.Helper()

	buf, err := dense.New(dense.NewShape(rows, cols))
	require.NoError(t, err)
	data := buf.Data()
	for r := range rows {
		for c := range cols {
			data[r*cols+c] = float32(r*cols + c)
		}
	}
	return buf
}

// Constant returns a single-plane buffer filled with v.
func Constant(t *testing.T, rows, cols int, v float32) *dense.Buffer {
	t.Helper()

	buf, err := dense.Full(dense.NewShape(rows, cols), v)
	require.NoError(t, err)
	return buf
}

// Checkerboard returns a single-plane buffer alternating between lo
// and hi in cell x cell squares.
func Checkerboard(t *testing.T, rows, cols, cell int, lo, hi float32) *dense.Buffer {
	t.Helper()

	buf, err := dense.New(dense.NewShape(rows, cols))
	require.NoError(t, err)
	data := buf.Data()
	for r := range rows {
		for c := range cols {
			if ((r/cell)+(c/cell))%2 == 0 {
				data[r*cols+c] = lo
			} else {
				data[r*cols+c] = hi
			}
		}
	}
	return buf
}

// Noise returns a single-plane buffer of deterministic pseudo-random
// samples in [0, 1).
func Noise(t *testing.T, rows, cols int, seed int64) *dense.Buffer {
	t.Helper()

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
	buf, err := dense.New(dense.NewShape(rows, cols))
	require.NoError(t, err)
	data := buf.Data()
	for i := range data {
		data[i] = rng.Float32()
	}
	return buf
}

// RGBRamp returns a three-channel buffer with distinct ramps per
// channel so channel mixups show up in comparisons.
func RGBRamp(t *testing.T, rows, cols int) *dense.Buffer {
	t.Helper()

	buf, err := dense.New(dense.NewShape(rows, cols, 3))
	require.NoError(t, err)
	n := rows * cols
	data := buf.Data()
	for i := range n {
		data[i] = float32(i) / float32(n)
		data[n+i] = 1 - float32(i)/float32(n)
		data[2*n+i] = 0.5
	}
	return buf
}

// TwoBlobs returns a binary single-plane buffer containing two
// separated rectangular foreground blobs. With 4- or 8-connectivity
// it labels as exactly two components.
func TwoBlobs(t *testing.T, rows, cols int) *dense.Buffer {
	t.Helper()

	require.GreaterOrEqual(t, rows, 8)
	require.GreaterOrEqual(t, cols, 8)

	buf, err := dense.New(dense.NewShape(rows, cols))
	require.NoError(t, err)
	data := buf.Data()
	for r := 1; r < 3; r++ {
		for c := 1; c < 3; c++ {
			data[r*cols+c] = 1
		}
	}
	for r := rows - 3; r < rows-1; r++ {
		for c := cols - 3; c < cols-1; c++ {
			data[r*cols+c] = 1
		}
	}
	return buf
}

// RequireClose asserts that two buffers have identical shape and that
// every pair of samples differs by at most tol.
func RequireClose(t *testing.T, want, got *dense.Buffer, tol float32) {
	t.Helper()

	require.Equal(t, want.Shape(), got.Shape(), "shape mismatch")
	wd, gd := want.Data(), got.Data()
	for i := range wd {
		if math32.Abs(wd[i]-gd[i]) > tol {
			t.Fatalf("sample %d: want %v, got %v (tol %v)", i, wd[i], gd[i], tol)
		}
	}
}
