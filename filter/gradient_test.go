package filter

import (
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_Ramp(t *testing.T) {
	src := testutil.Ramp(t, 4, 5)
	defer src.Release()

	dy, dx, err := Gradient(src)
	require.NoError(t, err)
	defer dy.Release()
	defer dx.Release()

	// The ramp increases by cols per row and by one per column, and
	// one-sided borders see the same slope.
	for r := range 4 {
		for c := range 5 {
			assert.InDelta(t, 5.0, dy.At(r, c, 0), 1e-5, "dy (%d,%d)", r, c)
			assert.InDelta(t, 1.0, dx.At(r, c, 0), 1e-5, "dx (%d,%d)", r, c)
		}
	}
}

func TestGradient_SingleRow(t *testing.T) {
	src, err := dense.FromSlice([]float32{0, 1, 4, 9}, dense.NewShape(1, 4))
	require.NoError(t, err)

	dy, dx, err := Gradient(src)
	require.NoError(t, err)
	defer dy.Release()
	defer dx.Release()

	for _, v := range dy.Data() {
		assert.Zero(t, v)
	}
	for i, want := range []float32{1, 2, 4, 5} {
		assert.InDelta(t, want, dx.Data()[i], 1e-5, "dx %d", i)
	}
}

func TestGradient_SingleSample(t *testing.T) {
	src, err := dense.FromSlice([]float32{3}, dense.NewShape(1, 1))
	require.NoError(t, err)

	dy, dx, err := Gradient(src)
	require.NoError(t, err)
	defer dy.Release()
	defer dx.Release()

	assert.Zero(t, dy.Data()[0])
	assert.Zero(t, dx.Data()[0])
}

func TestGradient_MultiChannel(t *testing.T) {
	src := testutil.RGBRamp(t, 4, 4)
	defer src.Release()

	dy, dx, err := Gradient(src)
	require.NoError(t, err)
	defer dy.Release()
	defer dx.Release()

	require.Equal(t, src.Shape(), dy.Shape())
	require.Equal(t, src.Shape(), dx.Shape())
	// The constant plane has zero derivatives.
	for _, v := range dy.Plane(2).Data() {
		assert.Zero(t, v)
	}
	for _, v := range dx.Plane(2).Data() {
		assert.Zero(t, v)
	}
}
