package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRamp(t *testing.T) {
	buf := Ramp(t, 3, 4)
	defer buf.Release()

	assert.InDelta(t, 0.0, buf.At(0, 0, 0), 1e-6)
	assert.InDelta(t, 5.0, buf.At(1, 1, 0), 1e-6)
	assert.InDelta(t, 11.0, buf.At(2, 3, 0), 1e-6)
}

func TestCheckerboard(t *testing.T) {
	buf := Checkerboard(t, 4, 4, 2, 0, 1)
	defer buf.Release()

	assert.InDelta(t, 0.0, buf.At(0, 0, 0), 1e-6)
	assert.InDelta(t, 0.0, buf.At(1, 1, 0), 1e-6)
	assert.InDelta(t, 1.0, buf.At(0, 2, 0), 1e-6)
	assert.InDelta(t, 1.0, buf.At(2, 0, 0), 1e-6)
	assert.InDelta(t, 0.0, buf.At(2, 2, 0), 1e-6)
}

func TestNoise_Deterministic(t *testing.T) {
	a := Noise(t, 8, 8, 42)
	defer a.Release()
	b := Noise(t, 8, 8, 42)
	defer b.Release()

	RequireClose(t, a, b, 0)
	for _, v := range a.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestTwoBlobs(t *testing.T) {
	buf := TwoBlobs(t, 10, 10)
	defer buf.Release()

	var fg int
	for _, v := range buf.Data() {
		if v != 0 {
			fg++
		}
	}
	assert.Equal(t, 8, fg)
	assert.InDelta(t, 1.0, buf.At(1, 1, 0), 1e-6)
	assert.InDelta(t, 1.0, buf.At(8, 8, 0), 1e-6)
	assert.Zero(t, buf.At(5, 5, 0))
}
