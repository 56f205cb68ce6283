package colorspace

import (
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbPixel(t *testing.T, r, g, b float32) *dense.Buffer {
	t.Helper()

	buf, err := dense.FromSlice([]float32{r, g, b}, dense.NewShape(1, 1, 3))
	require.NoError(t, err)
	return buf
}

func TestRGBToGray_DefaultWeightsSumToOne(t *testing.T) {
	src := rgbPixel(t, 1, 1, 1)

	out, err := RGBToGray(src, DefaultRedWeight, DefaultGreenWeight, DefaultBlueWeight)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 1, out.Channels())
	assert.InDelta(t, 1.0, out.At(0, 0, 0), 1e-5)
}

func TestRGBToGray_CustomWeightsSelectChannel(t *testing.T) {
	src := testutil.RGBRamp(t, 4, 5)
	defer src.Release()

	out, err := RGBToGray(src, 1, 0, 0)
	require.NoError(t, err)
	defer out.Release()

	for r := range 4 {
		for c := range 5 {
			assert.InDelta(t, src.At(r, c, 0), out.At(r, c, 0), 1e-6)
		}
	}
}

func TestRGBToGray_Validation(t *testing.T) {
	gray := testutil.Ramp(t, 3, 3)
	defer gray.Release()

	_, err := RGBToGray(gray, 1, 0, 0)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)

	rgb := testutil.RGBRamp(t, 3, 3)
	defer rgb.Release()

	nan := float32(0)
	nan /= nan
	_, err = RGBToGray(rgb, nan, 1, 1)
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)
}

func TestGrayToRGB_UnitFactorsReplicate(t *testing.T) {
	src := testutil.Ramp(t, 3, 4)
	defer src.Release()

	out, err := GrayToRGB(src, 1, 1, 1)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 3, out.Channels())
	for r := range 3 {
		for c := range 4 {
			for ch := range 3 {
				assert.Equal(t, src.At(r, c, 0), out.At(r, c, ch))
			}
		}
	}
}

func TestGrayToRGB_FactorsScale(t *testing.T) {
	src := testutil.Constant(t, 2, 2, 10)
	defer src.Release()

	out, err := GrayToRGB(src, 0.5, 1, 2)
	require.NoError(t, err)
	defer out.Release()

	assert.InDelta(t, 5.0, out.At(1, 1, 0), 1e-5)
	assert.InDelta(t, 10.0, out.At(1, 1, 1), 1e-5)
	assert.InDelta(t, 20.0, out.At(1, 1, 2), 1e-5)
}

func TestRGBToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		h, s, v float32
	}{
		{"red", 1, 0, 0, 0, 1, 1},
		{"green", 0, 1, 0, 120, 1, 1},
		{"blue", 0, 0, 1, 240, 1, 1},
		{"yellow", 1, 1, 0, 60, 1, 1},
		{"cyan", 0, 1, 1, 180, 1, 1},
		{"magenta", 1, 0, 1, 300, 1, 1},
		{"orange", 1, 0.5, 0, 30, 1, 1},
		{"white", 1, 1, 1, 0, 0, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"mid gray", 0.5, 0.5, 0.5, 0, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rgbPixel(t, tt.r, tt.g, tt.b)

			out, err := RGBToHSV(src)
			require.NoError(t, err)
			defer out.Release()

			assert.InDelta(t, tt.h, out.At(0, 0, 0), 1e-4, "hue")
			assert.InDelta(t, tt.s, out.At(0, 0, 1), 1e-4, "saturation")
			assert.InDelta(t, tt.v, out.At(0, 0, 2), 1e-4, "value")
		})
	}
}

func TestHSVToRGB_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float32
		r, g, b float32
	}{
		{"red", 0, 1, 1, 1, 0, 0},
		{"green", 120, 1, 1, 0, 1, 0},
		{"blue", 240, 1, 1, 0, 0, 1},
		{"full turn is red", 360, 1, 1, 1, 0, 0},
		{"negative hue wraps", -120, 1, 1, 0, 0, 1},
		{"desaturated yellow", 60, 0.5, 0.8, 0.8, 0.8, 0.4},
		{"achromatic", 77, 0, 0.7, 0.7, 0.7, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rgbPixel(t, tt.h, tt.s, tt.v)

			out, err := HSVToRGB(src)
			require.NoError(t, err)
			defer out.Release()

			assert.InDelta(t, tt.r, out.At(0, 0, 0), 1e-4, "red")
			assert.InDelta(t, tt.g, out.At(0, 0, 1), 1e-4, "green")
			assert.InDelta(t, tt.b, out.At(0, 0, 2), 1e-4, "blue")
		})
	}
}

func TestRGBToYCbCr_KnownColors(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   float32
		y, cb, cr float32
	}{
		{"white", 1, 1, 1, 1, 0.5, 0.5},
		{"black", 0, 0, 0, 0, 0.5, 0.5},
		{"red", 1, 0, 0, 0.299, 0.331264, 1},
		{"blue", 0, 0, 1, 0.114, 1, 0.418688},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rgbPixel(t, tt.r, tt.g, tt.b)

			out, err := RGBToYCbCr(src)
			require.NoError(t, err)
			defer out.Release()

			assert.InDelta(t, tt.y, out.At(0, 0, 0), 1e-4, "luma")
			assert.InDelta(t, tt.cb, out.At(0, 0, 1), 1e-4, "cb")
			assert.InDelta(t, tt.cr, out.At(0, 0, 2), 1e-4, "cr")
		})
	}
}

func TestYCbCrToRGB_InvertsForward(t *testing.T) {
	src := testutil.RGBRamp(t, 5, 7)
	defer src.Release()

	mid, err := RGBToYCbCr(src)
	require.NoError(t, err)
	defer mid.Release()

	back, err := YCbCrToRGB(mid)
	require.NoError(t, err)
	defer back.Release()

	testutil.RequireClose(t, src, back, 1e-4)
}

func TestConvert_IdentityCopies(t *testing.T) {
	src := testutil.RGBRamp(t, 3, 3)
	defer src.Release()

	out, err := Convert(src, RGB, RGB)
	require.NoError(t, err)
	defer out.Release()

	testutil.RequireClose(t, src, out, 0)

	out.Set(0, 0, 0, 42)
	assert.NotEqual(t, float32(42), src.At(0, 0, 0))
}

func TestConvert_GrayToHSVChainsThroughRGB(t *testing.T) {
	src := testutil.Constant(t, 2, 2, 0.25)
	defer src.Release()

	out, err := Convert(src, Gray, HSV)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 3, out.Channels())
	assert.InDelta(t, 0.0, out.At(1, 1, 0), 1e-5)
	assert.InDelta(t, 0.0, out.At(1, 1, 1), 1e-5)
	assert.InDelta(t, 0.25, out.At(1, 1, 2), 1e-5)
}

func TestConvert_YCbCrToGray(t *testing.T) {
	rgb := rgbPixel(t, 0.5, 0.5, 0.5)

	ycc, err := Convert(rgb, RGB, YCbCr)
	require.NoError(t, err)
	defer ycc.Release()

	gray, err := Convert(ycc, YCbCr, Gray)
	require.NoError(t, err)
	defer gray.Release()

	assert.Equal(t, 1, gray.Channels())
	assert.InDelta(t, 0.5, gray.At(0, 0, 0), 1e-4)
}

func TestConvert_RejectsUnsupportedPairs(t *testing.T) {
	src := testutil.RGBRamp(t, 2, 2)
	defer src.Release()

	_, err := Convert(src, HSV, YCbCr)
	assert.ErrorIs(t, err, dense.ErrUnsupportedConversion)

	_, err = Convert(src, Space(9), RGB)
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)
}

func TestConvert_ChannelMismatch(t *testing.T) {
	gray := testutil.Ramp(t, 2, 2)
	defer gray.Release()

	_, err := Convert(gray, RGB, Gray)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)

	rgb := testutil.RGBRamp(t, 2, 2)
	defer rgb.Release()

	_, err = Convert(rgb, Gray, RGB)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)
}

func TestParseSpace(t *testing.T) {
	for _, name := range []string{"gray", "rgb", "hsv", "ycbcr"} {
		sp, err := ParseSpace(name)
		require.NoError(t, err)
		assert.Equal(t, name, sp.String())
	}

	_, err := ParseSpace("cmyk")
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)
}
