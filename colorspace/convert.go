package colorspace

import (
	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/chewxy/math32"
)

// Default luma weights for RGBToGray, the BT.709 primaries.
const (
	DefaultRedWeight   = 0.2126
	DefaultGreenWeight = 0.7152
	DefaultBlueWeight  = 0.0722
)

// RGBToGray collapses a 3-channel image to one intensity plane as the
// weighted channel sum rw*R + gw*G + bw*B. Pass the Default*Weight
// constants for a BT.709 luma.
func RGBToGray(src *dense.Buffer, rw, gw, bw float32) (*dense.Buffer, error) {
	const op = "rgb2gray"
	if err := checkChannels(op, src, 3); err != nil {
		return nil, err
	}
	if err := checkFinite(op, rw, gw, bw); err != nil {
		return nil, err
	}
	sh := src.Shape()
	out, err := dense.NewTyped(dense.NewShape(sh.Rows, sh.Cols, 1, sh.Batch), src.Dtype())
	if err != nil {
		return nil, err
	}
	for b := 0; b < sh.Batch; b++ {
		rp := src.Plane(3 * b).Data()
		gp := src.Plane(3*b + 1).Data()
		bp := src.Plane(3*b + 2).Data()
		dp := out.Plane(b).Data()
		parallel.For(len(dp), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dp[i] = rw*rp[i] + gw*gp[i] + bw*bp[i]
			}
		})
	}
	return out, nil
}

// GrayToRGB spreads a single intensity plane into three channels scaled
// by rf, gf and bf. Unit factors replicate the plane.
func GrayToRGB(src *dense.Buffer, rf, gf, bf float32) (*dense.Buffer, error) {
	const op = "gray2rgb"
	if err := checkChannels(op, src, 1); err != nil {
		return nil, err
	}
	if err := checkFinite(op, rf, gf, bf); err != nil {
		return nil, err
	}
	sh := src.Shape()
	out, err := dense.NewTyped(dense.NewShape(sh.Rows, sh.Cols, 3, sh.Batch), src.Dtype())
	if err != nil {
		return nil, err
	}
	for b := 0; b < sh.Batch; b++ {
		sp := src.Plane(b).Data()
		rp := out.Plane(3 * b).Data()
		gp := out.Plane(3*b + 1).Data()
		bp := out.Plane(3*b + 2).Data()
		parallel.For(len(sp), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				rp[i] = rf * sp[i]
				gp[i] = gf * sp[i]
				bp[i] = bf * sp[i]
			}
		})
	}
	return out, nil
}

// RGBToHSV maps unit-range RGB planes to hue in degrees [0,360) plus
// unit saturation and value.
func RGBToHSV(src *dense.Buffer) (*dense.Buffer, error) {
	const op = "rgb2hsv"
	return convertPlanes(op, src, rgbToHSV)
}

// HSVToRGB is the inverse of RGBToHSV. Hue wraps modulo 360, so an
// exact 360 lands back on red.
func HSVToRGB(src *dense.Buffer) (*dense.Buffer, error) {
	const op = "hsv2rgb"
	return convertPlanes(op, src, hsvToRGB)
}

// RGBToYCbCr maps unit-range RGB planes to BT.601 full-swing luma and
// chroma, with both chroma planes centered on 0.5.
func RGBToYCbCr(src *dense.Buffer) (*dense.Buffer, error) {
	const op = "rgb2ycbcr"
	return convertPlanes(op, src, rgbToYCbCr)
}

// YCbCrToRGB is the inverse of RGBToYCbCr.
func YCbCrToRGB(src *dense.Buffer) (*dense.Buffer, error) {
	const op = "ycbcr2rgb"
	return convertPlanes(op, src, ycbcrToRGB)
}

// Convert reencodes src between color spaces. Identity conversions
// return an independent copy. Gray pairs with HSV or YCbCr by chaining
// through RGB; HSV and YCbCr have no path between each other and are
// rejected.
func Convert(src *dense.Buffer, from, to Space) (*dense.Buffer, error) {
	const op = "colorspace"
	if !from.Valid() || !to.Valid() {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "bad color space pair %v -> %v", from, to)
	}
	if from == to {
		if err := checkChannels(op, src, from.Channels()); err != nil {
			return nil, err
		}
		return src.Clone()
	}
	switch {
	case from == Gray && to == RGB:
		return GrayToRGB(src, 1, 1, 1)
	case from == RGB && to == Gray:
		return RGBToGray(src, DefaultRedWeight, DefaultGreenWeight, DefaultBlueWeight)
	case from == RGB && to == HSV:
		return RGBToHSV(src)
	case from == HSV && to == RGB:
		return HSVToRGB(src)
	case from == RGB && to == YCbCr:
		return RGBToYCbCr(src)
	case from == YCbCr && to == RGB:
		return YCbCrToRGB(src)
	case from == Gray || to == Gray:
		return viaRGB(src, from, to)
	default:
		return nil, dense.Errf(op, dense.ErrUnsupportedConversion, "no path from %v to %v", from, to)
	}
}

func viaRGB(src *dense.Buffer, from, to Space) (*dense.Buffer, error) {
	mid, err := Convert(src, from, RGB)
	if err != nil {
		return nil, err
	}
	defer mid.Release()
	return Convert(mid, RGB, to)
}

// convertPlanes runs a per-pixel triple mapping over every batch image
// of a 3-channel buffer.
func convertPlanes(op string, src *dense.Buffer, fn func(a, b, c float32) (x, y, z float32)) (*dense.Buffer, error) {
	if err := checkChannels(op, src, 3); err != nil {
		return nil, err
	}
	out, err := dense.NewTyped(src.Shape(), src.Dtype())
	if err != nil {
		return nil, err
	}
	for b := 0; b < src.Batch(); b++ {
		s0 := src.Plane(3 * b).Data()
		s1 := src.Plane(3*b + 1).Data()
		s2 := src.Plane(3*b + 2).Data()
		d0 := out.Plane(3 * b).Data()
		d1 := out.Plane(3*b + 1).Data()
		d2 := out.Plane(3*b + 2).Data()
		parallel.For(len(s0), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				d0[i], d1[i], d2[i] = fn(s0[i], s1[i], s2[i])
			}
		})
	}
	return out, nil
}

func checkChannels(op string, src *dense.Buffer, want int) error {
	if err := dense.CheckSource(op, src); err != nil {
		return err
	}
	if src.Channels() != want {
		return dense.Errf(op, dense.ErrInvalidShape, "need a %d-channel source, got %v", want, src.Shape())
	}
	return nil
}

func checkFinite(op string, a, b, c float32) error {
	for _, v := range [...]float32{a, b, c} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return dense.Errf(op, dense.ErrInvalidParameter, "channel factors must be finite, got %v/%v/%v", a, b, c)
		}
	}
	return nil
}

// rgbToHSV follows the usual max/delta formulation. Achromatic pixels
// report hue 0.
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	maxC := math32.Max(r, math32.Max(g, b))
	minC := math32.Min(r, math32.Min(g, b))
	v = maxC
	d := maxC - minC
	if d == 0 {
		return 0, 0, v
	}
	if maxC > 0 {
		s = d / maxC
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = 2 + (b-r)/d
	case b:
		h = 4 + (r-g)/d
	}
	h *= 60
	// Rounding can land a barely-negative green-blue delta on exactly
	// 360; keep the hue inside [0, 360).
	if h >= 360 {
		h -= 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float32) (r, g, b float32) {
	if s <= 0 {
		return v, v, v
	}
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 60
	sector := int(h)
	f := h - float32(sector)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch sector {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// BT.601 full-swing coefficients, the standard library's JPEG constants
// scaled to unit range.
func rgbToYCbCr(r, g, b float32) (y, cb, cr float32) {
	y = 0.299*r + 0.587*g + 0.114*b
	cb = 0.5 - 0.168736*r - 0.331264*g + 0.5*b
	cr = 0.5 + 0.5*r - 0.418688*g - 0.081312*b
	return y, cb, cr
}

func ycbcrToRGB(y, cb, cr float32) (r, g, b float32) {
	cb -= 0.5
	cr -= 0.5
	r = y + 1.402*cr
	g = y - 0.344136*cb - 0.714136*cr
	b = y + 1.772*cb
	return r, g, b
}
