// Package imgio moves images between files and dense buffers. Decoded
// samples follow the 8-bit convention: every channel lands in [0, 255]
// as float32, and buffers written back out are clamped and rounded to
// bytes.
package imgio

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/parallel"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file extensions Load accepts. WebP is
// decode-only; Save rejects it.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// IsSupported reports whether the path has a loadable image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Load reads and decodes an image file. With color set the result has
// three RGB planes, otherwise one luma plane.
func Load(path string, color bool) (*dense.Buffer, error) {
	const op = "load"
	if path == "" {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "empty path")
	}
	if !IsSupported(path) {
		return nil, dense.Errf(op, dense.ErrInvalidParameter, "unsupported format %q", filepath.Ext(path))
	}
	f, err := os.Open(path) //nolint:gosec // G304: reading a caller-provided image path is the point
	if err != nil {
		return nil, &dense.OpError{Op: op, Err: err}
	}
	defer func() { _ = f.Close() }()
	return Decode(f, color)
}

// Decode reads one image from r and converts it like Load.
func Decode(r io.Reader, color bool) (*dense.Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &dense.OpError{Op: "decode", Err: err}
	}
	return FromImage(img, color)
}

// Save encodes buf into the format named by the path extension.
func Save(path string, buf *dense.Buffer) error {
	const op = "save"
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return &dense.OpError{Op: op, Err: err}
	}
	return nil
}

// Encode writes buf to w in the named format ("png", "jpg", ...).
func Encode(w io.Writer, buf *dense.Buffer, format string) error {
	const op = "encode"
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return dense.Errf(op, dense.ErrInvalidParameter, "unsupported format %q", format)
	}
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return &dense.OpError{Op: op, Err: err}
	}
	return nil
}

// FromImage converts a decoded image into a U8-typed buffer. Color
// images keep their three channels; otherwise pixels collapse to BT.601
// luma. Alpha is dropped.
func FromImage(img image.Image, color bool) (*dense.Buffer, error) {
	const op = "decode"
	if img == nil {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "nil image")
	}
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	if rows == 0 || cols == 0 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "empty %dx%d image", cols, rows)
	}

	channels := 1
	if color {
		channels = 3
	}
	out, err := dense.NewTyped(dense.NewShape(rows, cols, channels), dense.U8)
	if err != nil {
		return nil, err
	}

	// Clone normalizes every source format to tightly packed NRGBA.
	n := imaging.Clone(img)
	pix, stride := n.Pix, n.Stride
	if color {
		rp := out.Plane(0).Data()
		gp := out.Plane(1).Data()
		bp := out.Plane(2).Data()
		parallel.For(rows, func(lo, hi int) {
			for r := lo; r < hi; r++ {
				row := pix[r*stride:]
				for c := range cols {
					rp[r*cols+c] = float32(row[c*4])
					gp[r*cols+c] = float32(row[c*4+1])
					bp[r*cols+c] = float32(row[c*4+2])
				}
			}
		})
		return out, nil
	}
	dp := out.Data()
	parallel.For(rows, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			row := pix[r*stride:]
			for c := range cols {
				dp[r*cols+c] = 0.299*float32(row[c*4]) + 0.587*float32(row[c*4+1]) + 0.114*float32(row[c*4+2])
			}
		}
	})
	return out, nil
}

// ToImage converts a single 1- or 3-channel buffer back into an 8-bit
// image, clamping samples into [0, 255].
func ToImage(buf *dense.Buffer) (image.Image, error) {
	const op = "encode"
	if err := dense.CheckSource(op, buf); err != nil {
		return nil, err
	}
	if buf.Batch() != 1 {
		return nil, dense.Errf(op, dense.ErrInvalidShape, "can only encode one image, got batch %d", buf.Batch())
	}
	rows, cols := buf.Rows(), buf.Cols()
	switch buf.Channels() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, cols, rows))
		sp := buf.Data()
		for r := range rows {
			for c := range cols {
				img.Pix[r*img.Stride+c] = clampByte(sp[r*cols+c])
			}
		}
		return img, nil
	case 3:
		img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
		rp := buf.Plane(0).Data()
		gp := buf.Plane(1).Data()
		bp := buf.Plane(2).Data()
		for r := range rows {
			for c := range cols {
				o := r*img.Stride + c*4
				img.Pix[o] = clampByte(rp[r*cols+c])
				img.Pix[o+1] = clampByte(gp[r*cols+c])
				img.Pix[o+2] = clampByte(bp[r*cols+c])
				img.Pix[o+3] = 255
			}
		}
		return img, nil
	default:
		return nil, dense.Errf(op, dense.ErrInvalidShape, "can only encode 1- or 3-channel buffers, got %d", buf.Channels())
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
