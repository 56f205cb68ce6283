package imgio

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intColorBuffer(t *testing.T, rows, cols int) *dense.Buffer {
	t.Helper()

	buf, err := dense.New(dense.NewShape(rows, cols, 3))
	require.NoError(t, err)
	n := rows * cols
	data := buf.Data()
	for i := range n {
		data[i] = float32(i % 200)
		data[n+i] = float32((i + 31) % 200)
		data[2*n+i] = float32((i + 71) % 200)
	}
	return buf
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("photo.png"))
	assert.True(t, IsSupported("PHOTO.JPG"))
	assert.True(t, IsSupported("scan.tiff"))
	assert.True(t, IsSupported("anim.webp"))
	assert.False(t, IsSupported("notes.txt"))
	assert.False(t, IsSupported("extensionless"))
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []byte{0, 50, 100, 150, 200, 250})

	out, err := FromImage(img, false)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, dense.NewShape(2, 3), out.Shape())
	assert.Equal(t, dense.U8, out.Dtype())
	for i, want := range []float32{0, 50, 100, 150, 200, 250} {
		assert.InDelta(t, want, out.Data()[i], 0.01, "sample %d", i)
	}
}

func TestFromImage_ColorPlanes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []byte{10, 20, 30, 255, 40, 50, 60, 255})

	out, err := FromImage(img, true)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, dense.NewShape(1, 2, 3), out.Shape())
	assert.Equal(t, []float32{10, 40}, out.Plane(0).Data())
	assert.Equal(t, []float32{20, 50}, out.Plane(1).Data())
	assert.Equal(t, []float32{30, 60}, out.Plane(2).Data())
}

func TestFromImage_Empty(t *testing.T) {
	_, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 0)), false)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)

	_, err = FromImage(nil, false)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)
}

func TestToImage_GrayClampsAndRounds(t *testing.T) {
	buf, err := dense.FromSlice([]float32{-5, 0, 128.4, 300}, dense.NewShape(2, 2))
	require.NoError(t, err)

	img, err := ToImage(buf)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, []byte{0, 0, 128, 255}, gray.Pix)
}

func TestToImage_RGBInterleaves(t *testing.T) {
	buf, err := dense.FromSlice([]float32{1, 2, 3, 4, 5, 6}, dense.NewShape(1, 2, 3))
	require.NoError(t, err)

	img, err := ToImage(buf)
	require.NoError(t, err)

	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 3, 5, 255, 2, 4, 6, 255}, nrgba.Pix)
}

func TestToImage_Validation(t *testing.T) {
	two, err := dense.New(dense.NewShape(2, 2, 2))
	require.NoError(t, err)
	defer two.Release()

	_, err = ToImage(two)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)

	batch, err := dense.New(dense.NewShape(2, 2, 1, 2))
	require.NoError(t, err)
	defer batch.Release()

	_, err = ToImage(batch)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)

	_, err = ToImage(nil)
	assert.ErrorIs(t, err, dense.ErrInvalidShape)
}

func TestEncodeDecode_GrayPNGRoundTrip(t *testing.T) {
	src := testutil.Ramp(t, 5, 4)
	defer src.Release()

	var w bytes.Buffer
	require.NoError(t, Encode(&w, src, "png"))

	out, err := Decode(bytes.NewReader(w.Bytes()), false)
	require.NoError(t, err)
	defer out.Release()

	testutil.RequireClose(t, src, out, 0.01)
}

func TestEncodeDecode_ColorPNGRoundTrip(t *testing.T) {
	src := intColorBuffer(t, 4, 6)
	defer src.Release()

	var w bytes.Buffer
	require.NoError(t, Encode(&w, src, "png"))

	out, err := Decode(bytes.NewReader(w.Bytes()), true)
	require.NoError(t, err)
	defer out.Release()

	testutil.RequireClose(t, src, out, 0)
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	src := testutil.Ramp(t, 2, 2)
	defer src.Release()

	var w bytes.Buffer
	err := Encode(&w, src, "webp")
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)

	err = Encode(&w, src, "xyz")
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not pixels")), true)
	assert.Error(t, err)
}

func TestSaveLoad_File(t *testing.T) {
	src := testutil.Ramp(t, 6, 5)
	defer src.Release()

	path := filepath.Join(t.TempDir(), "ramp.png")
	require.NoError(t, Save(path, src))

	out, err := Load(path, false)
	require.NoError(t, err)
	defer out.Release()

	testutil.RequireClose(t, src, out, 0.01)
}

func TestSaveLoad_ColorBMP(t *testing.T) {
	src := intColorBuffer(t, 3, 3)
	defer src.Release()

	path := filepath.Join(t.TempDir(), "img.bmp")
	require.NoError(t, Save(path, src))

	out, err := Load(path, true)
	require.NoError(t, err)
	defer out.Release()

	testutil.RequireClose(t, src, out, 0)

	gray, err := Load(path, false)
	require.NoError(t, err)
	defer gray.Release()

	assert.Equal(t, 1, gray.Channels())
}

func TestSave_UnsupportedExtension(t *testing.T) {
	src := testutil.Ramp(t, 2, 2)
	defer src.Release()

	err := Save(filepath.Join(t.TempDir(), "out.webp"), src)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load("", true)
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)

	_, err = Load("readme.txt", true)
	assert.ErrorIs(t, err, dense.ErrInvalidParameter)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"), true)
	assert.Error(t, err)
}
