package cmd

import (
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/imgio"
	"github.com/MeKo-Tech/rasterkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBimodal saves an image whose left half is dark and right half
// is bright, and returns its path.
func writeBimodal(t *testing.T, dir, name string) string {
	t.Helper()

	buf, err := dense.New(dense.NewShape(8, 8))
	require.NoError(t, err)
	defer buf.Release()

	data := buf.Data()
	for r := range 8 {
		for c := range 8 {
			if c < 4 {
				data[r*8+c] = 10
			} else {
				data[r*8+c] = 200
			}
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, imgio.Save(path, buf))
	return path
}

func TestHistOtsuCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeBimodal(t, dir, "bimodal.png")

	output, err := executeCommandAndCaptureOutput(t, rootCmd, []string{"hist", "otsu", in})
	require.NoError(t, err)
	assert.Contains(t, output, "threshold")

	// The reported intensity has to separate the two modes.
	m := regexp.MustCompile(`threshold ([0-9.]+)`).FindStringSubmatch(output)
	require.Len(t, m, 2)
	v, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	assert.Greater(t, v, 10.0)
	assert.Less(t, v, 200.0)
}

func TestHistEqualizeCommand(t *testing.T) {
	dir := t.TempDir()

	ramp := testutil.Ramp(t, 8, 8)
	defer ramp.Release()
	in := filepath.Join(dir, "ramp.png")
	require.NoError(t, imgio.Save(in, ramp))

	outDir := filepath.Join(dir, "eq")
	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{
		"hist", "equalize", in,
		"--bins", "16",
		"--out-dir", outDir,
	})
	require.NoError(t, err)

	out, err := imgio.Load(filepath.Join(outDir, "ramp_out.png"), false)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 8, out.Rows())
	assert.Equal(t, 8, out.Cols())

	// Equalization keeps the input's intensity span.
	_, maxV := out.MinMax()
	assert.InDelta(t, 63, maxV, 1)
}

func TestHistOtsuCommandBadBins(t *testing.T) {
	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{
		"hist", "otsu", "whatever.png", "--bins", "-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bin count")
}
