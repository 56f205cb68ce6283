package cmd

import (
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/rasterkit/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSobelCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeCheckerboard(t, dir, "board.png")
	outDir := filepath.Join(dir, "edges")

	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{
		"sobel", in, "--out-dir", outDir,
	})
	require.NoError(t, err)

	out, err := imgio.Load(filepath.Join(outDir, "board_out.png"), false)
	require.NoError(t, err)
	defer out.Release()

	// Cell borders of the checkerboard must show up as edges.
	_, maxV := out.MinMax()
	assert.Greater(t, maxV, float32(0))
}

func TestSobelCommandComponents(t *testing.T) {
	dir := t.TempDir()
	in := writeCheckerboard(t, dir, "board.png")
	outDir := filepath.Join(dir, "parts")

	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{
		"sobel", in, "--components", "--out-dir", outDir,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "board_out_dx.png"))
	assert.FileExists(t, filepath.Join(outDir, "board_out_dy.png"))
}

func TestSobelCommandBadWindow(t *testing.T) {
	dir := t.TempDir()
	in := writeCheckerboard(t, dir, "board.png")

	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{
		"sobel", in, "--window", "4",
	})
	require.Error(t, err)
}
