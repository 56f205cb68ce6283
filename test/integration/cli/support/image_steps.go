package support

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/rasterkit/dense"
	"github.com/MeKo-Tech/rasterkit/imgio"
	"github.com/cucumber/godog"
)

// saveFixture writes buf under the scratch directory, creating parent
// directories so fixtures can live in subdirectories.
func (testCtx *TestContext) saveFixture(filename string, buf *dense.Buffer) error {
	path := testCtx.resolvePath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return imgio.Save(path, buf)
}

// aGrayscaleTestImage writes an 8x8 checkerboard of 2x2 cells with
// values 0 and 200 into the scratch directory.
func (testCtx *TestContext) aGrayscaleTestImage(filename string) error {
	buf, err := dense.NewTyped(dense.NewShape(8, 8, 1), dense.U8)
	if err != nil {
		return err
	}
	defer buf.Release()

	data := buf.Data()
	for r := range 8 {
		for c := range 8 {
			if (r/2+c/2)%2 == 0 {
				data[r*8+c] = 200
			}
		}
	}
	return testCtx.saveFixture(filename, buf)
}

// aColorTestImage writes an 8x8 RGB image with flat, distinct channels.
func (testCtx *TestContext) aColorTestImage(filename string) error {
	buf, err := dense.NewTyped(dense.NewShape(8, 8, 3), dense.U8)
	if err != nil {
		return err
	}
	defer buf.Release()

	for ch, v := range []float32{40, 120, 200} {
		p := buf.Plane(ch).Data()
		for i := range p {
			p[i] = v
		}
	}
	return testCtx.saveFixture(filename, buf)
}

// aBimodalTestImage writes an 8x8 image whose left half is 10 and
// right half is 200, a clean two-class input for thresholding.
func (testCtx *TestContext) aBimodalTestImage(filename string) error {
	buf, err := dense.NewTyped(dense.NewShape(8, 8, 1), dense.U8)
	if err != nil {
		return err
	}
	defer buf.Release()

	data := buf.Data()
	for r := range 8 {
		for c := range 8 {
			v := float32(10)
			if c >= 4 {
				v = 200
			}
			data[r*8+c] = v
		}
	}
	return testCtx.saveFixture(filename, buf)
}

// aBlobTestImage writes a 10x10 black image with two separated 2x2
// white blocks, one near each corner.
func (testCtx *TestContext) aBlobTestImage(filename string) error {
	buf, err := dense.NewTyped(dense.NewShape(10, 10, 1), dense.U8)
	if err != nil {
		return err
	}
	defer buf.Release()

	data := buf.Data()
	for _, origin := range [][2]int{{1, 1}, {7, 7}} {
		for r := origin[0]; r < origin[0]+2; r++ {
			for c := origin[1]; c < origin[1]+2; c++ {
				data[r*10+c] = 255
			}
		}
	}
	return testCtx.saveFixture(filename, buf)
}

// theImageShouldBePixels verifies the decoded width and height.
func (testCtx *TestContext) theImageShouldBePixels(filename string, width, height int) error {
	buf, err := imgio.Load(testCtx.resolvePath(filename), false)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	defer buf.Release()

	if buf.Cols() != width || buf.Rows() != height {
		return fmt.Errorf("%s is %dx%d, want %dx%d", filename, buf.Cols(), buf.Rows(), width, height)
	}
	return nil
}

// theImageShouldBeGrayscale verifies the file encodes a single channel.
func (testCtx *TestContext) theImageShouldBeGrayscale(filename string) error {
	f, err := os.Open(testCtx.resolvePath(filename)) //nolint:gosec // G304: Test file opening with controlled path
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	if cfg.ColorModel != color.GrayModel {
		return fmt.Errorf("%s is not a grayscale file", filename)
	}
	return nil
}

// RegisterImageSteps registers image fixture and assertion steps.
func (testCtx *TestContext) RegisterImageSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a grayscale test image "([^"]*)"$`, testCtx.aGrayscaleTestImage)
	sc.Step(`^a color test image "([^"]*)"$`, testCtx.aColorTestImage)
	sc.Step(`^a bimodal test image "([^"]*)"$`, testCtx.aBimodalTestImage)
	sc.Step(`^a blob test image "([^"]*)"$`, testCtx.aBlobTestImage)

	sc.Step(`^the image "([^"]*)" should be (\d+)x(\d+) pixels$`, testCtx.theImageShouldBePixels)
	sc.Step(`^the image "([^"]*)" should be grayscale$`, testCtx.theImageShouldBeGrayscale)
}
