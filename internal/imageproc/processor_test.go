package imageproc

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 100, B: 200, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))

	return path
}

func TestProcessor_CoverFit(t *testing.T) {
	dir := t.TempDir()
	proc := NewProcessor()

	tests := []struct {
		name         string
		srcW, srcH   int
		targetW      int
		targetH      int
		wantW, wantH int
	}{
		{name: "downscale landscape", srcW: 400, srcH: 200, targetW: 100, targetH: 100, wantW: 100, wantH: 100},
		{name: "upscale small source", srcW: 50, srcH: 50, targetW: 200, targetH: 100, wantW: 200, wantH: 100},
		{name: "portrait crop", srcW: 300, srcH: 600, targetW: 150, targetH: 100, wantW: 150, wantH: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeTestImage(t, dir, tt.name+"-in.png", tt.srcW, tt.srcH)
			out := filepath.Join(dir, tt.name+"-out.png")

			dims, err := proc.ProcessAndOptimize(in, out, tt.targetW, tt.targetH)
			require.NoError(t, err)
			require.Equal(t, tt.wantW, dims.Width)
			require.Equal(t, tt.wantH, dims.Height)

			// reported dimensions must match the file actually written
			written, err := imaging.Open(out)
			require.NoError(t, err)
			require.Equal(t, dims.Width, written.Bounds().Dx())
			require.Equal(t, dims.Height, written.Bounds().Dy())
		})
	}
}

func TestProcessor_NoResizeKeepsDimensions(t *testing.T) {
	dir := t.TempDir()
	proc := NewProcessor()

	in := writeTestImage(t, dir, "orig.jpg", 120, 80)
	out := filepath.Join(dir, "opt.jpg")

	dims, err := proc.ProcessAndOptimize(in, out, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 120, dims.Width)
	require.Equal(t, 80, dims.Height)
}

func TestProcessor_Transcode(t *testing.T) {
	dir := t.TempDir()
	proc := NewProcessor()

	// png source, jpg output - format follows the output extension
	in := writeTestImage(t, dir, "src.png", 60, 60)
	out := filepath.Join(dir, "dst.jpg")

	_, err := proc.ProcessAndOptimize(in, out, 30, 30)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	_, format, err := image.Decode(f)
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
}

func TestProcessor_Errors(t *testing.T) {
	dir := t.TempDir()
	proc := NewProcessor()

	t.Run("missing input", func(t *testing.T) {
		_, err := proc.ProcessAndOptimize(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "out.jpg"), 10, 10)
		require.Error(t, err)
	})

	t.Run("broken input", func(t *testing.T) {
		in := filepath.Join(dir, "broken.jpg")
		require.NoError(t, os.WriteFile(in, []byte("not-an-image"), 0o644))

		_, err := proc.ProcessAndOptimize(in, filepath.Join(dir, "out.jpg"), 10, 10)
		require.Error(t, err)
	})

	t.Run("unwritable output", func(t *testing.T) {
		in := writeTestImage(t, dir, "ok.png", 20, 20)

		_, err := proc.ProcessAndOptimize(in, filepath.Join(dir, "no", "such", "dir", "out.png"), 10, 10)
		require.Error(t, err)
	})
}
