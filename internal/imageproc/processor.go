// Package imageproc wraps the raster codec: cover-fit resizing and
// web-optimized re-encoding of uploaded images.
package imageproc

import (
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
	// webp uploads are decoded through the sniffing in image.Decode
	_ "golang.org/x/image/webp"
)

// Dimensions - actual pixel size of the processed file as reported by the
// codec. Authoritative over whatever the client requested.
type Dimensions struct {
	Width  int
	Height int
}

type Processor struct{}

func NewProcessor() Processor {
	return Processor{}
}

// ProcessAndOptimize reads inputPath, optionally resizes to cover the
// targetWidth x targetHeight viewport (centered crop, no letterboxing),
// re-encodes with per-format quality settings and writes outputPath.
// The output format is taken from the outputPath extension.
func (Processor) ProcessAndOptimize(inputPath, outputPath string, targetWidth, targetHeight int) (Dimensions, error) {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return Dimensions{}, fmt.Errorf("decode source image: %w", err)
	}

	if targetWidth > 0 && targetHeight > 0 {
		img = imaging.Fill(img, targetWidth, targetHeight, imaging.Center, imaging.Lanczos)
	}

	if err := imaging.Save(img, outputPath,
		imaging.JPEGQuality(85),
		imaging.PNGCompressionLevel(png.BestCompression),
	); err != nil {
		return Dimensions{}, fmt.Errorf("encode result image: %w", err)
	}

	bounds := img.Bounds()
	return Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
