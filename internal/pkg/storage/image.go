package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor normalizes uploaded office photos.
type ImageProcessor struct {
	quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// NormalizePhoto decodes the upload, scales it down to fit within the
// bounding box and re-encodes it as JPEG. Images already within bounds keep
// their dimensions.
func (p *ImageProcessor) NormalizePhoto(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image failed: %w", err)
	}

	fitted := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode image failed: %w", err)
	}
	return buf, nil
}

// Thumbnail produces a small JPEG preview of the photo.
func (p *ImageProcessor) Thumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	return p.NormalizePhoto(content, maxWidth, maxHeight)
}
