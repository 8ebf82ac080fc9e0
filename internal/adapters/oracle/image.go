package oracle

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	// Decoders for the upload formats the browser UI accepts.
	_ "image/gif"
	_ "image/png"
)

// defaultJPEGQuality matches the encoding quality the original capture
// pipeline used.
const defaultJPEGQuality = 95

// normalizeJPEG decodes any supported raster image and re-encodes it
// as baseline JPEG. Images with transparency are flattened onto a
// white background first, since JPEG has no alpha channel.
func normalizeJPEG(data []byte, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
