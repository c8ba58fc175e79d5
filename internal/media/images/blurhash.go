package images

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
)

const (
	blurComponentsX = 4
	blurComponentsY = 3

	// Hashing cost grows with pixel count, so hash a small thumbnail.
	blurThumbnailSize = 64
)

// ComputeBlurHash derives a blur hash placeholder string for an image.
func ComputeBlurHash(img image.Image) (string, error) {
	hash, err := blurhash.Encode(blurComponentsX, blurComponentsY, thumbnail(img, blurThumbnailSize))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// thumbnail downscales img so its longer side is at most maxSize, using
// nearest-neighbor sampling. Blur hashing discards detail anyway.
func thumbnail(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(w)
	if h > w {
		scale = float64(maxSize) / float64(h)
	}
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	for y := 0; y < th; y++ {
		srcY := bounds.Min.Y + y*h/th
		for x := 0; x < tw; x++ {
			srcX := bounds.Min.X + x*w/tw
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}
	return dst
}
