package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// Register decoders for the upload formats we accept.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// jpegQuality balances file size against visible artifacts for food photos.
const jpegQuality = 85

// Process decodes an uploaded image, re-encodes it as JPEG, and derives its
// blur hash. Unsupported or corrupt payloads return an error; callers treat
// that as a client fault.
func Process(r io.Reader) (data []byte, blurHash string, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}

	blurHash, err = ComputeBlurHash(img)
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), blurHash, nil
}
