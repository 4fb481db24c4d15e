package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// EncodePNG returns the PNG bytes of img, as embedded in the binary
// asset container.
func EncodePNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveWebP writes img to path as lossless WebP. Used to dump the
// repaired texture for inspection.
func SaveWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imaging: create %s: %w", path, err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("imaging: webp encode %s: %w", path, err)
	}
	return nil
}
