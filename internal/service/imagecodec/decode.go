// Package imagecodec decodes uploaded image bytes into an opaque RGB raster.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	// Dodatkowe formaty poza JPEG/PNG/GIF
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned for any image that cannot be decoded.
var ErrDecode = errors.New("cannot identify image file")

// Decode decodes data and returns an RGB image with every pixel fully opaque.
// Alpha is discarded, not composited, and grayscale/paletted sources are expanded.
func Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrDecode)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return ToRGB(img), nil
}

// ToRGB copies img into a new NRGBA raster with alpha forced to 255.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
