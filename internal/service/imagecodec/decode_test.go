package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNGWithAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 10})

	img, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("Expected 4x3 image, got %v", img.Bounds())
	}

	got := img.NRGBAAt(1, 1)
	want := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("Expected opaque pixel at offset %d, got alpha %d", i, img.Pix[i])
		}
	}
}

func TestDecode_GrayscaleExpandsToRGB(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 1, color.Gray{Y: 77})

	img, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := img.NRGBAAt(0, 1)
	if got.R != 77 || got.G != 77 || got.B != 77 || got.A != 255 {
		t.Errorf("Expected gray 77 expanded to RGB, got %v", got)
	}
}

func TestDecode_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8 image, got %v", img.Bounds())
	}
}

func TestDecode_Invalid(t *testing.T) {
	valid := encodePNG(t, image.NewGray(image.Rect(0, 0, 8, 8)))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("definitely not an image")},
		{"truncated png", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestToRGB_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.Set(6, 6, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img := ToRGB(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Errorf("Expected bounds anchored at origin, got %v", img.Bounds())
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Unexpected pixel %v", got)
	}
}

func TestToRGB_PalettedDoesNotAliasSource(t *testing.T) {
	palette := color.Palette{color.NRGBA{R: 200, G: 100, B: 50, A: 128}, color.Black}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	src.SetColorIndex(1, 0, 1)

	img := ToRGB(src)
	if got := img.NRGBAAt(0, 0); got.A != 0xff {
		t.Errorf("Expected opaque pixel, got %v", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{A: 0xff}) {
		t.Errorf("Expected opaque black, got %v", got)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	ToRGB(nrgba)
	if nrgba.Pix[3] != 4 {
		t.Errorf("Expected source alpha untouched, got %d", nrgba.Pix[3])
	}
}
