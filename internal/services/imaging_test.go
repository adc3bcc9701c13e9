package services

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageReencodesAsJPEG(t *testing.T) {
	result, err := ProcessImage(encodePNG(t, 100, 50))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if result.ContentType != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.ContentType)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("small image should keep its size, got %v", img.Bounds())
	}
}

func TestProcessImageDownscales(t *testing.T) {
	result, err := ProcessImage(encodePNG(t, 4000, 2000))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != maxImageDimension {
		t.Errorf("expected width %d, got %d", maxImageDimension, img.Bounds().Dx())
	}
	if img.Bounds().Dy() != maxImageDimension/2 {
		t.Errorf("expected height %d, got %d", maxImageDimension/2, img.Bounds().Dy())
	}
}

func TestProcessImageRejectsNonImages(t *testing.T) {
	if _, err := ProcessImage([]byte("definitely not an image")); err == nil {
		t.Error("expected an error for non-image data")
	}
}
