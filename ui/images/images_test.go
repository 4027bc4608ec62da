package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestCropRegion_CopiesWithScreenOffset(t *testing.T) {
	// Frame covering a desktop that starts left of the primary monitor.
	frame := image.NewRGBA(image.Rect(-100, 0, 100, 50))
	frame.SetRGBA(-10, 5, color.RGBA{R: 255, A: 255})
	out, rect, err := CropRegion(frame, image.Rect(-20, 0, 0, 10))
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if rect != image.Rect(-20, 0, 0, 10) {
		t.Fatalf("unexpected rect %v", rect)
	}
	if out.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("copy must be zero-origin, got %v", out.Bounds())
	}
	if got := out.RGBAAt(10, 5); got.R != 255 {
		t.Fatalf("pixel not copied: %v", got)
	}
	frame.SetRGBA(-10, 5, color.RGBA{})
	if out.RGBAAt(10, 5).R != 255 {
		t.Fatalf("crop must not alias the frame")
	}
}

func TestCropRegion_ClampsToFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))
	_, rect, err := CropRegion(frame, image.Rect(15, 15, 40, 40))
	if err != nil {
		t.Fatal(err)
	}
	if rect != image.Rect(15, 15, 20, 20) {
		t.Fatalf("expected clamp, got %v", rect)
	}
}

func TestCropRegion_Outside(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if _, _, err := CropRegion(frame, image.Rect(20, 20, 30, 30)); !errors.Is(err, ErrOutsideFrame) {
		t.Fatalf("expected ErrOutsideFrame, got %v", err)
	}
	if _, _, err := CropRegion(nil, image.Rect(0, 0, 1, 1)); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 50, 400, 225, 100, 50},
		{800, 400, 400, 225, 400, 200},
		{400, 800, 400, 225, 113, 225},
		{0, 10, 10, 10, 0, 0},
	}
	for _, c := range cases {
		w, h := FitSize(image.Rect(0, 0, c.w, c.h), c.maxW, c.maxH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("FitSize(%dx%d in %dx%d) = %dx%d want %dx%d", c.w, c.h, c.maxW, c.maxH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestScaleToFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	scaled := ScaleToFit(src, 400, 225)
	if scaled.Bounds() != image.Rect(0, 0, 400, 200) {
		t.Fatalf("unexpected bounds %v", scaled.Bounds())
	}
	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if ScaleToFit(small, 400, 225) != image.Image(small) {
		t.Fatalf("fitting image should be returned as is")
	}
}

func TestEncodePNG_Decodes(t *testing.T) {
	b := EncodePNG(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}
