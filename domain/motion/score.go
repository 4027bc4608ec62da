package motion

import (
	"fmt"
	"image"
)

// PixelDelta is the absolute luminance difference above which a pixel
// counts as changed.
const PixelDelta = 25

// Threshold maps a sensitivity in [0,100] to the motion score a frame pair
// must exceed. Higher sensitivity gives a lower threshold.
func Threshold(sensitivity int) float64 {
	return float64(100-sensitivity) * 255 / 100
}

// Score compares two luminance frames of identical size. Changed pixels are
// binarised to 255 and the sum is divided by the pixel count, so the result
// lies on the same 0-255 scale as a pixel value.
func Score(prev, curr *image.Gray) (float64, error) {
	if prev == nil || curr == nil {
		return 0, fmt.Errorf("%w: nil frame", ErrFrameSizeMismatch)
	}
	pb, cb := prev.Bounds(), curr.Bounds()
	if pb.Dx() != cb.Dx() || pb.Dy() != cb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrFrameSizeMismatch, pb.Dx(), pb.Dy(), cb.Dx(), cb.Dy())
	}
	w, h := cb.Dx(), cb.Dy()
	if w == 0 || h == 0 {
		return 0, nil
	}
	var changed uint64
	for y := 0; y < h; y++ {
		prow := prev.Pix[(pb.Min.Y-prev.Rect.Min.Y+y)*prev.Stride+(pb.Min.X-prev.Rect.Min.X):]
		crow := curr.Pix[(cb.Min.Y-curr.Rect.Min.Y+y)*curr.Stride+(cb.Min.X-curr.Rect.Min.X):]
		for x := 0; x < w; x++ {
			d := int(crow[x]) - int(prow[x])
			if d < 0 {
				d = -d
			}
			if d > PixelDelta {
				changed++
			}
		}
	}
	return float64(changed*255) / float64(w*h), nil
}
