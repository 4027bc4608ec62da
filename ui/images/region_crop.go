package images

import (
	"errors"
	"image"
	"image/draw"
)

// ErrOutsideFrame is returned when the requested region does not overlap the frame.
var ErrOutsideFrame = errors.New("region outside frame")

// CropRegion copies r (in the frame's coordinate space) out of frame into a new
// zero-origin image. r is clamped to the frame bounds; the clamped rectangle
// is returned alongside the copy.
func CropRegion(frame *image.RGBA, r image.Rectangle) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	clamped := r.Canon().Intersect(frame.Bounds())
	if clamped.Empty() {
		return nil, image.Rectangle{}, ErrOutsideFrame
	}
	out := image.NewRGBA(image.Rect(0, 0, clamped.Dx(), clamped.Dy()))
	draw.Draw(out, out.Bounds(), frame, clamped.Min, draw.Src)
	return out, clamped, nil
}
