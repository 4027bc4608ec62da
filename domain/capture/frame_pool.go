package capture

import (
	"image"
	"sync"
)

// Reusable luminance buffers. The detector keeps two frames alive (previous
// and current) and releases the older one every iteration, so a pool keeps
// the steady state allocation-free for a fixed region.
var grayPool sync.Pool // stores *image.Gray

// acquireGray returns a reusable Gray image sized to rect. The returned Pix
// length exactly matches the rect area and Stride is the width.
func acquireGray(rect image.Rectangle) *image.Gray {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.Gray{Rect: rect}
	}
	needed := w * h
	var img *image.Gray
	if v := grayPool.Get(); v != nil {
		img = v.(*image.Gray)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.Gray{Pix: make([]byte, needed), Stride: w, Rect: rect}
	}
	img.Stride = w
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// RecycleGray returns the frame to the pool for potential reuse. The frame
// must no longer be accessed by the caller after invoking RecycleGray.
func RecycleGray(img *image.Gray) {
	if img == nil || img.Pix == nil {
		return
	}
	grayPool.Put(img)
}
