package model

import (
	"image"
)

// Selection tracks a rubber-band drag on the fullscreen overlay. Points are in
// overlay coordinates; Origin maps them to screen coordinates.
type Selection struct {
	Origin image.Point

	dragging bool
	start    image.Point
	current  image.Point
}

// Press begins a drag at p.
func (s *Selection) Press(p image.Point) {
	s.dragging = true
	s.start = p
	s.current = p
}

// Drag moves the free corner to p. It is a no-op without a prior Press.
func (s *Selection) Drag(p image.Point) {
	if !s.dragging {
		return
	}
	s.current = p
}

// Dragging reports whether a drag is in progress.
func (s *Selection) Dragging() bool { return s.dragging }

// Band returns the normalized rectangle being drawn, in overlay coordinates.
func (s *Selection) Band() image.Rectangle {
	if !s.dragging {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: s.start, Max: s.current}.Canon()
}

// Release ends the drag at p and returns the selected screen rectangle. ok is
// false for a drag without area or without a prior Press.
func (s *Selection) Release(p image.Point) (r image.Rectangle, ok bool) {
	if !s.dragging {
		return image.Rectangle{}, false
	}
	s.current = p
	band := s.Band()
	s.Reset()
	if band.Empty() {
		return image.Rectangle{}, false
	}
	return band.Add(s.Origin), true
}

// Reset abandons the current drag.
func (s *Selection) Reset() {
	s.dragging = false
	s.start = image.Point{}
	s.current = image.Point{}
}
