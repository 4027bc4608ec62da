package model

import (
	"image"
)

// RegionModel holds the monitored rectangle and its preview thumbnail. The
// zero value means no region is selected and is usable.
// No synchronization needed: updates occur on the UI thread.
type RegionModel struct {
	region  image.Rectangle
	preview image.Image
}

func NewRegionModel() *RegionModel { return &RegionModel{} }

// SetRegion stores r (screen coordinates) with an optional preview. An empty
// rectangle clears both.
func (m *RegionModel) SetRegion(r image.Rectangle, preview image.Image) {
	if m == nil {
		return
	}
	r = r.Canon()
	if r.Empty() {
		m.region = image.Rectangle{}
		m.preview = nil
		return
	}
	m.region = r
	m.preview = preview
}

// Region returns the current rectangle (may be empty).
func (m *RegionModel) Region() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.region
}

// Selected reports whether a non-empty region is set.
func (m *RegionModel) Selected() bool { return !m.Region().Empty() }

// Preview returns the thumbnail captured at selection time, or nil.
func (m *RegionModel) Preview() image.Image {
	if m == nil {
		return nil
	}
	return m.preview
}
