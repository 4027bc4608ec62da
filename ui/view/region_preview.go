package view

import (
	"image"

	"github.com/soocke/motion-guard-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Max preview dimensions inside the 570px wide main view.
	maxPreviewW = 360
	maxPreviewH = 200
)

// RegionPreview shows a thumbnail of the selected region.
type RegionPreview interface {
	SetPreview(img image.Image)
}

type regionPreview struct {
	label *TLabelWidget
	photo *Img // current Tk photo, deleted before replacement
}

// NewRegionPreview creates the preview label inside parent at row.
func NewRegionPreview(parent *TFrameWidget, row int) RegionPreview {
	photo := NewPhoto(Data(placeholderPNG()))
	lbl := parent.TLabel(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(row), Column(0), Columnspan(3), Padx("0.4m"), Pady("0.4m"))
	return &regionPreview{label: lbl, photo: photo}
}

// SetPreview replaces the thumbnail; nil restores the placeholder.
func (v *regionPreview) SetPreview(img image.Image) {
	if v == nil || v.label == nil {
		return
	}
	data := placeholderPNG()
	if img != nil {
		data = images.EncodePNG(images.ScaleToFit(img, maxPreviewW, maxPreviewH))
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(data))
	v.label.Configure(Image(v.photo))
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 200, 112)))
}
