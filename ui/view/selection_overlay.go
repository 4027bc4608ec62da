package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/motion-guard-go/ui/images"
	"github.com/soocke/motion-guard-go/ui/model"
	"github.com/soocke/motion-guard-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

const bandWidth = 2

// SelectionOverlay shows a frozen screenshot fullscreen and lets the user drag
// a rectangle over it.
type SelectionOverlay struct {
	logger *slog.Logger
	win    *ToplevelWidget
	photo  *Img
	edges  [4]*FrameWidget // top, bottom, left, right
	sel    model.Selection
	done   func(r image.Rectangle, ok bool)
}

// NewSelectionOverlay creates an overlay manager.
func NewSelectionOverlay(logger *slog.Logger) *SelectionOverlay {
	return &SelectionOverlay{logger: logger}
}

// OpenSelection opens the overlay for screen. done receives the rectangle in
// screen coordinates once the mouse is released, or ok=false on Escape.
func (v *SelectionOverlay) OpenSelection(screen *image.RGBA, done func(r image.Rectangle, ok bool)) {
	if screen == nil {
		return
	}
	if v.win != nil {
		v.finish(image.Rectangle{}, false)
	}
	b := screen.Bounds()
	v.sel = model.Selection{Origin: b.Min}
	v.done = done

	win := App.Toplevel(Borderwidth(0), Cursor("crosshair"))
	v.win = win
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", b.Dx(), b.Dy(), b.Min.X, b.Min.Y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-fullscreen", 1)

	v.photo = NewPhoto(Data(images.EncodePNG(screen)))
	shot := win.Label(Image(v.photo), Borderwidth(0))
	Place(shot, X(0), Y(0))
	for i := range v.edges {
		v.edges[i] = win.Frame(Background(theme.ColorSelection))
	}

	Bind(shot, "<ButtonPress-1>", Command(func(e *Event) {
		v.sel.Press(eventPoint(e))
		v.drawBand()
	}))
	Bind(shot, "<B1-Motion>", Command(func(e *Event) {
		v.sel.Drag(eventPoint(e))
		v.drawBand()
	}))
	Bind(shot, "<ButtonRelease-1>", Command(func(e *Event) {
		r, ok := v.sel.Release(eventPoint(e))
		if !ok && v.logger != nil {
			v.logger.Debug("empty selection ignored")
		}
		v.finish(r, ok)
	}))
	Bind(win, "<Escape>", Command(func() { v.finish(image.Rectangle{}, false) }))
}

// drawBand places the four edge frames around the current band.
func (v *SelectionOverlay) drawBand() {
	r := v.sel.Band()
	if r.Empty() {
		for _, e := range v.edges {
			Place(e, X(0), Y(0), Width(0), Height(0))
		}
		return
	}
	w, h := r.Dx(), r.Dy()
	Place(v.edges[0], X(r.Min.X), Y(r.Min.Y), Width(w), Height(bandWidth))
	Place(v.edges[1], X(r.Min.X), Y(r.Max.Y-bandWidth), Width(w), Height(bandWidth))
	Place(v.edges[2], X(r.Min.X), Y(r.Min.Y), Width(bandWidth), Height(h))
	Place(v.edges[3], X(r.Max.X-bandWidth), Y(r.Min.Y), Width(bandWidth), Height(h))
}

func (v *SelectionOverlay) finish(r image.Rectangle, ok bool) {
	done := v.done
	v.done = nil
	v.sel.Reset()
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
	if done != nil {
		done(r, ok)
	}
}

// eventPoint returns the pointer position of a mouse event relative to the
// overlay window.
func eventPoint(e *Event) image.Point {
	if e == nil {
		return image.Point{}
	}
	return image.Pt(e.X, e.Y)
}
