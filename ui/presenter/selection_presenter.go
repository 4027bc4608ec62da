package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/motion-guard-go/ui/images"
	"github.com/soocke/motion-guard-go/ui/model"
)

// ScreenSource captures the full display.
type ScreenSource interface {
	Screen() (*image.RGBA, error)
}

// SelectionOverlay shows screen fullscreen and reports the dragged rectangle
// (screen coordinates) through done. ok is false when the user cancelled.
type SelectionOverlay interface {
	OpenSelection(screen *image.RGBA, done func(r image.Rectangle, ok bool))
}

// PreviewView shows the selected region thumbnail. nil resets it.
type PreviewView interface {
	SetPreview(img image.Image)
}

// SelectionPresenter drives screenshot, rubber-band selection and preview.
type SelectionPresenter struct {
	screens ScreenSource
	overlay SelectionOverlay
	regions *model.RegionModel
	running RunningSource
	preview PreviewView
	logger  *slog.Logger
}

func NewSelectionPresenter(screens ScreenSource, overlay SelectionOverlay, regions *model.RegionModel, running RunningSource, preview PreviewView, logger *slog.Logger) *SelectionPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionPresenter{screens: screens, overlay: overlay, regions: regions, running: running, preview: preview, logger: logger}
}

// Begin captures the screen and opens the selection overlay. The region is
// fixed for a run, so selection is refused while detection is active.
func (p *SelectionPresenter) Begin() {
	if p == nil || p.screens == nil || p.overlay == nil {
		return
	}
	if p.running != nil && p.running.Running() {
		p.logger.Debug("selection ignored while monitoring")
		return
	}
	screen, err := p.screens.Screen()
	if err != nil {
		p.logger.Error("capture", "error", err, "purpose", "selection")
		return
	}
	p.overlay.OpenSelection(screen, func(r image.Rectangle, ok bool) {
		p.complete(screen, r, ok)
	})
}

func (p *SelectionPresenter) complete(screen *image.RGBA, r image.Rectangle, ok bool) {
	if !ok {
		p.logger.Debug("selection cancelled")
		return
	}
	crop, clamped, err := images.CropRegion(screen, r)
	if err != nil {
		p.logger.Warn("selection rejected", "error", err, "region", r.String())
		return
	}
	p.regions.SetRegion(clamped, crop)
	if p.preview != nil {
		p.preview.SetPreview(crop)
	}
	p.logger.Info("region selected", "region", clamped.String())
}
