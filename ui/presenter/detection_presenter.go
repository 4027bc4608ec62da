package presenter

import (
	"errors"
	"image"
	"log/slog"

	"github.com/soocke/motion-guard-go/domain/motion"
	"github.com/soocke/motion-guard-go/ui/model"
)

// NoRegionMessage is shown when detection is started without a region.
const NoRegionMessage = "Please select an area first."

// Detector narrows the motion detector to what presenters need.
type Detector interface {
	Start(region image.Rectangle) error
	Stop()
	IndicatorActive() bool
	Snapshot() motion.Snapshot
}

// RegionProvider returns the selected capture region (may be empty).
type RegionProvider interface {
	Region() image.Rectangle
}

// DetectionView updates the widgets affected by the detection lifecycle.
type DetectionView interface {
	SetRunning(running bool)
	SetIndicator(active bool)
	ShowError(title, message string)
}

// DetectionSettingsModel receives slider changes.
type DetectionSettingsModel interface {
	SetSensitivity(v int)
	SetCooldownSeconds(v int)
}

// DetectionPresenter owns start/stop, slider input and the motion indicator.
type DetectionPresenter struct {
	detector Detector
	region   RegionProvider
	running  *model.RunningModel
	settings DetectionSettingsModel
	view     DetectionView
	logger   *slog.Logger

	shown     bool // indicator reflected at least once
	indicator bool // last reflected indicator value
}

func NewDetectionPresenter(detector Detector, region RegionProvider, running *model.RunningModel, settings DetectionSettingsModel, view DetectionView, logger *slog.Logger) *DetectionPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetectionPresenter{detector: detector, region: region, running: running, settings: settings, view: view, logger: logger}
}

// Start validates the region and starts detection. Idempotent while running.
func (p *DetectionPresenter) Start() {
	if p == nil || p.detector == nil || p.view == nil {
		return
	}
	if p.running.Running() {
		return
	}
	var r image.Rectangle
	if p.region != nil {
		r = p.region.Region()
	}
	err := p.detector.Start(r)
	switch {
	case err == nil:
	case errors.Is(err, motion.ErrNoRegionSelected):
		p.view.ShowError("Error", NoRegionMessage)
	case errors.Is(err, motion.ErrAlreadyRunning):
	default:
		p.logger.Error("start detection", "error", err)
	}
}

// Stop stops detection and clears the indicator without waiting for a tick.
func (p *DetectionPresenter) Stop() {
	if p == nil || p.detector == nil || p.view == nil {
		return
	}
	p.detector.Stop()
	p.reflectIndicator(false)
}

// Toggle flips between Start and Stop.
func (p *DetectionPresenter) Toggle() {
	if p == nil {
		return
	}
	if p.running.Running() {
		p.Stop()
		return
	}
	p.Start()
}

// SetSensitivity forwards the slider value; the loop picks it up next iteration.
func (p *DetectionPresenter) SetSensitivity(v int) {
	if p != nil && p.settings != nil {
		p.settings.SetSensitivity(v)
	}
}

// SetCooldown forwards the cooldown slider value in seconds.
func (p *DetectionPresenter) SetCooldown(seconds int) {
	if p != nil && p.settings != nil {
		p.settings.SetCooldownSeconds(seconds)
	}
}

// Tick mirrors lifecycle changes into button state and refreshes the indicator.
func (p *DetectionPresenter) Tick() {
	if p == nil || p.detector == nil || p.view == nil {
		return
	}
	if p.running.TakeChanged() {
		p.view.SetRunning(p.running.Running())
	}
	p.reflectIndicator(p.detector.IndicatorActive())
}

func (p *DetectionPresenter) reflectIndicator(active bool) {
	if p.shown && p.indicator == active {
		return
	}
	p.shown = true
	p.indicator = active
	p.view.SetIndicator(active)
}
