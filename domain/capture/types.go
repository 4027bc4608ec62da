package capture

import (
	"errors"
	"image"
)

var (
	// ErrCaptureFailure wraps transient failures of a single capture.
	ErrCaptureFailure = errors.New("capture failed")

	// ErrUnsupported reports that no capture backend is usable (no display,
	// missing platform support). Retrying will not help.
	ErrUnsupported = errors.New("screen capture unsupported")

	// ErrEmptyRegion is returned for a zero-area capture rectangle.
	ErrEmptyRegion = errors.New("empty capture region")
)

// Grabber captures screen pixels. Implementations must be safe to call from
// a background goroutine.
type Grabber interface {
	// Screen captures the whole display. Bounds are screen coordinates.
	Screen() (*image.RGBA, error)
	// Region captures r (screen coordinates).
	Region(r image.Rectangle) (*image.RGBA, error)
}

// GrabberFunc adapts a region-only capture function. Screen returns
// ErrUnsupported.
type GrabberFunc func(r image.Rectangle) (*image.RGBA, error)

func (f GrabberFunc) Screen() (*image.RGBA, error)                  { return nil, ErrUnsupported }
func (f GrabberFunc) Region(r image.Rectangle) (*image.RGBA, error) { return f(r) }

// NewScreenGrabber returns the platform screen grabber.
func NewScreenGrabber() Grabber { return screenGrabber{} }

type screenGrabber struct{}

func (screenGrabber) Screen() (*image.RGBA, error)                  { return Grab() }
func (screenGrabber) Region(r image.Rectangle) (*image.RGBA, error) { return GrabSelection(r) }
