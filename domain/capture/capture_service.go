package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// Service captures single-channel frames of a screen region and keeps
// instrumentation counters. Use NewService to construct an instance.
type Service interface {
	// Gray captures r and converts it to luminance, reusing dst when possible.
	Gray(r image.Rectangle, dst *image.Gray) (*image.Gray, error)
	// Screen captures the full display for region selection.
	Screen() (*image.RGBA, error)
	Stats() CaptureStats
}

type captureService struct {
	grabber      Grabber
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	lastCapture  atomic.Int64
	lastLog      atomic.Int64
}

// NewService wraps grabber with luminance conversion and statistics.
// A nil grabber selects the platform screen grabber.
func NewService(logger *slog.Logger, grabber Grabber) Service {
	if grabber == nil {
		grabber = NewScreenGrabber()
	}
	return &captureService{grabber: grabber, logger: logger}
}

func (s *captureService) Screen() (*image.RGBA, error) { return s.grabber.Screen() }

func (s *captureService) Gray(r image.Rectangle, dst *image.Gray) (*image.Gray, error) {
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	start := time.Now()
	img, err := s.grabber.Region(r)
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	gray := Luminance(dst, img)
	now := time.Now()
	s.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	s.lastCapture.Store(now.UnixNano())
	s.maybeLogStats(now)
	return gray, nil
}

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if ns := s.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Captures:         captures,
		Failures:         s.failures.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
	}
}

func (s *captureService) maybeLogStats(now time.Time) {
	if s.logger == nil {
		return
	}
	prev := s.lastLog.Load()
	if prev != 0 && now.Sub(time.Unix(0, prev)) < captureStatsLogInterval {
		return
	}
	if !s.lastLog.CompareAndSwap(prev, now.UnixNano()) {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}
