package motion

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"
)

// State enumerates the detector lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// StateListener is called on each lifecycle transition. It may run on the
// detector goroutine.
type StateListener func(prev, next State)

// Settings are read on every iteration so slider changes apply on the next
// frame.
type Settings interface {
	Sensitivity() int
	Cooldown() time.Duration
}

// Event describes one qualifying motion detection.
type Event struct {
	ID        uuid.UUID
	At        time.Time
	Score     float64
	Threshold float64
	Region    image.Rectangle
}

// AlertSink receives motion events. Dispatch is called synchronously on the
// detector goroutine; it must not panic out and should return promptly.
type AlertSink interface {
	Dispatch(ctx context.Context, ev Event)
}

// FrameSource captures single-channel frames of a region.
type FrameSource interface {
	Gray(r image.Rectangle, dst *image.Gray) (*image.Gray, error)
}

// Snapshot is a read-only view of the motion state.
type Snapshot struct {
	State           State
	IndicatorActive bool
	LastMotion      time.Time // zero when no motion was seen in this run
	Events          uint64    // motion events since construction
	Region          image.Rectangle
}
