package model

import (
	"sync/atomic"
)

// RunningModel mirrors the detector lifecycle for the UI tick. The zero value
// is idle and usable. Detector listeners may fire on the detection goroutine,
// so the flag is atomic.
type RunningModel struct {
	running atomic.Bool
	dirty   atomic.Bool
}

// Running reports whether detection is currently active.
func (m *RunningModel) Running() bool {
	if m == nil {
		return false
	}
	return m.running.Load()
}

// SetRunning stores the flag and marks the model dirty on change.
func (m *RunningModel) SetRunning(b bool) {
	if m == nil {
		return
	}
	if m.running.Swap(b) != b {
		m.dirty.Store(true)
	}
}

// TakeChanged reports and clears the pending change marker.
func (m *RunningModel) TakeChanged() bool {
	if m == nil {
		return false
	}
	return m.dirty.Swap(false)
}
