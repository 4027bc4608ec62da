package alert

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
)

// Player starts asynchronous playback. done is closed when playback ends.
type Player interface {
	Play(path string, volume float64) (done <-chan struct{}, err error)
	SetVolume(volume float64)
}

// SoundAlerter plays at most one sound at a time. Triggers arriving while a
// sound is in flight are dropped, not queued.
type SoundAlerter struct {
	player   Player
	logger   *slog.Logger
	inFlight atomic.Bool
	started  atomic.Uint64
}

// NewSoundAlerter wraps player with single-flight semantics.
func NewSoundAlerter(player Player, logger *slog.Logger) *SoundAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundAlerter{player: player, logger: logger}
}

// Play starts path at volume unless a sound is already playing. It reports
// whether playback was started.
func (s *SoundAlerter) Play(path string, volume float64) bool {
	if s == nil || s.player == nil || path == "" {
		return false
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return false
	}
	done, err := s.player.Play(path, clampVolume(volume))
	if err != nil {
		s.inFlight.Store(false)
		s.logger.Error("sound playback", "error", fmt.Errorf("%w: %v", ErrSoundPlayback, err), "file", path)
		return false
	}
	s.started.Add(1)
	go s.watch(done)
	return true
}

// watch clears the in-flight flag once playback completes.
func (s *SoundAlerter) watch(done <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sound watcher panic", "error", r, "stack", string(debug.Stack()))
		}
		s.inFlight.Store(false)
	}()
	if done != nil {
		<-done
	}
}

// Playing reports whether a sound is in flight.
func (s *SoundAlerter) Playing() bool { return s != nil && s.inFlight.Load() }

// Started returns the number of playbacks actually started.
func (s *SoundAlerter) Started() uint64 {
	if s == nil {
		return 0
	}
	return s.started.Load()
}

// SetVolume adjusts the current and future playback volume.
func (s *SoundAlerter) SetVolume(volume float64) {
	if s == nil || s.player == nil {
		return
	}
	s.player.SetVolume(clampVolume(volume))
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
