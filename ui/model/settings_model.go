package model

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/motion-guard-go/config"
)

const (
	MinSensitivity = 0
	MaxSensitivity = 100
	MinCooldown    = 1
	MaxCooldown    = 60
)

// DetectionSettings holds the slider values. Writes come from the UI thread,
// reads from the detection goroutine on every iteration.
type DetectionSettings struct {
	sensitivity atomic.Int32
	cooldown    atomic.Int32 // seconds
}

// NewDetectionSettings returns settings initialised from persisted values.
func NewDetectionSettings(d config.Detection) *DetectionSettings {
	s := &DetectionSettings{}
	s.SetSensitivity(d.Sensitivity)
	s.SetCooldownSeconds(d.CooldownSeconds)
	return s
}

// Sensitivity returns the current sensitivity (0..100).
func (s *DetectionSettings) Sensitivity() int { return int(s.sensitivity.Load()) }

// Cooldown returns the indicator cooldown window.
func (s *DetectionSettings) Cooldown() time.Duration {
	return time.Duration(s.cooldown.Load()) * time.Second
}

// CooldownSeconds returns the cooldown in whole seconds.
func (s *DetectionSettings) CooldownSeconds() int { return int(s.cooldown.Load()) }

// SetSensitivity clamps v to 0..100.
func (s *DetectionSettings) SetSensitivity(v int) {
	s.sensitivity.Store(int32(clampInt(v, MinSensitivity, MaxSensitivity)))
}

// SetCooldownSeconds clamps v to 1..60.
func (s *DetectionSettings) SetCooldownSeconds(v int) {
	s.cooldown.Store(int32(clampInt(v, MinCooldown, MaxCooldown)))
}

// Snapshot returns the values in persisted form.
func (s *DetectionSettings) Snapshot() config.Detection {
	return config.Detection{Sensitivity: s.Sensitivity(), CooldownSeconds: s.CooldownSeconds()}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SettingsModel owns the persisted configuration. Alert dispatch reads it from
// the detection goroutine while the settings tab writes it.
type SettingsModel struct {
	mu        sync.RWMutex
	cfg       *config.Config
	path      string
	detection *DetectionSettings // live slider values, may be nil
}

// NewSettingsModel wraps cfg, persisted at path. Every write includes the
// current values of detection when it is non-nil.
func NewSettingsModel(cfg *config.Config, path string, detection *DetectionSettings) *SettingsModel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SettingsModel{cfg: cfg.Clone(), path: path, detection: detection}
}

// Config returns a copy of the current configuration.
func (m *SettingsModel) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Clone()
}

// AlertConfig returns the alert sections current at call time.
func (m *SettingsModel) AlertConfig() (config.SoundAlert, config.SMTP) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Sound, m.cfg.SMTP
}

// ApplyAlerts replaces the alert sections and writes the file together with
// the current slider positions. The in-memory values are updated even when
// the write fails.
func (m *SettingsModel) ApplyAlerts(sound config.SoundAlert, smtp config.SMTP) error {
	m.mu.Lock()
	m.cfg.Sound = sound
	m.cfg.SMTP = smtp
	if m.detection != nil {
		m.cfg.Detection = m.detection.Snapshot()
	}
	_ = m.cfg.Validate()
	snapshot := m.cfg.Clone()
	m.mu.Unlock()
	return snapshot.Save(m.path)
}

// SetVolume updates the sound volume without persisting it.
func (m *SettingsModel) SetVolume(v float64) {
	m.mu.Lock()
	m.cfg.Sound.Volume = v
	_ = m.cfg.Validate()
	m.mu.Unlock()
}

// ApplyDetection stores slider positions and writes the file.
func (m *SettingsModel) ApplyDetection(d config.Detection) error {
	m.mu.Lock()
	m.cfg.Detection = d
	_ = m.cfg.Validate()
	snapshot := m.cfg.Clone()
	m.mu.Unlock()
	return snapshot.Save(m.path)
}
