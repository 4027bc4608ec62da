package presenter

import (
	"log/slog"

	"github.com/soocke/motion-guard-go/config"
)

// SettingsForm is the settings tab as seen by the presenter.
type SettingsForm interface {
	FormValues() (config.SoundAlert, config.SMTP)
	SetFormValues(sound config.SoundAlert, smtp config.SMTP)
	SoundFile() string
	SetSoundFile(path string)
	Volume() float64
	ChooseSoundFile() (path string, ok bool)
}

// SettingsStore persists alert settings.
type SettingsStore interface {
	AlertConfig() (config.SoundAlert, config.SMTP)
	ApplyAlerts(sound config.SoundAlert, smtp config.SMTP) error
	SetVolume(v float64)
}

// SoundTester plays the chosen file and adjusts the live volume.
type SoundTester interface {
	Play(path string, volume float64) bool
	SetVolume(volume float64)
}

// SettingsPresenter binds the settings tab to the persisted alert config.
type SettingsPresenter struct {
	store  SettingsStore
	form   SettingsForm
	sound  SoundTester
	logger *slog.Logger
}

func NewSettingsPresenter(store SettingsStore, form SettingsForm, sound SoundTester, logger *slog.Logger) *SettingsPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsPresenter{store: store, form: form, sound: sound, logger: logger}
}

// Load fills the form from the stored config.
func (p *SettingsPresenter) Load() {
	if p == nil || p.store == nil || p.form == nil {
		return
	}
	p.form.SetFormValues(p.store.AlertConfig())
}

// Apply commits the form to the alert config and writes the settings file.
func (p *SettingsPresenter) Apply() {
	if p == nil || p.store == nil || p.form == nil {
		return
	}
	sound, smtp := p.form.FormValues()
	if err := p.store.ApplyAlerts(sound, smtp); err != nil {
		p.logger.Error("config save failed", "error", err)
		return
	}
	p.logger.Info("config saved", "sound_enabled", sound.Enabled, "smtp_enabled", smtp.Enabled)
}

// ChooseSoundFile lets the user pick a file; it takes effect on Apply.
func (p *SettingsPresenter) ChooseSoundFile() {
	if p == nil || p.form == nil {
		return
	}
	if path, ok := p.form.ChooseSoundFile(); ok && path != "" {
		p.form.SetSoundFile(path)
	}
}

// TestSound plays the file currently chosen in the form.
func (p *SettingsPresenter) TestSound() {
	if p == nil || p.form == nil || p.sound == nil {
		return
	}
	path := p.form.SoundFile()
	if path == "" {
		p.logger.Warn("sound playback", "error", "no sound file selected")
		return
	}
	p.sound.Play(path, p.form.Volume())
}

// SetVolume applies v to the current playback and to future alerts.
func (p *SettingsPresenter) SetVolume(v float64) {
	if p == nil {
		return
	}
	if p.store != nil {
		p.store.SetVolume(v)
	}
	if p.sound != nil {
		p.sound.SetVolume(v)
	}
}
