package alert

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/domain/motion"
)

// Settings supplies the alert configuration current at dispatch time.
type Settings interface {
	AlertConfig() (config.SoundAlert, config.SMTP)
}

// Sender delivers an e-mail notification.
type Sender interface {
	Send(ctx context.Context, cfg config.SMTP, ev motion.Event) error
}

// Dispatcher fans one motion event out to the sound and e-mail channels.
// Failures are logged and never returned to the detector.
type Dispatcher struct {
	settings Settings
	sound    *SoundAlerter
	mail     Sender
	logger   *slog.Logger
}

// NewDispatcher wires the alert channels. sound and mail may be nil.
func NewDispatcher(settings Settings, sound *SoundAlerter, mail Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{settings: settings, sound: sound, mail: mail, logger: logger}
}

// Dispatch implements motion.AlertSink.
func (d *Dispatcher) Dispatch(ctx context.Context, ev motion.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("alert dispatch panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	sound, smtpCfg := d.settings.AlertConfig()

	if sound.Enabled && sound.SoundFile != "" && d.sound != nil {
		if !d.sound.Play(sound.SoundFile, sound.Volume) && d.sound.Playing() {
			d.logger.Debug("sound alert skipped, already playing", "event_id", ev.ID.String())
		}
	}

	if smtpCfg.Enabled && d.mail != nil {
		if err := d.mail.Send(ctx, smtpCfg, ev); err != nil {
			d.logger.Error("email alert", "error", err, "category", Category(err), "event_id", ev.ID.String())
			return
		}
		d.logger.Info("email alert sent", "recipient", smtpCfg.Recipient, "event_id", ev.ID.String())
	}
}
