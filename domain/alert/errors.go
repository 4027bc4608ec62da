package alert

import "errors"

var (
	// ErrSoundPlayback covers decode, device and file errors of the sound alert.
	ErrSoundPlayback = errors.New("sound playback failed")

	ErrSMTPAuth         = errors.New("smtp authentication failed")
	ErrSMTPConnect      = errors.New("smtp connection failed")
	ErrSMTPDisconnected = errors.New("smtp server disconnected")
	ErrSMTPOther        = errors.New("smtp error")
)

// Category names the SMTP failure class of err for logging.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSMTPAuth):
		return "auth"
	case errors.Is(err, ErrSMTPConnect):
		return "connect"
	case errors.Is(err, ErrSMTPDisconnected):
		return "disconnected"
	default:
		return "other"
	}
}
