package presenter

import (
	"time"

	"github.com/soocke/motion-guard-go/ui/model"
)

// RunningSource reports whether detection is active.
type RunningSource interface{ Running() bool }

// EventCounter returns the detector's monotonic motion event count.
type EventCounter interface{ Events() uint64 }

// EventCounterFunc adapts a function to EventCounter.
type EventCounterFunc func() uint64

func (f EventCounterFunc) Events() uint64 { return f() }

// SessionView displays session statistics.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetEvents(session, total uint64)
}

// SessionPresenter formats session statistics from the model to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	running RunningSource
	events  EventCounter
	view    SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, running RunningSource, events EventCounter, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, running: running, events: events, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.running == nil || p.view == nil {
		return
	}
	var events uint64
	if p.events != nil {
		events = p.events.Events()
	}
	p.sess.OnTick(p.running.Running(), events, now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	se, te := p.sess.Events()
	p.view.SetEvents(se, te)
}
