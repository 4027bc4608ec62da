package model

import (
	"time"
)

// SessionModel tracks the current detection session duration, the accumulated
// active time and the motion events seen in the current session.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active              bool
	sessionStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration

	eventsBase  uint64 // detector event counter at session start
	eventsSeen  uint64 // detector event counter at the last tick
	totalEvents uint64 // events of finished sessions
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the detection state, the detector's
// monotonic event counter and the current timestamp.
func (m *SessionModel) OnTick(running bool, events uint64, now time.Time) {
	if m == nil {
		return
	}
	if running {
		if !m.active { // transition off -> on
			m.active = true
			m.sessionStart = now
			m.lastSessionDuration = 0
			m.eventsBase = events
		}
		m.lastSessionDuration = now.Sub(m.sessionStart)
		m.eventsSeen = events
	} else if m.active { // transition on -> off
		m.lastSessionDuration = now.Sub(m.sessionStart)
		m.accumulated += m.lastSessionDuration
		if events > m.eventsSeen {
			m.eventsSeen = events
		}
		m.totalEvents += m.eventsSeen - m.eventsBase
		m.active = false
	}
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Events returns the motion events of the current (or last) session and of
// all sessions.
func (m *SessionModel) Events() (session, total uint64) {
	if m == nil {
		return 0, 0
	}
	session = m.eventsSeen - m.eventsBase
	total = m.totalEvents
	if m.active {
		total += session
	}
	return
}
