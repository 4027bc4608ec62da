package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows monitoring durations and motion event counts.
type SessionStats interface {
	SetSession(session, total time.Duration)
	SetEvents(session, total uint64)
}

type sessionStats struct {
	sessionLbl *TLabelWidget
	totalLbl   *TLabelWidget
	eventsLbl  *TLabelWidget
}

// NewSessionStats creates the labels inside parent on the given row, starting
// at column startCol.
func NewSessionStats(parent *TFrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: parent.TLabel(Width(16)),
		totalLbl:   parent.TLabel(Width(16)),
		eventsLbl:  parent.TLabel(Width(18)),
	}
	Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.eventsLbl, Row(row), Column(startCol+2), Sticky("w"), Padx("0.2m"))
	s.SetSession(0, 0)
	s.SetEvents(0, 0)
	return s
}

func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + formatDuration(session)))
	s.totalLbl.Configure(Txt("Total: " + formatDuration(total)))
}

func (s *sessionStats) SetEvents(session, total uint64) {
	if s == nil || s.eventsLbl == nil {
		return
	}
	s.eventsLbl.Configure(Txt(fmt.Sprintf("Motion: %d (%d)", session, total)))
}

// formatDuration renders d as mm:ss, or h:mm:ss past one hour.
func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
