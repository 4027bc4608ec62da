package presenter

import (
	"sync"

	"github.com/soocke/motion-guard-go/domain/motion"
	"github.com/soocke/motion-guard-go/ui/model"
)

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter receives detector transitions and updates the view on tick.
// OnState may be called from the detection goroutine.
type StatePresenter struct {
	running *model.RunningModel
	view    StateView
	latest  motion.State
	shown   bool

	mu      sync.Mutex
	pending []motion.State
}

func NewStatePresenter(running *model.RunningModel, view StateView) *StatePresenter {
	return &StatePresenter{running: running, view: view}
}

// OnState is a motion.StateListener. It records the transition; the latest
// queued state will be reflected on the next Tick.
func (p *StatePresenter) OnState(prev, next motion.State) {
	if p == nil {
		return
	}
	p.running.SetRunning(next == motion.StateRunning)
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick updates the view with the most recent queued state.
func (p *StatePresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		if !p.shown {
			p.shown = true
			p.view.SetStateLabel(StateLabel(p.latest))
		}
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	p.mu.Unlock()
	if !p.shown || last != p.latest {
		p.shown = true
		p.latest = last
		p.view.SetStateLabel(StateLabel(last))
	}
}

// StateLabel renders s for the status label.
func StateLabel(s motion.State) string {
	if s == motion.StateRunning {
		return "Status: Monitoring"
	}
	return "Status: Idle"
}
