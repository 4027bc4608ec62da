package motion

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/motion-guard-go/domain/capture"
)

// DefaultInterval is the pause between two captures.
const DefaultInterval = 100 * time.Millisecond

// Detector owns the Idle/Running lifecycle and the capture-diff loop. All
// exported methods are safe for concurrent use.
type Detector struct {
	logger   *slog.Logger
	source   FrameSource
	settings Settings
	alerts   AlertSink
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	state      State
	runID      uint64 // bumped on every start/stop; stale loops compare against it
	cancel     context.CancelFunc
	done       chan struct{}
	region     image.Rectangle
	indicator  bool
	lastMotion time.Time
	events     uint64
	listeners  []StateListener
}

// Option customises a Detector.
type Option func(*Detector)

// WithInterval overrides the pause between iterations.
func WithInterval(d time.Duration) Option {
	return func(det *Detector) {
		if d > 0 {
			det.interval = d
		}
	}
}

// WithClock replaces time.Now for cooldown bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(det *Detector) {
		if now != nil {
			det.now = now
		}
	}
}

// NewDetector constructs an idle detector. alerts may be nil.
func NewDetector(logger *slog.Logger, source FrameSource, settings Settings, alerts AlertSink, opts ...Option) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Detector{
		logger:   logger,
		source:   source,
		settings: settings,
		alerts:   alerts,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// AddListener registers a listener for lifecycle transitions.
func (d *Detector) AddListener(l StateListener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// Start moves Idle->Running and launches the capture loop for region.
func (d *Detector) Start(region image.Rectangle) error {
	region = region.Canon()
	if region.Empty() {
		return ErrNoRegionSelected
	}
	d.mu.Lock()
	if d.state == StateRunning {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.runID++
	r := &run{id: d.runID, region: region}
	d.cancel = cancel
	d.done = make(chan struct{})
	d.region = region
	d.indicator = false
	d.lastMotion = time.Time{}
	d.state = StateRunning
	done := d.done
	listeners := d.snapshotListeners()
	d.mu.Unlock()

	d.logger.Info("detection started", "region", region.String())
	notify(listeners, StateIdle, StateRunning)
	go d.loop(ctx, r, done)
	return nil
}

// Stop moves Running->Idle. The indicator is cleared immediately; the loop
// goroutine exits at its next wake-up. Stop does not wait for it.
func (d *Detector) Stop() {
	d.mu.Lock()
	if d.state != StateRunning {
		d.mu.Unlock()
		return
	}
	d.runID++
	d.cancel()
	d.cancel = nil
	d.state = StateIdle
	d.indicator = false
	listeners := d.snapshotListeners()
	d.mu.Unlock()

	d.logger.Info("detection stopped")
	notify(listeners, StateRunning, StateIdle)
}

// Wait blocks until the goroutine of the latest run has exited.
func (d *Detector) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
}

// State reports the lifecycle state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// IndicatorActive reports whether the motion marker should show as active.
func (d *Detector) IndicatorActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.indicator
}

// Snapshot returns the current motion state.
func (d *Detector) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		State:           d.state,
		IndicatorActive: d.indicator,
		LastMotion:      d.lastMotion,
		Events:          d.events,
		Region:          d.region,
	}
}

// run carries per-run loop state that only the loop goroutine touches.
type run struct {
	id     uint64
	region image.Rectangle
	prev   *image.Gray
	spare  *image.Gray
}

func (r *run) release() {
	capture.RecycleGray(r.prev)
	capture.RecycleGray(r.spare)
	r.prev, r.spare = nil, nil
}

func (d *Detector) loop(ctx context.Context, r *run, done chan struct{}) {
	defer close(done)
	defer r.release()
	timer := time.NewTimer(d.interval)
	defer timer.Stop()
	for {
		if ctx.Err() != nil {
			return
		}
		if err := d.safeStep(ctx, r); err != nil {
			d.halt(r.id, err)
			return
		}
		timer.Reset(d.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// safeStep runs one iteration and turns a panic into a logged, skipped
// iteration. Only a structurally broken capture is returned as an error.
func (d *Detector) safeStep(ctx context.Context, r *run) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("detection iteration panic", "error", rec, "stack", string(debug.Stack()))
			err = nil
		}
	}()
	return d.step(ctx, r)
}

func (d *Detector) step(ctx context.Context, r *run) error {
	curr, err := d.source.Gray(r.region, r.spare)
	if err != nil {
		if errors.Is(err, capture.ErrUnsupported) {
			return err
		}
		d.logger.Error("capture", "error", err)
		return nil
	}
	r.spare = nil
	if r.prev == nil {
		r.prev = curr
		return nil
	}

	score, err := Score(r.prev, curr)
	if err != nil {
		d.logger.Warn("frame size mismatch", "error", err)
		// Re-anchor on the new frame so one odd capture does not poison the run.
		capture.RecycleGray(r.prev)
		r.prev = curr
		return nil
	}

	now := d.now()
	threshold := Threshold(d.settings.Sensitivity())
	var ev *Event

	d.mu.Lock()
	if d.runID != r.id { // stopped while capturing
		d.mu.Unlock()
		r.spare, r.prev = r.prev, curr
		return nil
	}
	if score > threshold {
		d.lastMotion = now
		d.indicator = true
		d.events++
		ev = &Event{ID: uuid.New(), At: now, Score: score, Threshold: threshold, Region: r.region}
	} else {
		d.indicator = !d.lastMotion.IsZero() && now.Sub(d.lastMotion) < d.settings.Cooldown()
	}
	d.mu.Unlock()

	if ev != nil {
		d.logger.Info("motion detected", "event_id", ev.ID.String(), "score", score, "threshold", threshold)
		if d.alerts != nil {
			d.alerts.Dispatch(ctx, *ev)
		}
	}

	r.spare, r.prev = r.prev, curr
	return nil
}

// halt ends run id after an unrecoverable error, unless it was already stopped.
func (d *Detector) halt(id uint64, cause error) {
	d.mu.Lock()
	if d.runID != id || d.state != StateRunning {
		d.mu.Unlock()
		return
	}
	d.runID++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.state = StateIdle
	d.indicator = false
	listeners := d.snapshotListeners()
	d.mu.Unlock()

	d.logger.Error("detection halted", "error", cause)
	notify(listeners, StateRunning, StateIdle)
}

func (d *Detector) snapshotListeners() []StateListener {
	if len(d.listeners) == 0 {
		return nil
	}
	out := make([]StateListener, len(d.listeners))
	copy(out, d.listeners)
	return out
}

func notify(listeners []StateListener, prev, next State) {
	for _, l := range listeners {
		l(prev, next)
	}
}
