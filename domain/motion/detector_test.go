package motion

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/motion-guard-go/domain/capture"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixedSettings struct {
	sensitivity atomic.Int32
	cooldown    atomic.Int64
}

func newSettings(sensitivity int, cooldown time.Duration) *fixedSettings {
	s := &fixedSettings{}
	s.sensitivity.Store(int32(sensitivity))
	s.cooldown.Store(int64(cooldown))
	return s
}

func (s *fixedSettings) Sensitivity() int        { return int(s.sensitivity.Load()) }
func (s *fixedSettings) Cooldown() time.Duration { return time.Duration(s.cooldown.Load()) }

// scriptedSource returns the frames produced by next, one per call.
type scriptedSource struct {
	mu    sync.Mutex
	next  func(call int) (*image.Gray, error)
	calls int
}

func (s *scriptedSource) Gray(r image.Rectangle, dst *image.Gray) (*image.Gray, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.next(s.calls)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Dispatch(ctx context.Context, ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var region = image.Rect(10, 20, 18, 28)

// steppedDetector returns a detector already marked running so step can be
// driven synchronously.
func steppedDetector(src FrameSource, settings Settings, sink AlertSink, clock *manualClock) (*Detector, *run) {
	d := NewDetector(discardLogger, src, settings, sink, WithClock(clock.Now))
	d.state = StateRunning
	d.runID = 1
	d.region = region
	return d, &run{id: 1, region: region}
}

func TestDetector_FirstFrameIsReferenceOnly(t *testing.T) {
	src := &scriptedSource{next: func(call int) (*image.Gray, error) { return grayFrame(8, 8, uint8(call*100)), nil }}
	sink := &recordingSink{}
	clock := &manualClock{now: time.Unix(1000, 0)}
	d, r := steppedDetector(src, newSettings(100, 10*time.Second), sink, clock)

	if err := d.step(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if sink.count() != 0 || d.IndicatorActive() {
		t.Fatalf("first frame must not be scored")
	}
	if err := d.step(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if sink.count() != 1 || !d.IndicatorActive() {
		t.Fatalf("second differing frame must trigger: events=%d indicator=%v", sink.count(), d.IndicatorActive())
	}
}

func TestDetector_IdenticalFramesNeverAlert(t *testing.T) {
	src := &scriptedSource{next: func(int) (*image.Gray, error) { return grayFrame(8, 8, 77), nil }}
	sink := &recordingSink{}
	clock := &manualClock{now: time.Unix(1000, 0)}
	d, r := steppedDetector(src, newSettings(100, time.Second), sink, clock)
	for i := 0; i < 5; i++ {
		_ = d.step(context.Background(), r)
		clock.Advance(DefaultInterval)
	}
	if sink.count() != 0 || d.IndicatorActive() {
		t.Fatalf("identical frames raised motion: events=%d", sink.count())
	}
	if !d.Snapshot().LastMotion.IsZero() {
		t.Fatalf("last motion should be unset")
	}
}

func TestDetector_CooldownHysteresis(t *testing.T) {
	moving := true
	src := &scriptedSource{next: func(call int) (*image.Gray, error) {
		if moving {
			return grayFrame(8, 8, uint8(call%2)*200), nil
		}
		return grayFrame(8, 8, 0), nil
	}}
	sink := &recordingSink{}
	clock := &manualClock{now: time.Unix(1000, 0)}
	cooldown := 10 * time.Second
	d, r := steppedDetector(src, newSettings(50, cooldown), sink, clock)

	_ = d.step(context.Background(), r) // reference (call 1 -> 200)
	_ = d.step(context.Background(), r) // call 2 -> 0, full change
	if !d.IndicatorActive() {
		t.Fatalf("expected active after motion")
	}
	detectedAt := d.Snapshot().LastMotion
	if !detectedAt.Equal(clock.Now()) {
		t.Fatalf("last motion %v want %v", detectedAt, clock.Now())
	}

	moving = false
	_ = d.step(context.Background(), r) // 0 vs 0 (call 3 returns 0 when not moving)
	for elapsed := DefaultInterval; elapsed < cooldown; elapsed += DefaultInterval {
		clock.Advance(DefaultInterval)
		_ = d.step(context.Background(), r)
		if !d.IndicatorActive() {
			t.Fatalf("indicator dropped early after %v", elapsed)
		}
	}
	clock.Advance(DefaultInterval)
	_ = d.step(context.Background(), r)
	if d.IndicatorActive() {
		t.Fatalf("indicator still active after cooldown")
	}
	if sink.count() != 1 {
		t.Fatalf("expected exactly one alert, got %d", sink.count())
	}
}

func TestDetector_SensitivityReadEachIteration(t *testing.T) {
	// 1 of 64 pixels changes: score ~3.98.
	src := &scriptedSource{next: func(call int) (*image.Gray, error) {
		g := grayFrame(8, 8, 0)
		if call%2 == 0 {
			g.Pix[0] = 255
		}
		return g, nil
	}}
	sink := &recordingSink{}
	settings := newSettings(50, time.Second)
	clock := &manualClock{now: time.Unix(0, 0)}
	d, r := steppedDetector(src, settings, sink, clock)
	_ = d.step(context.Background(), r)
	_ = d.step(context.Background(), r)
	if sink.count() != 0 {
		t.Fatalf("score below threshold must not alert")
	}
	settings.sensitivity.Store(99) // threshold 2.55
	_ = d.step(context.Background(), r)
	if sink.count() != 1 {
		t.Fatalf("raised sensitivity should apply on the next iteration")
	}
}

func TestDetector_FrameSizeMismatchSkips(t *testing.T) {
	src := &scriptedSource{next: func(call int) (*image.Gray, error) {
		if call == 2 {
			return grayFrame(4, 4, 255), nil
		}
		return grayFrame(8, 8, 0), nil
	}}
	sink := &recordingSink{}
	clock := &manualClock{now: time.Unix(0, 0)}
	d, r := steppedDetector(src, newSettings(100, time.Second), sink, clock)
	for i := 0; i < 4; i++ {
		if err := d.step(context.Background(), r); err != nil {
			t.Fatalf("mismatch must not be fatal: %v", err)
		}
	}
	if sink.count() != 0 {
		t.Fatalf("mismatched frame must not be scored")
	}
}

func TestDetector_CaptureFailureContinues(t *testing.T) {
	src := &scriptedSource{next: func(call int) (*image.Gray, error) {
		if call == 2 {
			return nil, capture.ErrCaptureFailure
		}
		return grayFrame(8, 8, uint8(call)*60), nil
	}}
	sink := &recordingSink{}
	clock := &manualClock{now: time.Unix(0, 0)}
	d, r := steppedDetector(src, newSettings(100, time.Second), sink, clock)
	for i := 0; i < 3; i++ {
		if err := d.step(context.Background(), r); err != nil {
			t.Fatalf("transient failure must not be fatal: %v", err)
		}
	}
	if sink.count() != 1 {
		t.Fatalf("expected detection after recovering, got %d", sink.count())
	}
}

func TestDetector_StartRequiresRegion(t *testing.T) {
	d := NewDetector(discardLogger, &scriptedSource{}, newSettings(50, time.Second), nil)
	if err := d.Start(image.Rectangle{}); !errors.Is(err, ErrNoRegionSelected) {
		t.Fatalf("expected ErrNoRegionSelected, got %v", err)
	}
	if d.State() != StateIdle {
		t.Fatalf("detector must stay idle")
	}
}

func TestDetector_StopClearsIndicatorImmediately(t *testing.T) {
	src := &scriptedSource{next: func(call int) (*image.Gray, error) { return grayFrame(8, 8, uint8(call%2)*255), nil }}
	sink := &recordingSink{}
	d := NewDetector(discardLogger, src, newSettings(50, time.Minute), sink, WithInterval(time.Millisecond))

	var transitions []string
	var tmu sync.Mutex
	d.AddListener(func(prev, next State) {
		tmu.Lock()
		transitions = append(transitions, prev.String()+"->"+next.String())
		tmu.Unlock()
	})

	if err := d.Start(region); err != nil {
		t.Fatal(err)
	}
	if err := d.Start(region); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !d.IndicatorActive() {
		if time.Now().After(deadline) {
			t.Fatalf("motion never detected")
		}
		time.Sleep(time.Millisecond)
	}
	d.Stop()
	if d.IndicatorActive() {
		t.Fatalf("stop must clear indicator regardless of cooldown")
	}
	d.Wait()
	if d.IndicatorActive() || d.State() != StateIdle {
		t.Fatalf("loop wrote state after stop")
	}
	tmu.Lock()
	defer tmu.Unlock()
	if len(transitions) != 2 || transitions[0] != "idle->running" || transitions[1] != "running->idle" {
		t.Fatalf("unexpected transitions %v", transitions)
	}
}

func TestDetector_UnsupportedCaptureHalts(t *testing.T) {
	src := &scriptedSource{next: func(int) (*image.Gray, error) { return nil, capture.ErrUnsupported }}
	d := NewDetector(discardLogger, src, newSettings(50, time.Second), nil, WithInterval(time.Millisecond))
	if err := d.Start(region); err != nil {
		t.Fatal(err)
	}
	d.Wait()
	if d.State() != StateIdle {
		t.Fatalf("expected idle after unsupported capture, got %v", d.State())
	}
	// restart is allowed after a halt
	if err := d.Start(region); err != nil {
		t.Fatalf("restart: %v", err)
	}
	d.Wait()
}
