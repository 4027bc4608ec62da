package presenter

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/ui/model"
)

func defaultDetection() config.Detection { return config.DefaultConfig().Detection }

type mockSessionView struct {
	session, total           time.Duration
	sessionEvents, allEvents uint64
}

func (v *mockSessionView) SetSession(s, t time.Duration) { v.session, v.total = s, t }
func (v *mockSessionView) SetEvents(s, t uint64)         { v.sessionEvents, v.allEvents = s, t }

type flagRunning bool

func (f *flagRunning) Running() bool { return bool(*f) }

func TestSessionPresenter_Tick(t *testing.T) {
	running := flagRunning(true)
	var events uint64 = 3
	view := &mockSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), &running, EventCounterFunc(func() uint64 { return events }), view)

	base := time.Unix(0, 0)
	p.Tick(base)
	events = 5
	p.Tick(base.Add(4 * time.Second))
	if view.session != 4*time.Second || view.sessionEvents != 2 {
		t.Fatalf("unexpected view values %+v", view)
	}
	running = false
	p.Tick(base.Add(5 * time.Second))
	if view.total != 5*time.Second || view.allEvents != 2 {
		t.Fatalf("unexpected totals %+v", view)
	}
}

type mockScreens struct {
	img *image.RGBA
	err error
}

func (s *mockScreens) Screen() (*image.RGBA, error) { return s.img, s.err }

type mockOverlay struct {
	opened int
	result image.Rectangle
	ok     bool
}

func (o *mockOverlay) OpenSelection(screen *image.RGBA, done func(image.Rectangle, bool)) {
	o.opened++
	done(o.result, o.ok)
}

type mockPreview struct{ img image.Image }

func (p *mockPreview) SetPreview(img image.Image) { p.img = img }

func TestSelectionPresenter_SetsRegionAndPreview(t *testing.T) {
	screen := image.NewRGBA(image.Rect(0, 0, 100, 80))
	screen.SetRGBA(15, 25, color.RGBA{G: 200, A: 255})
	overlay := &mockOverlay{result: image.Rect(10, 20, 30, 40), ok: true}
	regions := model.NewRegionModel()
	preview := &mockPreview{}
	idle := flagRunning(false)
	p := NewSelectionPresenter(&mockScreens{img: screen}, overlay, regions, &idle, preview, discardLogger)

	p.Begin()
	if regions.Region() != image.Rect(10, 20, 30, 40) {
		t.Fatalf("unexpected region %v", regions.Region())
	}
	if preview.img == nil || preview.img.Bounds().Dx() != 20 {
		t.Fatalf("preview not set")
	}
	if _, g, _, _ := preview.img.At(5, 5).RGBA(); g>>8 != 200 {
		t.Fatalf("preview should show the selected pixels")
	}
}

func TestSelectionPresenter_CancelKeepsRegion(t *testing.T) {
	regions := model.NewRegionModel()
	regions.SetRegion(image.Rect(1, 1, 5, 5), nil)
	overlay := &mockOverlay{ok: false}
	idle := flagRunning(false)
	p := NewSelectionPresenter(&mockScreens{img: image.NewRGBA(image.Rect(0, 0, 10, 10))}, overlay, regions, &idle, nil, discardLogger)
	p.Begin()
	if regions.Region() != image.Rect(1, 1, 5, 5) {
		t.Fatalf("cancel must keep the previous region")
	}
}

func TestSelectionPresenter_RefusedWhileRunningOrOnCaptureError(t *testing.T) {
	overlay := &mockOverlay{ok: true, result: image.Rect(0, 0, 5, 5)}
	running := flagRunning(true)
	p := NewSelectionPresenter(&mockScreens{img: image.NewRGBA(image.Rect(0, 0, 10, 10))}, overlay, model.NewRegionModel(), &running, nil, discardLogger)
	p.Begin()
	if overlay.opened != 0 {
		t.Fatalf("overlay must not open while running")
	}
	running = false
	p = NewSelectionPresenter(&mockScreens{err: errors.New("no display")}, overlay, model.NewRegionModel(), &running, nil, discardLogger)
	p.Begin()
	if overlay.opened != 0 {
		t.Fatalf("overlay must not open without a screenshot")
	}
}

type mockForm struct {
	sound    config.SoundAlert
	smtp     config.SMTP
	chosen   string
	chooseOK bool
	volume   float64
}

func (f *mockForm) FormValues() (config.SoundAlert, config.SMTP) { return f.sound, f.smtp }
func (f *mockForm) SetFormValues(s config.SoundAlert, m config.SMTP) {
	f.sound, f.smtp = s, m
	f.volume = s.Volume
}
func (f *mockForm) SoundFile() string               { return f.sound.SoundFile }
func (f *mockForm) SetSoundFile(p string)           { f.sound.SoundFile = p }
func (f *mockForm) Volume() float64                 { return f.volume }
func (f *mockForm) ChooseSoundFile() (string, bool) { return f.chosen, f.chooseOK }

type mockStore struct {
	sound   config.SoundAlert
	smtp    config.SMTP
	applied int
	volume  float64
	err     error
}

func (s *mockStore) AlertConfig() (config.SoundAlert, config.SMTP) { return s.sound, s.smtp }
func (s *mockStore) ApplyAlerts(so config.SoundAlert, sm config.SMTP) error {
	s.applied++
	if s.err != nil {
		return s.err
	}
	s.sound, s.smtp = so, sm
	return nil
}
func (s *mockStore) SetVolume(v float64) { s.volume = v }

type mockSound struct {
	plays  []string
	volume float64
}

func (m *mockSound) Play(path string, v float64) bool { m.plays = append(m.plays, path); return true }
func (m *mockSound) SetVolume(v float64)              { m.volume = v }

func TestSettingsPresenter_LoadChooseApply(t *testing.T) {
	store := &mockStore{sound: config.SoundAlert{Volume: 0.7}, smtp: config.SMTP{Server: "smtp.example.com"}}
	form := &mockForm{chosen: "/tmp/alarm.wav", chooseOK: true}
	p := NewSettingsPresenter(store, form, &mockSound{}, discardLogger)

	p.Load()
	if form.smtp.Server != "smtp.example.com" || form.volume != 0.7 {
		t.Fatalf("form not loaded: %+v", form)
	}
	p.ChooseSoundFile()
	if store.sound.SoundFile != "" {
		t.Fatalf("choosing a file must not apply it")
	}
	form.sound.Enabled = true
	p.Apply()
	if store.applied != 1 || store.sound.SoundFile != "/tmp/alarm.wav" || !store.sound.Enabled {
		t.Fatalf("apply did not commit: %+v", store.sound)
	}
}

func TestSettingsPresenter_TestSoundAndVolume(t *testing.T) {
	sound := &mockSound{}
	store := &mockStore{}
	form := &mockForm{}
	p := NewSettingsPresenter(store, form, sound, discardLogger)

	p.TestSound()
	if len(sound.plays) != 0 {
		t.Fatalf("no file selected, nothing should play")
	}
	form.sound.SoundFile = "beep.mp3"
	p.TestSound()
	if len(sound.plays) != 1 || sound.plays[0] != "beep.mp3" {
		t.Fatalf("expected test playback, got %v", sound.plays)
	}
	p.SetVolume(0.3)
	if sound.volume != 0.3 || store.volume != 0.3 {
		t.Fatalf("volume not forwarded: sound=%v store=%v", sound.volume, store.volume)
	}
}

func TestStatePresenter_CoalescesPending(t *testing.T) {
	running := &model.RunningModel{}
	view := &mockDetectionView{}
	p := NewStatePresenter(running, view)
	p.Tick()
	if len(view.stateLabels) != 1 || view.stateLabels[0] != "Status: Idle" {
		t.Fatalf("initial label expected, got %v", view.stateLabels)
	}
	p.OnState(0, 1)
	p.OnState(1, 0)
	p.OnState(0, 1)
	p.Tick()
	if len(view.stateLabels) != 2 || view.stateLabels[1] != "Status: Monitoring" {
		t.Fatalf("expected one update with the last state, got %v", view.stateLabels)
	}
	if !running.Running() {
		t.Fatalf("running model should follow transitions")
	}
}

func TestLoop_NilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	scheduled := 0
	NewLoop(nil, nil, nil, func() { scheduled++ }).Tick()
	if scheduled != 1 {
		t.Fatalf("schedule not invoked")
	}
}
