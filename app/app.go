package app

import (
	"context"
	"time"

	"github.com/pkg/browser"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/motion-guard-go/debug"
	"github.com/soocke/motion-guard-go/ui/presenter"
	"github.com/soocke/motion-guard-go/ui/theme"
	"github.com/soocke/motion-guard-go/ui/view"
)

const (
	tick      = 100 * time.Millisecond
	creditURL = "https://www.clement.business"
)

// App owns the Tk lifecycle: build the widgets, drive the presenter loop on
// the Tk event thread and shut detection down on exit.
type App struct {
	c          *AppContainer
	afterID    string
	stopDiag   context.CancelFunc
	exitCalled bool
}

func NewApp(c *AppContainer) *App { return &App{c: c} }

// Start builds the UI and blocks until the main window is closed.
func (a *App) Start() {
	c := a.c
	theme.InitStyles()
	c.RootView.Build(c.Detection.Snapshot(), view.MainHandlers{
		OnSelect:      c.SelectionPresenter.Begin,
		OnStart:       c.DetectionPresenter.Start,
		OnStop:        c.DetectionPresenter.Stop,
		OnSensitivity: c.DetectionPresenter.SetSensitivity,
		OnCooldown:    c.DetectionPresenter.SetCooldown,
		OnCredit:      a.openCredit,
	}, view.SettingsHandlers{
		OnChooseSound: c.SettingsPresenter.ChooseSoundFile,
		OnTestSound:   c.SettingsPresenter.TestSound,
		OnVolume:      c.SettingsPresenter.SetVolume,
		OnApply:       c.SettingsPresenter.Apply,
	}, a.exitHandler)
	c.SettingsPresenter.Load()

	if c.Config.Logging.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopDiag = cancel
		debug.StartRuntimeLogger(ctx, time.Second, c.Logger.With("component", "debug"), c.Capture.Stats)
	}

	c.Loop = presenter.NewLoop(c.SessionPresenter, c.StatePresenter, c.DetectionPresenter, a.scheduleUpdate)
	a.scheduleUpdate()
	c.Logger.Info("ui started")

	App.Wait()
	a.shutdown()
}

func (a *App) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *App) exitHandler() {
	if a.exitCalled {
		return
	}
	a.exitCalled = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

// shutdown stops detection and persists the slider positions.
func (a *App) shutdown() {
	c := a.c
	c.Detector.Stop()
	c.Detector.Wait()
	if a.stopDiag != nil {
		a.stopDiag()
	}
	if err := c.Settings.ApplyDetection(c.Detection.Snapshot()); err != nil {
		c.Logger.Error("config save failed", "error", err)
	}
	c.Logger.Info("shutdown complete")
}

func (a *App) openCredit() {
	go func() {
		if err := browser.OpenURL(creditURL); err != nil {
			a.c.Logger.Warn("open credit link", "error", err)
		}
	}()
}
