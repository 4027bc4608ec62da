package view

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/motion-guard-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Window geometry of the main window.
const (
	WindowWidth  = 570
	WindowHeight = 800
	WindowTitle  = "Motion Detector App"
)

// RootView composes the two tabs and the selection overlay. It is the single
// view object handed to presenters.
type RootView struct {
	logger *slog.Logger

	Main     *MainPanel
	Settings *SettingsPanel
	Overlay  *SelectionOverlay
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetRunning(running bool)
	SetIndicator(active bool)
	ShowError(title, message string)
	SetPreview(img image.Image)
	SetSession(session, total time.Duration)
	SetEvents(session, total uint64)
}

var _ UI = (*RootView)(nil)

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger, Overlay: NewSelectionOverlay(logger)}
}

// Build configures the main window and lays out both tabs.
func (rv *RootView) Build(det config.Detection, main MainHandlers, settings SettingsHandlers, onExit func()) {
	if rv == nil {
		return
	}
	App.WmTitle(WindowTitle)
	WmGeometry(App, fmt.Sprintf("%dx%d", WindowWidth, WindowHeight))
	App.SetResizable(false, false)
	if onExit != nil {
		WmProtocol(App, "WM_DELETE_WINDOW", onExit)
	}

	nb := TNotebook()
	Grid(nb, Row(0), Column(0), Sticky("nsew"))
	GridRowConfigure(App, 0, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	rv.Main = NewMainPanel(det, main)
	rv.Settings = NewSettingsPanel(settings)
	nb.Add(rv.Main.frame, Txt("Main"))
	nb.Add(rv.Settings.frame, Txt("Settings"))
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.Main != nil {
		rv.Main.SetStateLabel(text)
	}
}

// SetRunning proxies to the main tab buttons.
func (rv *RootView) SetRunning(running bool) {
	if rv != nil && rv.Main != nil {
		rv.Main.SetRunning(running)
	}
}

// SetIndicator proxies to the motion marker.
func (rv *RootView) SetIndicator(active bool) {
	if rv != nil && rv.Main != nil {
		rv.Main.SetIndicator(active)
	}
}

// ShowError shows a modal error dialog.
func (rv *RootView) ShowError(title, message string) {
	if rv != nil && rv.logger != nil {
		rv.logger.Warn("user error", "title", title, "message", message)
	}
	MessageBox(Icon("error"), Title(title), Msg(message))
}

// SetPreview proxies to the region preview.
func (rv *RootView) SetPreview(img image.Image) {
	if rv != nil && rv.Main != nil && rv.Main.Preview != nil {
		rv.Main.Preview.SetPreview(img)
	}
}

// SetSession updates session and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Main != nil && rv.Main.Session != nil {
		rv.Main.Session.SetSession(session, total)
	}
}

// SetEvents updates the motion event counters.
func (rv *RootView) SetEvents(session, total uint64) {
	if rv != nil && rv.Main != nil && rv.Main.Session != nil {
		rv.Main.Session.SetEvents(session, total)
	}
}

// Settings form proxies; valid after Build.

func (rv *RootView) FormValues() (config.SoundAlert, config.SMTP) {
	if rv == nil || rv.Settings == nil {
		return config.SoundAlert{}, config.SMTP{}
	}
	return rv.Settings.FormValues()
}

func (rv *RootView) SetFormValues(sound config.SoundAlert, smtp config.SMTP) {
	if rv != nil && rv.Settings != nil {
		rv.Settings.SetFormValues(sound, smtp)
	}
}

func (rv *RootView) SoundFile() string {
	if rv == nil || rv.Settings == nil {
		return ""
	}
	return rv.Settings.SoundFile()
}

func (rv *RootView) SetSoundFile(path string) {
	if rv != nil && rv.Settings != nil {
		rv.Settings.SetSoundFile(path)
	}
}

func (rv *RootView) Volume() float64 {
	if rv == nil || rv.Settings == nil {
		return 0
	}
	return rv.Settings.Volume()
}

func (rv *RootView) ChooseSoundFile() (string, bool) {
	if rv == nil || rv.Settings == nil {
		return "", false
	}
	return rv.Settings.ChooseSoundFile()
}
