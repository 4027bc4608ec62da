package app

import (
	"log/slog"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/domain/alert"
	"github.com/soocke/motion-guard-go/domain/capture"
	"github.com/soocke/motion-guard-go/domain/motion"
	"github.com/soocke/motion-guard-go/ui/model"
	"github.com/soocke/motion-guard-go/ui/presenter"
	"github.com/soocke/motion-guard-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// Models
	Settings  *model.SettingsModel
	Detection *model.DetectionSettings
	Regions   *model.RegionModel
	Running   *model.RunningModel
	Session   *model.SessionModel

	// Services
	Capture  capture.Service
	Sound    *alert.SoundAlerter
	Alerts   *alert.Dispatcher
	Detector *motion.Detector

	RootView *view.RootView
	UI       view.UI

	// Presenters
	SessionPresenter   *presenter.SessionPresenter
	StatePresenter     *presenter.StatePresenter
	DetectionPresenter *presenter.DetectionPresenter
	SelectionPresenter *presenter.SelectionPresenter
	SettingsPresenter  *presenter.SettingsPresenter
	Loop               *presenter.Loop
}

// Options override the platform services, mainly for tests.
type Options struct {
	Grabber capture.Grabber // nil selects the screen grabber
	Player  alert.Player    // nil selects the speaker
	Dialer  alert.Dialer    // nil dials real SMTP servers
}

// BuildContainer constructs all components. No Tk calls happen here; the
// widgets are created later by RootView.Build.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, opts Options) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	c.Detection = model.NewDetectionSettings(cfg.Detection)
	c.Settings = model.NewSettingsModel(cfg, cfgPath, c.Detection)
	c.Regions = model.NewRegionModel()
	c.Running = &model.RunningModel{}
	c.Session = model.NewSessionModel()

	player := opts.Player
	if player == nil {
		player = alert.NewBeepPlayer()
	}
	c.Capture = capture.NewService(logger.With("component", "capture"), opts.Grabber)
	c.Sound = alert.NewSoundAlerter(player, logger.With("component", "sound"))
	c.Alerts = alert.NewDispatcher(c.Settings, c.Sound, alert.NewMailer(opts.Dialer), logger.With("component", "alert"))
	c.Detector = motion.NewDetector(logger.With("component", "detector"), c.Capture, c.Detection, c.Alerts)

	c.RootView = view.NewRootView(logger)
	c.UI = c.RootView

	c.StatePresenter = presenter.NewStatePresenter(c.Running, c.UI)
	c.Detector.AddListener(c.StatePresenter.OnState)
	c.DetectionPresenter = presenter.NewDetectionPresenter(c.Detector, c.Regions, c.Running, c.Detection, c.UI, logger)
	c.SelectionPresenter = presenter.NewSelectionPresenter(c.Capture, c.RootView.Overlay, c.Regions, c.Running, c.UI, logger)
	c.SettingsPresenter = presenter.NewSettingsPresenter(c.Settings, c.RootView, c.Sound, logger)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Running, presenter.EventCounterFunc(func() uint64 {
		return c.Detector.Snapshot().Events
	}), c.UI)
	return c
}
