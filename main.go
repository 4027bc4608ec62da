package main

import (
	"log/slog"

	"github.com/soocke/motion-guard-go/app"
	"github.com/soocke/motion-guard-go/config"
)

func main() {
	// Settings file, created with defaults on first run
	cfg, cfgErr := config.Load(config.DefaultPath)

	level, lvlErr := config.ParseLevel(cfg.Logging.Level)
	logger := NewLogger(level)
	slog.SetDefault(logger)
	if cfgErr != nil {
		logger.Warn("config load", "error", cfgErr, "path", config.DefaultPath)
	}
	if lvlErr != nil {
		logger.Warn("log level", "error", lvlErr, "level", cfg.Logging.Level)
	}

	c := app.BuildContainer(cfg, config.DefaultPath, logger, app.Options{})
	app.NewApp(c).Start()
}
