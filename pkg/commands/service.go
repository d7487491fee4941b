package commands

import (
	"io"
	"log/slog"
	"os"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/logging"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// runtime is everything a command needs to talk to the saved collection.
type runtime struct {
	Settings *store.Settings
	Service  *app.Service
	Logger   *slog.Logger
	close    func() error
}

func (r *runtime) Close() {
	if r.close != nil {
		_ = r.close()
	}
}

// load reads the config and opens storage. logFallback receives log lines
// when no log file is configured; nil discards them.
func load(logFallback io.Writer, fallbackLevel string) (*runtime, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if logs.File != "" {
		settings.LogFile = logs.File
	}
	if logs.Level != "" {
		settings.LogLevel = logs.Level
	} else if settings.LogFile == "" && fallbackLevel != "" {
		settings.LogLevel = fallbackLevel
	}

	logger, closer, err := logging.New(logging.Options{
		File:     settings.LogFile,
		Level:    settings.LogLevel,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, err
	}

	p, err := store.Load(settings)
	if err != nil {
		_ = closer()
		return nil, err
	}
	logger.Debug("commands: storage opened", "path", p.Path())

	return &runtime{
		Settings: settings,
		Service: &app.Service{
			Persistence:    p,
			Catalog:        zoneinfo.Default(),
			Logger:         logger,
			Hours:          settings.Hours,
			AutosaveWindow: settings.AutosaveWindow,
			ShareBaseURL:   settings.ShareBaseURL,
		},
		Logger: logger,
		close:  closer,
	}, nil
}

// loadCLI sends warnings to stderr unless a log file or level is set.
func loadCLI() (*runtime, error) {
	return load(os.Stderr, "warn")
}

// loadUI never writes to the terminal; the alt screen owns it.
func loadUI() (*runtime, error) {
	return load(nil, "")
}
