package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/queueplan/internal/config"
	"github.com/specialistvlad/queueplan/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	registry *registry.Registry
	loader   config.Loader
	config   *Config
}

// NewApp is the constructor for the main application. Logs go to outW. It
// returns a fully initialized App instance with its own isolated logger and
// plugin registry; when no modules are given the built-in plugins are used.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All plugin modules registered.", "count", len(modules), "kinds", reg.Kinds())

	return &App{
		logger:   logger,
		registry: reg,
		loader:   loader,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
