package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shandysiswandi/webkit/internal/pkg/clock"
	"github.com/shandysiswandi/webkit/internal/pkg/config"
	"github.com/shandysiswandi/webkit/internal/pkg/goroutine"
	"github.com/shandysiswandi/webkit/internal/pkg/imageload"
	"github.com/shandysiswandi/webkit/internal/pkg/instrument"
	"github.com/shandysiswandi/webkit/internal/pkg/number"
	"github.com/shandysiswandi/webkit/internal/pkg/storage"
	"github.com/shandysiswandi/webkit/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config    config.Config
	validator validator.Validator
	settings  *settings
	ins       instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	clock     clock.Clocker
	numbers   *number.Formatter

	// resources
	storage storage.Reader
	images  *imageload.Loader

	// modules
	registry *Registry

	closers []closer
}

// New initializes the application from the config file named by CONFIG_PATH
// and exits the process when any step fails.
func New() *App {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	app, err := NewWithConfig(cfg)
	if err != nil {
		slog.Error("failed to init application", "error", err)
		os.Exit(1)
	}
	return app
}

// NewWithConfig initializes the application from cfg. The App owns cfg and
// closes it on Stop.
func NewWithConfig(cfg config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:      ctx,
		cancel:   cancel,
		config:   cfg,
		registry: NewRegistry(),
	}
	app.initClosers()

	steps := []struct {
		name string
		fn   func() error
	}{
		{name: "settings", fn: app.initSettings},
		{name: "timezone", fn: app.initTimezone},
		{name: "instrument", fn: app.initInstrument},
		{name: "libraries", fn: app.initLibraries},
		{name: "storage", fn: app.initStorage},
		{name: "images", fn: app.initImages},
		{name: "modules", fn: app.initModules},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			app.Stop(context.Background())
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	return app, nil
}

// Registry returns the registered modules.
func (a *App) Registry() *Registry {
	return a.registry
}
