// Package app provides the main application structure and coordination
// for cellstorm. It wires the data table, the compositor, the message
// pump and the configuration together and runs the terminal event loop.
package app

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/cellstorm/internal/config"
	"github.com/dshills/cellstorm/internal/config/watcher"
	"github.com/dshills/cellstorm/internal/event"
	"github.com/dshills/cellstorm/internal/renderer/backend"
	"github.com/dshills/cellstorm/internal/renderer/compositor"
	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/script"
	"github.com/dshills/cellstorm/internal/widget/datatable"
)

// tableLayer names the compositor layer holding the table.
const tableLayer = "table"

// Application is the central coordinator for all cellstorm components.
// Everything except the config watcher runs on the goroutine calling Run.
type Application struct {
	// Core infrastructure
	cfg     *config.Config
	logger  *Logger
	pump    *event.Pump
	watcher *watcher.Watcher
	metrics *Metrics

	// Rendering
	backend    backend.Backend
	compositor *compositor.Compositor
	layer      *compositor.Layer
	table      *datatable.Table
	formatter  *script.Formatter

	// Interaction state
	buttonDown  bool
	zebra       bool
	sortColumn  datatable.ColumnKey
	sortReverse bool
	sorted      bool

	// State
	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// Backend is the terminal to draw on. Required.
	Backend backend.Backend

	// Config holds the merged settings. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is the file Config was loaded from.
	ConfigPath string

	// WatchConfig reloads the theme when ConfigPath changes.
	WatchConfig bool

	// Logger receives application logs. Nil discards them.
	Logger *Logger

	// MaxFPS bounds the frame rate. Zero uses the compositor default;
	// a negative value disables frame limiting.
	MaxFPS int
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}

	app := &Application{
		cfg:     opts.Config,
		logger:  opts.Logger,
		backend: opts.Backend,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
		opts:    opts,
	}
	if app.cfg == nil {
		app.cfg = config.Default()
	}
	if app.logger == nil {
		app.logger = NullLogger
	}

	if err := app.bootstrap(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	styles, err := app.cfg.Theme.Styles(datatable.DefaultStyles())
	if err != nil {
		return NewOperationError("apply", "theme", err)
	}

	// 1. Message pump
	app.pump = event.NewPump(
		event.WithErrorHandler(func(err error) {
			app.logger.WithComponent("pump").Error("%v", err)
		}),
		event.WithWakeFunc(app.wake),
	)

	// 2. Compositor
	copts := compositor.DefaultOptions()
	switch {
	case app.opts.MaxFPS > 0:
		copts.MaxFPS = app.opts.MaxFPS
	case app.opts.MaxFPS < 0:
		copts.MaxFPS = 0
	}
	copts.Background = styles.Base
	app.compositor = compositor.New(app.backend, copts)
	app.compositor.SetLogger(app.logger.WithComponent("compositor"))

	// 3. Table
	width, height := app.backend.Size()
	app.table = datatable.New(width, height, app.cfg.TableOptions())
	app.table.SetStyles(styles)
	app.table.SetPoster(app.pump)
	app.table.SetLogger(app.logger.WithComponent("datatable"))
	app.zebra = app.cfg.Table.ZebraStripes
	if path := app.cfg.Table.Formatter; path != "" {
		if err := app.loadFormatter(path); err != nil {
			return err
		}
	}

	app.layer = app.compositor.AddLayer(tableLayer, 0, core.Region{Width: width, Height: height}, app.table)
	app.table.SetDamageSink(app.layer)
	app.pump.OnIdle(app.table.OnIdle)

	// 4. Subscriptions
	if err := app.subscribe(); err != nil {
		return err
	}

	// 5. Config watcher
	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		if err := app.watchConfig(app.opts.ConfigPath); err != nil {
			return err
		}
	}

	app.logger.Debug("bootstrap complete: %dx%d", width, height)
	return nil
}

// loadFormatter installs the Lua cell formatter at path. Script failures
// fall back to the built-in formatter.
func (app *Application) loadFormatter(path string) error {
	log := app.logger.WithComponent("script")
	f, err := script.LoadFormatter(path,
		script.WithFallback(datatable.DefaultFormatter),
		script.WithErrorHandler(func(err error) {
			log.Warn("%s: %v", path, err)
		}),
	)
	if err != nil {
		return NewOperationError("load", path, err).WithContext("formatter")
	}
	app.formatter = f
	app.table.SetFormatter(f.Format)
	log.Debug("formatter loaded from %s", path)
	return nil
}

// watchConfig reloads the theme whenever path changes on disk.
func (app *Application) watchConfig(path string) error {
	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		return NewComponentError("watcher", "start", err)
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return NewComponentError("watcher", "watch "+path, err)
	}
	w.OnChange(app.onConfigFileChanged)
	app.watcher = w
	return nil
}

// wake interrupts a blocked PollEvent so posted messages are handled
// promptly.
func (app *Application) wake() {
	if app.running.Load() {
		app.backend.PostEvent(backend.Event{Type: backend.EventWake})
	}
}

// Table returns the data table. Rows and columns may be added before Run.
func (app *Application) Table() *datatable.Table {
	return app.table
}

// Pump returns the message pump.
func (app *Application) Pump() *event.Pump {
	return app.pump
}

// Compositor returns the compositor.
func (app *Application) Compositor() *compositor.Compositor {
	return app.compositor
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown asks a running event loop to return.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
	})
}

// Close stops the event loop and releases the config watcher and the
// formatter script.
func (app *Application) Close() error {
	app.Shutdown()

	var errs []error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, NewComponentError("watcher", "close", err))
		}
	}
	if app.formatter != nil {
		if err := app.formatter.Close(); err != nil {
			errs = append(errs, NewComponentError("script", "close", err))
		}
	}
	return errors.Join(errs...)
}
