package app

import (
	"github.com/dshills/cellstorm/internal/config"
	"github.com/dshills/cellstorm/internal/config/watcher"
	"github.com/dshills/cellstorm/internal/event"
	"github.com/dshills/cellstorm/internal/widget/datatable"
)

// TopicConfigReloaded is posted after the configuration file changed and
// parsed cleanly.
const TopicConfigReloaded event.Topic = "config.reloaded"

// ConfigReloaded carries a freshly loaded configuration to the UI
// goroutine.
type ConfigReloaded struct {
	Config *config.Config
	Styles datatable.Styles
}

func (ConfigReloaded) Topic() event.Topic { return TopicConfigReloaded }

// subscribe registers the application's message handlers.
func (app *Application) subscribe() error {
	subs := []struct {
		pattern event.Topic
		handler event.Handler
	}{
		{"datatable.**", app.traceTableMessage},
		{datatable.TopicHeaderSelected, app.onHeaderSelected},
		{TopicConfigReloaded, app.onConfigReloaded},
	}

	for _, s := range subs {
		if _, err := app.pump.Subscribe(s.pattern, s.handler); err != nil {
			return NewComponentError("pump", "subscribe "+s.pattern.String(), err)
		}
	}
	return nil
}

func (app *Application) traceTableMessage(msg event.Message) error {
	app.logger.WithComponent("datatable").Debug("%s %+v", msg.Topic(), msg)
	return nil
}

// onHeaderSelected sorts by the clicked column. Clicking the same column
// again reverses the order.
func (app *Application) onHeaderSelected(msg event.Message) error {
	m, ok := msg.(datatable.HeaderSelected)
	if !ok {
		return nil
	}

	if app.sorted && app.sortColumn == m.ColumnKey {
		app.sortReverse = !app.sortReverse
	} else {
		app.sortColumn = m.ColumnKey
		app.sortReverse = false
		app.sorted = true
	}

	if err := app.table.Sort(app.sortReverse, m.ColumnKey); err != nil {
		return NewOperationError("sort", m.Label, err)
	}
	app.logger.Info("sorted by %q reverse=%v", m.Label, app.sortReverse)
	return nil
}

// onConfigReloaded applies a reloaded configuration. Only settings that can
// change without rebuilding the table are honoured.
func (app *Application) onConfigReloaded(msg event.Message) error {
	m, ok := msg.(ConfigReloaded)
	if !ok || m.Config == nil {
		return nil
	}

	app.cfg = m.Config
	app.logger.SetLevel(ParseLogLevel(m.Config.Logging.Level))
	app.zebra = m.Config.Table.ZebraStripes
	app.table.SetZebraStripes(app.zebra)
	app.table.SetStyles(m.Styles)
	app.logger.Info("configuration reloaded")
	return nil
}

// onConfigFileChanged runs on the watcher goroutine. It parses the file
// there and hands the result to the UI goroutine through the pump.
func (app *Application) onConfigFileChanged(ev watcher.Event) {
	log := app.logger.WithComponent("config")
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		log.Debug("%s %s ignored", ev.Path, ev.Op)
		return
	}

	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		log.Warn("%v", NewOperationError("reload", app.opts.ConfigPath, err))
		return
	}
	styles, err := cfg.Theme.Styles(datatable.DefaultStyles())
	if err != nil {
		log.Warn("%v", NewOperationError("reload", app.opts.ConfigPath, err).WithContext("theme"))
		return
	}
	app.pump.Post(ConfigReloaded{Config: cfg, Styles: styles})
}
