package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cellstorm/internal/config/loader"
	"github.com/dshills/cellstorm/internal/widget/datatable"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CELLSTORM_"

// Config holds every cellstorm setting.
type Config struct {
	Table   TableConfig   `toml:"table" yaml:"table"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// TableConfig configures the data table.
type TableConfig struct {
	ShowHeader    bool   `toml:"show_header" yaml:"show_header"`
	HeaderHeight  int    `toml:"header_height" yaml:"header_height"`
	ShowRowLabels bool   `toml:"show_row_labels" yaml:"show_row_labels"`
	ShowCursor    bool   `toml:"show_cursor" yaml:"show_cursor"`
	CursorType    string `toml:"cursor_type" yaml:"cursor_type"`
	FixedRows     int    `toml:"fixed_rows" yaml:"fixed_rows"`
	FixedColumns  int    `toml:"fixed_columns" yaml:"fixed_columns"`
	ZebraStripes  bool   `toml:"zebra_stripes" yaml:"zebra_stripes"`
	// Formatter names a Lua script defining format(value). Empty uses the
	// built-in formatter.
	Formatter string `toml:"formatter" yaml:"formatter"`
}

// CacheConfig sizes the render caches, in entries.
type CacheConfig struct {
	CellEntries int `toml:"cell_entries" yaml:"cell_entries"`
	RowEntries  int `toml:"row_entries" yaml:"row_entries"`
	LineEntries int `toml:"line_entries" yaml:"line_entries"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty discards it, since the terminal is
	// owned by the UI.
	File string `toml:"file" yaml:"file"`
}

// settingPaths lists every scalar setting reachable from the environment.
var settingPaths = []string{
	"table.show_header",
	"table.header_height",
	"table.show_row_labels",
	"table.show_cursor",
	"table.cursor_type",
	"table.fixed_rows",
	"table.fixed_columns",
	"table.zebra_stripes",
	"table.formatter",
	"cache.cell_entries",
	"cache.row_entries",
	"cache.line_entries",
	"logging.level",
	"logging.file",
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := datatable.DefaultOptions()
	return &Config{
		Table: TableConfig{
			ShowHeader:    opts.ShowHeader,
			HeaderHeight:  opts.HeaderHeight,
			ShowRowLabels: opts.ShowRowLabels,
			ShowCursor:    opts.ShowCursor,
			CursorType:    opts.CursorType.String(),
			FixedRows:     opts.FixedRows,
			FixedColumns:  opts.FixedColumns,
			ZebraStripes:  opts.ZebraStripes,
		},
		Cache: CacheConfig{
			CellEntries: opts.CellCacheSize,
			RowEntries:  opts.RowCacheSize,
			LineEntries: opts.LineCacheSize,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the file at path (skipped
// when path is empty) and CELLSTORM_* environment variables.
func Load(path string) (*Config, error) {
	return LoadWith(loader.DefaultFS(), path, loader.NewEnvLoader(EnvPrefix, settingPaths...))
}

// LoadWith is Load with an explicit file system and environment source.
// A nil env skips environment overrides.
func LoadWith(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		if _, err := fsys.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
			}
			return nil, err
		}
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if env != nil {
		data, err := env.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged settings map over c. The map is re-encoded as
// TOML so one strict decoder handles values from every source.
func (c *Config) apply(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return &ValidationError{Path: "config", Message: "unknown setting", Value: strings.TrimSpace(strict.String())}
		}
		return &ValidationError{Path: "config", Message: err.Error(), Value: string(data)}
	}
	return nil
}

// Validate checks every setting and reports all failures together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Table.HeaderHeight >= 1, "table.header_height", "must be at least 1", c.Table.HeaderHeight)
	check(c.Table.FixedRows >= 0, "table.fixed_rows", "must not be negative", c.Table.FixedRows)
	check(c.Table.FixedColumns >= 0, "table.fixed_columns", "must not be negative", c.Table.FixedColumns)
	_, err := datatable.ParseCursorType(c.Table.CursorType)
	check(err == nil, "table.cursor_type", "must be cell, row, column or none", c.Table.CursorType)

	check(c.Cache.CellEntries >= 1, "cache.cell_entries", "must be at least 1", c.Cache.CellEntries)
	check(c.Cache.RowEntries >= 1, "cache.row_entries", "must be at least 1", c.Cache.RowEntries)
	check(c.Cache.LineEntries >= 1, "cache.line_entries", "must be at least 1", c.Cache.LineEntries)

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		check(false, "logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}

	if _, err := c.Theme.Styles(datatable.DefaultStyles()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TableOptions converts the table and cache settings to table options.
// The configuration must be valid.
func (c *Config) TableOptions() datatable.Options {
	cursor, _ := datatable.ParseCursorType(c.Table.CursorType)
	return datatable.Options{
		ShowHeader:    c.Table.ShowHeader,
		ShowRowLabels: c.Table.ShowRowLabels,
		ShowCursor:    c.Table.ShowCursor,
		ZebraStripes:  c.Table.ZebraStripes,
		HeaderHeight:  c.Table.HeaderHeight,
		FixedRows:     c.Table.FixedRows,
		FixedColumns:  c.Table.FixedColumns,
		CursorType:    cursor,
		CellCacheSize: c.Cache.CellEntries,
		RowCacheSize:  c.Cache.RowEntries,
		LineCacheSize: c.Cache.LineEntries,
	}
}
