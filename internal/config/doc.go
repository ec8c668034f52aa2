// Package config loads cellstorm settings.
//
// Settings are resolved in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CELLSTORM_TABLE_FIXED_ROWS, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← cellstorm.toml or cellstorm.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: file (TOML, YAML) and environment loading into maps
//   - watcher: fsnotify based change notification for live reload
//
// # Example
//
//	[table]
//	fixed_columns = 1
//	zebra_stripes = true
//	cursor_type = "row"
//
//	[theme.cursor]
//	fg = "#000000"
//	bg = "#e5e510"
//	attrs = "bold"
package config
