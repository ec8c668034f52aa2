package config

import (
	"fmt"

	"github.com/dshills/cellstorm/internal/renderer/core"
	"github.com/dshills/cellstorm/internal/widget/datatable"
)

// StyleConfig overrides one component style. Empty fields keep the
// built-in value; "default" selects the terminal default color.
type StyleConfig struct {
	Foreground string `toml:"fg" yaml:"fg"`
	Background string `toml:"bg" yaml:"bg"`
	Attributes string `toml:"attrs" yaml:"attrs"`
}

// ThemeConfig holds per-component style overrides for the table.
type ThemeConfig struct {
	Base         StyleConfig `toml:"base" yaml:"base"`
	Header       StyleConfig `toml:"header" yaml:"header"`
	Fixed        StyleConfig `toml:"fixed" yaml:"fixed"`
	Cursor       StyleConfig `toml:"cursor" yaml:"cursor"`
	FixedCursor  StyleConfig `toml:"fixed_cursor" yaml:"fixed_cursor"`
	HeaderCursor StyleConfig `toml:"header_cursor" yaml:"header_cursor"`
	HeaderHover  StyleConfig `toml:"header_hover" yaml:"header_hover"`
	Hover        StyleConfig `toml:"hover" yaml:"hover"`
	EvenRow      StyleConfig `toml:"even_row" yaml:"even_row"`
	OddRow       StyleConfig `toml:"odd_row" yaml:"odd_row"`
}

// Styles applies the overrides to base.
func (t ThemeConfig) Styles(base datatable.Styles) (datatable.Styles, error) {
	components := []struct {
		name  string
		cfg   StyleConfig
		style *core.Style
	}{
		{"base", t.Base, &base.Base},
		{"header", t.Header, &base.Header},
		{"fixed", t.Fixed, &base.Fixed},
		{"cursor", t.Cursor, &base.Cursor},
		{"fixed_cursor", t.FixedCursor, &base.FixedCursor},
		{"header_cursor", t.HeaderCursor, &base.HeaderCursor},
		{"header_hover", t.HeaderHover, &base.HeaderHover},
		{"hover", t.Hover, &base.Hover},
		{"even_row", t.EvenRow, &base.EvenRow},
		{"odd_row", t.OddRow, &base.OddRow},
	}

	for _, c := range components {
		style, err := c.cfg.apply(*c.style)
		if err != nil {
			return datatable.Styles{}, fmt.Errorf("theme.%s: %w", c.name, err)
		}
		*c.style = style
	}
	return base, nil
}

func (s StyleConfig) apply(style core.Style) (core.Style, error) {
	if s.Foreground != "" {
		fg, err := core.ParseColor(s.Foreground)
		if err != nil {
			return style, &ValidationError{Path: "fg", Message: err.Error(), Value: s.Foreground}
		}
		style.Foreground = fg
	}
	if s.Background != "" {
		bg, err := core.ParseColor(s.Background)
		if err != nil {
			return style, &ValidationError{Path: "bg", Message: err.Error(), Value: s.Background}
		}
		style.Background = bg
	}
	if s.Attributes != "" {
		attrs, err := core.ParseAttributes(s.Attributes)
		if err != nil {
			return style, &ValidationError{Path: "attrs", Message: err.Error(), Value: s.Attributes}
		}
		style.Attributes = attrs
	}
	return style, nil
}
