// Package core provides the value types shared by the compositor: colors,
// styles, cells and geometry. Everything here is a plain comparable value so
// it can be copied freely and used inside render cache keys.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns the attribute set with attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns the attribute set with attr removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ParseAttributes parses a space or comma separated attribute list such as
// "bold underline".
func ParseAttributes(s string) (Attribute, error) {
	var attrs Attribute
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "bold":
			attrs |= AttrBold
		case "dim":
			attrs |= AttrDim
		case "italic":
			attrs |= AttrItalic
		case "underline":
			attrs |= AttrUnderline
		case "blink":
			attrs |= AttrBlink
		case "reverse":
			attrs |= AttrReverse
		case "strike", "strikethrough":
			attrs |= AttrStrikethrough
		case "none":
		default:
			return AttrNone, fmt.Errorf("unknown attribute %q", f)
		}
	}
	return attrs, nil
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 205, G: 49, B: 49}
	ColorGreen   = Color{R: 13, G: 188, B: 121}
	ColorBlue    = Color{R: 36, G: 114, B: 200}
	ColorYellow  = Color{R: 229, G: 229, B: 16}
	ColorGray    = Color{R: 128, G: 128, B: 128}
	ColorNavy    = Color{R: 0, G: 0, B: 95}
	ColorDimGray = Color{R: 48, G: 48, B: 48}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ParseColor accepts "default", a hex color or a palette index ("idx(12)" or "12").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "default"):
		return ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		return ColorFromHex(s)
	case strings.HasPrefix(s, "idx(") && strings.HasSuffix(s, ")"):
		n, err := strconv.ParseUint(s[4:len(s)-1], 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid palette index: %s", s)
		}
		return ColorFromIndex(uint8(n)), nil
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return ColorFromIndex(uint8(n)), nil
	}
	return ColorFromHex(s)
}

// ColorFromHex creates a color from a hex string.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if the colors are identical.
func (c Color) Equals(other Color) bool {
	return c == other
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Meta is provenance stamped onto rendered cells by widgets so pointer
// events can be mapped back to the logical cell under the pointer.
// Row -1 denotes the header, Column -1 the row-label column.
type Meta struct {
	Row     int
	Column  int
	Fixed   bool
	HasCell bool
}

// Style represents the visual style of text. Style is comparable and safe
// to use as part of a map key.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
	Meta       Meta
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// WithMeta returns a new style carrying the given cell provenance.
func (s Style) WithMeta(m Meta) Style {
	s.Meta = m
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Dim returns a new style with dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Merge layers other on top of s. Non-default colors in other win,
// attributes are combined and other's meta wins when it carries a cell.
func (s Style) Merge(other Style) Style {
	result := s

	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}
	result.Attributes |= other.Attributes
	if other.Meta.HasCell || other.Meta.Fixed {
		result.Meta = other.Meta
	}

	return result
}

// Visual returns the style without provenance metadata.
func (s Style) Visual() Style {
	s.Meta = Meta{}
	return s
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() &&
		s.Background.IsDefault() &&
		s.Attributes == AttrNone
}

// Cell represents a single terminal cell.
type Cell struct {
	// Text is the grapheme cluster to display. Empty for the trailing
	// half of a wide character.
	Text string

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Text:  " ",
		Width: 1,
		Style: DefaultStyle(),
	}
}

// BlankCell returns a space cell in the given style.
func BlankCell(style Style) Cell {
	return Cell{Text: " ", Width: 1, Style: style}
}

// IsContinuation returns true if this is a continuation cell
// (second cell of a wide character).
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

// Rune returns the first rune of the cell text, or 0 for continuation cells.
func (c Cell) Rune() rune {
	for _, r := range c.Text {
		return r
	}
	return 0
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of terminal cells s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
