package datatable

import "github.com/dshills/cellstorm/internal/renderer/core"

// Styles holds the component styles the table paints with.
type Styles struct {
	Base         core.Style
	Header       core.Style
	Fixed        core.Style
	Cursor       core.Style
	FixedCursor  core.Style
	HeaderCursor core.Style
	HeaderHover  core.Style
	Hover        core.Style
	EvenRow      core.Style
	OddRow       core.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Base:         core.DefaultStyle(),
		Header:       core.NewStyle(core.ColorWhite).WithBackground(core.ColorBlue).Bold(),
		Fixed:        core.NewStyle(core.ColorWhite).WithBackground(core.ColorNavy),
		Cursor:       core.NewStyle(core.ColorBlack).WithBackground(core.ColorYellow),
		FixedCursor:  core.NewStyle(core.ColorBlack).WithBackground(core.ColorFromRGB(206, 206, 14)),
		HeaderCursor: core.NewStyle(core.ColorBlack).WithBackground(core.ColorFromRGB(183, 183, 12)),
		HeaderHover:  core.DefaultStyle().WithBackground(core.ColorFromRGB(69, 69, 5)),
		Hover:        core.DefaultStyle().WithBackground(core.ColorFromRGB(46, 46, 3)),
		EvenRow:      core.DefaultStyle().WithBackground(core.ColorDimGray),
		OddRow:       core.DefaultStyle(),
	}
}
