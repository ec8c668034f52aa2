package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dshills/cellstorm/internal/config"
)

// cliOptions holds parsed command line flags.
type cliOptions struct {
	configPath string
	watch      bool

	cursorType   string
	fixedRows    int
	fixedColumns int
	zebra        bool
	noHeader     bool
	labels       bool
	formatter    string

	logLevel string
	logFile  string

	demoRows    int
	file        string
	showVersion bool

	// set records which flags appeared on the command line, by long name.
	set map[string]bool
}

// shorthands maps short flag names to their long form.
var shorthands = map[string]string{
	"c": "config",
	"w": "watch",
	"z": "zebra",
	"v": "version",
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("cellstorm", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the theme when the configuration file changes")
	fs.BoolVar(&opts.watch, "w", false, "Reload the theme on change (shorthand)")
	fs.StringVar(&opts.cursorType, "cursor", "", "Cursor type (cell, row, column, none)")
	fs.IntVar(&opts.fixedRows, "fixed-rows", 0, "Number of rows that do not scroll")
	fs.IntVar(&opts.fixedColumns, "fixed-columns", 0, "Number of columns that do not scroll")
	fs.BoolVar(&opts.zebra, "zebra", false, "Alternate row backgrounds")
	fs.BoolVar(&opts.zebra, "z", false, "Alternate row backgrounds (shorthand)")
	fs.BoolVar(&opts.noHeader, "no-header", false, "Hide the column labels")
	fs.BoolVar(&opts.labels, "labels", false, "Use the first CSV column as row labels")
	fs.StringVar(&opts.formatter, "format", "", "Lua script defining format(value) for cell text")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	fs.IntVar(&opts.demoRows, "demo", defaultDemoRows, "Number of generated rows when no file is given")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(output, "cellstorm - terminal data table viewer\n\n")
		fmt.Fprintf(output, "Usage: cellstorm [options] [file.csv]\n\n")
		fmt.Fprintf(output, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nKeys:\n")
		fmt.Fprintf(output, "  arrows/hjkl  move the cursor     enter/space  select\n")
		fmt.Fprintf(output, "  pgup/pgdn    scroll a page       home/end     first/last line\n")
		fmt.Fprintf(output, "  c            cycle cursor type   z            toggle zebra stripes\n")
		fmt.Fprintf(output, "  q/esc        quit                click header sort by column\n")
		fmt.Fprintf(output, "\nExamples:\n")
		fmt.Fprintf(output, "  cellstorm                      Show generated demo rows\n")
		fmt.Fprintf(output, "  cellstorm data.csv             Show a CSV file\n")
		fmt.Fprintf(output, "  cellstorm -c theme.toml -w     Live-reload the theme\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	if opts.demoRows < 0 {
		return opts, errors.New("-demo must not be negative")
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := shorthands[name]; ok {
			name = long
		}
		opts.set[name] = true
	})
	return opts, nil
}

// apply overrides configuration values with the flags that were given.
func (o cliOptions) apply(cfg *config.Config) {
	if o.set["cursor"] {
		cfg.Table.CursorType = o.cursorType
	}
	if o.set["fixed-rows"] {
		cfg.Table.FixedRows = o.fixedRows
	}
	if o.set["fixed-columns"] {
		cfg.Table.FixedColumns = o.fixedColumns
	}
	if o.set["zebra"] {
		cfg.Table.ZebraStripes = o.zebra
	}
	if o.set["no-header"] {
		cfg.Table.ShowHeader = !o.noHeader
	}
	if o.set["labels"] {
		cfg.Table.ShowRowLabels = o.labels
	}
	if o.set["format"] {
		cfg.Table.Formatter = o.formatter
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}
	if o.set["log-file"] {
		cfg.Logging.File = o.logFile
	}
}
