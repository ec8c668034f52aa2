package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/cellstorm/internal/widget/datatable"
)

const defaultDemoRows = 200

// populate fills tbl from the CSV file named on the command line, or with
// generated rows when there is none.
func populate(tbl *datatable.Table, opts cliOptions) error {
	if opts.file == "" {
		return loadDemo(tbl, opts.demoRows)
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.file, err)
	}
	defer f.Close()

	if err := loadCSV(tbl, f, opts.labels); err != nil {
		return fmt.Errorf("read %s: %w", opts.file, err)
	}
	return nil
}

// loadCSV adds the columns named by the first record and one row per
// following record. With labels set the first field of each record becomes
// the row label instead of a cell.
func loadCSV(tbl *datatable.Table, r io.Reader, labels bool) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("no header record")
	}
	if err != nil {
		return err
	}
	if labels {
		if len(header) < 2 {
			return errors.New("row labels need at least two columns")
		}
		header = header[1:]
	}
	tbl.AddColumns(header...)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		var opts datatable.RowOptions
		if labels {
			opts.Label = record[0]
			record = record[1:]
		}
		cells := make([]any, len(record))
		for i, field := range record {
			cells[i] = parseField(field)
			opts.Height = max(opts.Height, strings.Count(field, "\n")+1)
		}
		if _, err := tbl.AddRowWithOptions(opts, cells...); err != nil {
			return err
		}
	}
}

// parseField converts numeric fields so that sorting compares numbers.
// Multi-line fields stay strings.
func parseField(field string) any {
	if strings.ContainsRune(field, '\n') {
		return field
	}
	if n, err := strconv.Atoi(field); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil && strings.ContainsAny(field, ".eE") {
		return f
	}
	return field
}

var (
	demoNames   = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Edsger", "Frances", "Dennis", "Radia", "Niklaus"}
	demoRegions = []string{"north", "south", "east", "west"}
)

// loadDemo adds n deterministic rows so the viewer has something to show.
func loadDemo(tbl *datatable.Table, n int) error {
	tbl.AddColumns("id", "name", "region", "score", "ratio", "note")
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range n {
		name := demoNames[rng.IntN(len(demoNames))]
		note := ""
		if i%17 == 0 {
			note = "needs review"
		}
		opts := datatable.RowOptions{Key: fmt.Sprintf("row-%d", i), Label: strconv.Itoa(i + 1)}
		if _, err := tbl.AddRowWithOptions(opts,
			i+1,
			name,
			demoRegions[rng.IntN(len(demoRegions))],
			rng.IntN(1000),
			rng.Float64(),
			note,
		); err != nil {
			return err
		}
	}
	return nil
}
