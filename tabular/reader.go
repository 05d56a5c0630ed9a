// Package tabular loads delimited text files into fully materialized,
// header-indexed string tables. Values are never parsed beyond text; typing
// is a downstream concern.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoHeader is returned when the input ends before a header row is found.
var ErrNoHeader = errors.New("tabular: no header row")

// Options controls how an input file is tokenized.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// Quote wraps fields that contain the delimiter or line breaks.
	// Defaults to '"'. Non-default quotes are handled by the fallback
	// scanner rather than encoding/csv.
	Quote rune

	// Escape, when non-zero, makes the following character literal.
	// There is no default escape.
	Escape rune

	// SkipRows is the number of raw lines discarded before the header.
	SkipRows int
}

// DefaultOptions returns the options for a conventional comma-separated file.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Quote: '"'}
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	return o
}

// Table is an immutable in-memory row table. Every row is padded or truncated
// to the header width, and missing columns read as empty strings.
type Table struct {
	Columns []string

	rows  [][]string
	index map[string]int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at (row, column). Unknown columns and out-of-range
// rows read as the empty string.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	i, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.rows[row][i]
}

// ReadFile loads path into a Table.
func ReadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read loads a delimited stream into a Table. The first record after
// Options.SkipRows raw lines is the header; header cells are trimmed and a
// leading UTF-8 BOM is stripped.
func Read(r io.Reader, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	br := bufio.NewReader(r)
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNoHeader
			}
			return nil, fmt.Errorf("skip leading rows: %w", err)
		}
	}

	records, err := readRecords(br, opts)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		columns[i] = h
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(rec) {
				row[i] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, rows: rows, index: index}, nil
}

// readRecords tokenizes the stream. The conventional double-quote dialect
// goes through encoding/csv; custom quote or escape characters use the
// fallback scanner.
func readRecords(r io.Reader, opts Options) ([][]string, error) {
	if opts.Quote != '"' || opts.Escape != 0 {
		return scanRecords(r, opts)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited input: %w", err)
	}
	return records, nil
}
