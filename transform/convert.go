package transform

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/graph"
	"github.com/c360studio/semtable/tabular"
)

// Result summarizes one conversion run.
type Result struct {
	RunID    string
	Format   graph.Format
	Rows     int
	Triples  int
	Warnings []string
	Data     []byte
}

// Convert runs the full pipeline for one input file: read the table,
// transform it under the mapping, and serialize to the configured
// format. It either returns the complete serialized output or an error
// before any output is produced.
func Convert(inputPath string, cfg *config.Mapping) (*Result, error) {
	runID := uuid.NewString()

	format, err := graph.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	table, err := tabular.ReadFile(inputPath, dialect(cfg))
	if err != nil {
		return nil, err
	}

	engine, err := New(cfg, table)
	if err != nil {
		return nil, err
	}

	slog.Info("converting",
		"run_id", runID,
		"input", inputPath,
		"rows", table.Len(),
		"format", format)

	g, err := engine.Run()
	if err != nil {
		return nil, err
	}

	data, err := g.Serialize(format)
	if err != nil {
		return nil, err
	}

	warnings := engine.Warnings()
	for _, w := range warnings {
		slog.Warn(w, "run_id", runID)
	}
	slog.Info("conversion complete",
		"run_id", runID,
		"rows", engine.Rows(),
		"triples", g.Len(),
		"warnings", len(warnings))

	return &Result{
		RunID:    runID,
		Format:   format,
		Rows:     engine.Rows(),
		Triples:  g.Len(),
		Warnings: warnings,
		Data:     data,
	}, nil
}

// OutputPath derives the default output file for an input path: same
// directory and stem, extension taken from the format.
func OutputPath(inputPath string, format graph.Format) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + format.Extension()
}

// dialect maps the mapping's CSV settings onto reader options. The
// mapping validator has already pinned these fields to single runes.
func dialect(cfg *config.Mapping) tabular.Options {
	opts := tabular.DefaultOptions()
	if cfg.CSVDelimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(cfg.CSVDelimiter)
	}
	if cfg.QuoteChar != "" {
		opts.Quote, _ = utf8.DecodeRuneInString(cfg.QuoteChar)
	}
	if cfg.EscapeChar != "" {
		opts.Escape, _ = utf8.DecodeRuneInString(cfg.EscapeChar)
	}
	opts.SkipRows = cfg.SkipRows
	return opts
}
