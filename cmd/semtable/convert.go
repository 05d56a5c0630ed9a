package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/transform"
)

func convertCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		toStdout   bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "convert <csv...>",
		Short: "Convert delimited files into RDF",
		Long: `Convert one or more delimited files into RDF.

Inputs may be literal paths or glob patterns (** matches across
directories). Each input is written next to itself with the extension
of the configured format, unless -o or --stdout redirects it.

Examples:
  semtable convert papers.csv
  semtable convert -c mapping.json papers.csv
  semtable convert --format nt "data/**/*.csv"
  semtable convert --stdout papers.csv > papers.ttl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args, configPath, outputPath, format, toStdout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Mapping config file (JSON or YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (single input only)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write serialized output to stdout instead of files")
	cmd.Flags().StringVar(&format, "format", "", "Output format (turtle, xml, json-ld, nt), overrides the config")

	return cmd
}

func runConvert(patterns []string, configPath, outputPath, format string, toStdout bool) error {
	cfg, err := loadMapping(configPath)
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Format = format
	}

	inputs, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	if outputPath != "" && len(inputs) != 1 {
		return fmt.Errorf("-o needs exactly one input, got %d", len(inputs))
	}

	for _, input := range inputs {
		res, err := transform.Convert(input, cfg)
		if err != nil {
			return fmt.Errorf("convert %s: %w", input, err)
		}

		if toStdout {
			if _, err := os.Stdout.Write(res.Data); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			slog.Info("wrote output", "target", "stdout", "run_id", res.RunID,
				"rows", res.Rows, "triples", res.Triples, "warnings", len(res.Warnings))
			continue
		}
		out := outputPath
		if out == "" {
			out = transform.OutputPath(input, res.Format)
		}
		if err := writeOutput(out, res); err != nil {
			return err
		}
	}

	return nil
}

// loadMapping reads the mapping config, or falls back to the defaults
// when no path is given. The defaults carry no primary key, so running
// without -c against a file whose key column is not configured fails
// validation rather than producing an empty graph.
func loadMapping(path string) (*config.Mapping, error) {
	if path == "" {
		return config.DefaultMapping(), nil
	}
	return config.LoadFromFile(path)
}

// expandInputs resolves literal paths and glob patterns into a
// deduplicated list of existing files, preserving argument order.
func expandInputs(patterns []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			inputs = append(inputs, path)
		}
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input %s: %w", pattern, err)
			}
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		matched := 0
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			add(match)
			matched++
		}
		if matched == 0 {
			return nil, fmt.Errorf("no files match pattern %q", pattern)
		}
	}

	return inputs, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func writeOutput(path string, res *transform.Result) error {
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("wrote output", "path", path, "format", res.Format, "run_id", res.RunID,
		"rows", res.Rows, "triples", res.Triples, "warnings", len(res.Warnings))
	return nil
}
