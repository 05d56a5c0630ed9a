package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semtable/inspect"
)

func initCmd() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init <csv>",
		Short: "Inspect a delimited file and write a starter mapping config",
		Long: `Inspect a delimited file and write a suggested mapping config.

The suggestion sniffs the delimiter, proposes a primary key column,
flags multivalued columns, infers per-column datatypes, and maps
well-known column names onto vocabulary properties. It is a starting
point: review the file and adjust before converting.

The config is written as JSON unless the output path ends in .yaml or
.yml.

Examples:
  semtable init papers.csv
  semtable init papers.csv -o mapping.yaml --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Config path to write (default <input>.mapping.json)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(input, outputPath string, force bool) error {
	cfg, err := inspect.Suggest(input)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}

	out := outputPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".mapping.json"
	}
	if !force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", out)
		}
	}

	if err := cfg.SaveToFile(out); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	slog.Info("wrote mapping config", "path", out, "primary_key", cfg.PrimaryKey)
	if cfg.PrimaryKey == "" {
		slog.Warn("no primary key candidate found, set primary_key before converting", "input", input)
	}
	return nil
}
