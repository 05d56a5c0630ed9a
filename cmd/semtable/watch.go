package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semtable/transform"
	"github.com/c360studio/semtable/watch"
)

func watchCmd() *cobra.Command {
	var (
		configPath string
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <csv...>",
		Short: "Convert files and re-convert them on change",
		Long: `Convert the inputs once, then keep watching them and re-convert
whatever changes. When a mapping config is given it is watched too, and
a config change re-converts every input. Runs until interrupted.

Examples:
  semtable watch papers.csv
  semtable watch -c mapping.json --debounce 2s "data/*.csv"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, configPath, debounce)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Mapping config file (JSON or YAML)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "How long to collect changes before re-converting")

	return cmd
}

func runWatch(patterns []string, configPath string, debounce time.Duration) error {
	printBanner()

	inputs, err := expandInputs(patterns)
	if err != nil {
		return err
	}

	// First pass before watching, with the same failure behavior as
	// a plain convert run.
	cfg, err := loadMapping(configPath)
	if err != nil {
		return err
	}
	for _, input := range inputs {
		res, err := transform.Convert(input, cfg)
		if err != nil {
			return fmt.Errorf("convert %s: %w", input, err)
		}
		if err := writeOutput(transform.OutputPath(input, res.Format), res); err != nil {
			return err
		}
	}

	w, err := watch.New(inputs, configPath, watch.Options{Debounce: debounce})
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Stop(); err != nil {
			slog.Error("failed to stop watcher", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return nil
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			reconvert(batch, configPath)
		}
	}
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║            Semtable v" + Version + "                    ║")
	fmt.Println("║          Tabular to RDF Converter             ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}

// reconvert runs one watch batch. Failures are logged rather than
// fatal so a bad intermediate save does not kill the watch loop.
func reconvert(batch []string, configPath string) {
	cfg, err := loadMapping(configPath)
	if err != nil {
		slog.Error("mapping config unusable, keeping previous outputs", "error", err)
		return
	}
	for _, input := range batch {
		res, err := transform.Convert(input, cfg)
		if err != nil {
			slog.Error("re-conversion failed", "input", input, "error", err)
			continue
		}
		if err := writeOutput(transform.OutputPath(input, res.Format), res); err != nil {
			slog.Error("failed to write output", "input", input, "error", err)
		}
	}
}
