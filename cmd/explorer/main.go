package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/ritzau/graph-explorer/pkg/config"
	"github.com/ritzau/graph-explorer/pkg/explorer"
	"github.com/ritzau/graph-explorer/pkg/layout"
	"github.com/ritzau/graph-explorer/pkg/logging"
	"github.com/ritzau/graph-explorer/pkg/model"
	"github.com/ritzau/graph-explorer/pkg/output"
	"github.com/ritzau/graph-explorer/pkg/render"
	"github.com/ritzau/graph-explorer/pkg/watcher"
)

func main() {
	flags := pflag.NewFlagSet("explorer", pflag.ExitOnError)
	flags.String("input", "graph.json", "Path to the query result records (JSON array)")
	flags.String("output", "graph.png", "Path of the rendered PNG")
	flags.Int("width", 1200, "Canvas width in pixels")
	flags.Int("height", 900, "Canvas height in pixels")
	flags.Float64("padding", 40, "Viewport padding in pixels")
	flags.Int("steps", 0, "Simulation step count (0 = default)")
	flags.Float64("spring", 0, "Spring constant (0 = default)")
	flags.Float64("repulsion", 0, "Repulsion constant (0 = default)")
	flags.Float64("damping", 0, "Velocity damping factor (0 = default)")
	flags.Float64("gravity", 0, "Center gravity constant (0 = default)")
	flags.Int64("seed", 0, "Random seed for initial placement (0 = time-based)")
	flags.Bool("watch", false, "Re-render whenever the input file changes")
	flags.Bool("no-labels", false, "Skip node captions")
	flags.CountP("verbose", "v", "Increase log verbosity")
	flags.Bool("json-logs", false, "Emit logs as JSON")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		// Single status line at the pipeline boundary; detail is in the logs.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose > 0 {
		level = slog.LevelDebug
	}
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := runOnce(ctx, cfg); err != nil {
		if !cfg.Watch {
			return err
		}
		// In watch mode a bad dataset is recoverable: report and wait for
		// the next change.
		logging.Error("render failed", "error", err)
	}

	if !cfg.Watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(cfg.Input)
	if err != nil {
		return fmt.Errorf("setting up watch mode: %w", err)
	}
	defer fw.Close()

	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("setting up watch mode: %w", err)
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 500*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-debouncer.Output():
			if !ok {
				return nil
			}
			if err := runOnce(ctx, cfg); err != nil {
				logging.Error("render failed", "error", err)
			}
		}
	}
}

func runOnce(ctx context.Context, cfg *config.Config) error {
	ctx = logging.WithRunID(ctx, uuid.NewString())

	records, err := readRecords(cfg.Input)
	if err != nil {
		return fmt.Errorf("could not load graph data: %w", err)
	}

	pipeline := &explorer.Pipeline{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Padding: cfg.Padding,
		Seed:    cfg.Seed,
		Layout: layout.Config{
			Spring:    cfg.Spring,
			Repulsion: cfg.Repulsion,
			Damping:   cfg.Damping,
			Gravity:   cfg.Gravity,
			Steps:     cfg.Steps,
		},
		Render: render.Options{
			ShowLabels: !cfg.NoLabels,
		},
		Progress: func(percent int) {
			logging.DebugContext(ctx, "layout progress", "percent", percent)
		},
	}

	scene, err := pipeline.Run(ctx, records)
	if err != nil {
		return err
	}

	if err := scene.SavePNG(cfg.Output); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	output.PrintSummary(scene, cfg.Output)
	return nil
}

// readRecords decodes a JSON array of query result records.
func readRecords(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []model.Record
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}
