// Package explorer composes aggregation, layout, and rendering into the
// data-to-pixels pipeline behind the CLI.
package explorer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ritzau/graph-explorer/pkg/aggregate"
	"github.com/ritzau/graph-explorer/pkg/graph"
	"github.com/ritzau/graph-explorer/pkg/layout"
	"github.com/ritzau/graph-explorer/pkg/logging"
	"github.com/ritzau/graph-explorer/pkg/model"
	"github.com/ritzau/graph-explorer/pkg/render"
)

// Pipeline holds everything needed to turn records into a rendered scene.
type Pipeline struct {
	Width   int
	Height  int
	Padding float64
	Seed    int64 // 0 seeds from the wall clock
	Layout  layout.Config
	Render  render.Options

	// Progress, when set, receives layout percent complete.
	Progress layout.ProgressFunc
}

// Stats summarizes a pipeline run for reporting.
type Stats struct {
	Records       int
	Nodes         int
	Relationships int
	Components    int
	Duration      time.Duration
}

// Scene is the output of one pipeline run.
type Scene struct {
	Graph    *model.Graph
	Layout   *layout.Layout
	Renderer *render.Renderer
	Stats    Stats
}

// NodeColors exposes the node type color map for the legend.
func (s *Scene) NodeColors() render.ColorMap { return s.Renderer.NodeColors() }

// RelationshipColors exposes the relationship type color map for the legend.
func (s *Scene) RelationshipColors() render.ColorMap { return s.Renderer.RelationshipColors() }

// SavePNG writes the rendered scene to path.
func (s *Scene) SavePNG(path string) error { return s.Renderer.SavePNG(path) }

// Run executes aggregate, layout, scale to fit, and render over records.
// Errors from any stage come back wrapped once; callers print them as a
// single status line.
func (p *Pipeline) Run(ctx context.Context, records []model.Record) (*Scene, error) {
	start := time.Now()

	g := aggregate.Aggregate(records)
	rg := graph.Build(g)

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	engine := layout.NewEngine(p.Layout)
	l, err := engine.Run(ctx, g, float64(p.Width), float64(p.Height), rng, p.Progress)
	if err != nil {
		return nil, fmt.Errorf("computing layout: %w", err)
	}
	l.ScaleToFit(float64(p.Width), float64(p.Height), p.Padding)

	renderer, err := render.NewRenderer(p.Width, p.Height, p.Render)
	if err != nil {
		return nil, fmt.Errorf("preparing renderer: %w", err)
	}
	renderer.SetDegrees(rg.Degrees())
	renderer.AssignColors(g)
	renderer.Render(l)

	stats := Stats{
		Records:       len(records),
		Nodes:         len(g.Nodes),
		Relationships: len(g.Relationships),
		Components:    rg.ComponentCount(),
		Duration:      time.Since(start),
	}

	logging.InfoContext(ctx, "pipeline complete",
		"nodes", stats.Nodes, "relationships", stats.Relationships,
		"components", stats.Components,
		"durationMs", stats.Duration.Milliseconds())

	return &Scene{Graph: g, Layout: l, Renderer: renderer, Stats: stats}, nil
}
