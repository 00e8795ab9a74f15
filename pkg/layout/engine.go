// Package layout computes node positions for an aggregated graph using a
// force-directed simulation with a fixed step budget.
package layout

import (
	"context"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ritzau/graph-explorer/pkg/logging"
	"github.com/ritzau/graph-explorer/pkg/model"
)

// Config holds the simulation constants. All values are tunable; zero values
// are replaced by the corresponding DefaultConfig field.
type Config struct {
	Spring        float64 // Hooke attraction constant applied per link
	Repulsion     float64 // inverse-square repulsion constant applied per node pair
	Damping       float64 // per-tick velocity decay, 0 < Damping < 1
	Gravity       float64 // pull toward the canvas center, proportional to displacement
	Steps         int     // fixed tick count, no convergence test
	ProgressEvery int     // ticks between progress notifications
}

// DefaultConfig returns the simulation constants used when nothing is
// configured.
func DefaultConfig() Config {
	return Config{
		Spring:        0.06,
		Repulsion:     6000,
		Damping:       0.85,
		Gravity:       0.03,
		Steps:         300,
		ProgressEvery: 30,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Spring == 0 {
		c.Spring = d.Spring
	}
	if c.Repulsion == 0 {
		c.Repulsion = d.Repulsion
	}
	if c.Damping == 0 {
		c.Damping = d.Damping
	}
	if c.Gravity == 0 {
		c.Gravity = d.Gravity
	}
	if c.Steps == 0 {
		c.Steps = d.Steps
	}
	if c.ProgressEvery == 0 {
		c.ProgressEvery = d.ProgressEvery
	}
	return c
}

// SimNode is a node with mutable position and velocity. It is owned by the
// engine for the duration of a run and read-only afterwards.
type SimNode struct {
	Node *model.Node
	Pos  r2.Vec
	Vel  r2.Vec
}

// SimLink is a relationship resolved to indices into the layout's node
// slice. Indices rather than pointers keep every link reading the same
// mutable node state without aliasing copies.
type SimLink struct {
	Rel            *model.Relationship
	Source, Target int
}

// Layout is the positioned result of a simulation run.
type Layout struct {
	Nodes  []SimNode
	Links  []SimLink
	Width  float64
	Height float64
}

// ProgressFunc receives percent complete. It is invoked synchronously
// between ticks and must return quickly.
type ProgressFunc func(percent int)

// Engine runs the force simulation. Single-threaded; a run owns its layout
// state exclusively until it returns.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given constants, filling in defaults
// for zero fields.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Run places the graph's nodes uniformly at random within the canvas bounds
// using rng, resolves relationships to links, and executes the fixed tick
// loop. The context is checked once per tick; cancellation returns the
// context error and discards the partial layout.
func (e *Engine) Run(ctx context.Context, g *model.Graph, width, height float64, rng *rand.Rand, progress ProgressFunc) (*Layout, error) {
	l := &Layout{
		Nodes:  make([]SimNode, 0, len(g.Nodes)),
		Links:  make([]SimLink, 0, len(g.Relationships)),
		Width:  width,
		Height: height,
	}

	index := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		index[node.Identity] = len(l.Nodes)
		l.Nodes = append(l.Nodes, SimNode{
			Node: node,
			Pos:  r2.Vec{X: rng.Float64() * width, Y: rng.Float64() * height},
		})
	}

	for _, rel := range g.Relationships {
		src, okSrc := index[rel.Start]
		dst, okDst := index[rel.End]
		if !okSrc || !okDst {
			logging.Warn("dropping unresolved link",
				"relationship", rel.Identity, "start", rel.Start, "end", rel.End)
			continue
		}
		l.Links = append(l.Links, SimLink{Rel: rel, Source: src, Target: dst})
	}

	logging.Debug("starting simulation",
		"nodes", len(l.Nodes), "links", len(l.Links), "steps", e.cfg.Steps)

	for step := 1; step <= e.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			logging.Warn("simulation cancelled", "step", step, "error", err)
			return nil, err
		}
		e.tick(l)
		if progress != nil && step%e.cfg.ProgressEvery == 0 {
			progress(step * 100 / e.cfg.Steps)
		}
	}

	return l, nil
}

// tick applies one simulation step: pairwise repulsion, per-link attraction,
// center gravity, then integration with velocity damping.
func (e *Engine) tick(l *Layout) {
	nodes := l.Nodes

	// Repulsion over unordered pairs. O(n²) by design; acceptable for the
	// graph sizes this tool draws.
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			delta := r2.Sub(nodes[i].Pos, nodes[j].Pos)
			dist := r2.Norm(delta)
			if dist == 0 {
				dist = 1
			}
			push := r2.Scale(e.cfg.Repulsion/(dist*dist*dist), delta)
			nodes[i].Vel = r2.Add(nodes[i].Vel, push)
			nodes[j].Vel = r2.Sub(nodes[j].Vel, push)
		}
	}

	// Hooke attraction along every link. Scaling the displacement by the
	// spring constant already yields a force proportional to distance.
	for _, link := range l.Links {
		delta := r2.Sub(nodes[link.Target].Pos, nodes[link.Source].Pos)
		pull := r2.Scale(e.cfg.Spring, delta)
		nodes[link.Source].Vel = r2.Add(nodes[link.Source].Vel, pull)
		nodes[link.Target].Vel = r2.Sub(nodes[link.Target].Vel, pull)
	}

	// Gravity toward the canvas center keeps disconnected parts from
	// drifting out of frame.
	center := r2.Vec{X: l.Width / 2, Y: l.Height / 2}
	for i := range nodes {
		disp := r2.Sub(center, nodes[i].Pos)
		nodes[i].Vel = r2.Add(nodes[i].Vel, r2.Scale(e.cfg.Gravity, disp))
	}

	// Integrate, then decay velocity. The damping is what settles the
	// system within the fixed step budget.
	for i := range nodes {
		nodes[i].Pos = r2.Add(nodes[i].Pos, nodes[i].Vel)
		nodes[i].Vel = r2.Scale(e.cfg.Damping, nodes[i].Vel)
	}
}
