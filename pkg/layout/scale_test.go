package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ritzau/graph-explorer/pkg/model"
)

func layoutAt(positions ...r2.Vec) *Layout {
	l := &Layout{}
	for i, pos := range positions {
		l.Nodes = append(l.Nodes, SimNode{
			Node: &model.Node{Identity: string(rune('a' + i))},
			Pos:  pos,
		})
	}
	return l
}

func TestScaleToFitBounds(t *testing.T) {
	l := layoutAt(
		r2.Vec{X: -100, Y: 50},
		r2.Vec{X: 300, Y: 700},
		r2.Vec{X: 80, Y: 220},
	)

	l.ScaleToFit(800, 600, 40)

	for i, n := range l.Nodes {
		if n.Pos.X < 40 || n.Pos.X > 760 || n.Pos.Y < 40 || n.Pos.Y > 560 {
			t.Errorf("Node %d outside padded viewport: %v", i, n.Pos)
		}
	}

	// Uniform scale: the tighter axis spans the full padded dimension.
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range l.Nodes {
		minX = math.Min(minX, n.Pos.X)
		maxX = math.Max(maxX, n.Pos.X)
		minY = math.Min(minY, n.Pos.Y)
		maxY = math.Max(maxY, n.Pos.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if math.Abs(spanX-720) > 1e-9 && math.Abs(spanY-520) > 1e-9 {
		t.Errorf("Neither axis fills the padded viewport: spanX=%g spanY=%g", spanX, spanY)
	}
}

func TestScaleToFitIdempotent(t *testing.T) {
	l := layoutAt(
		r2.Vec{X: 13, Y: 217},
		r2.Vec{X: 417, Y: 32},
		r2.Vec{X: 188, Y: 399},
	)

	l.ScaleToFit(800, 600, 40)

	before := make([]r2.Vec, len(l.Nodes))
	for i, n := range l.Nodes {
		before[i] = n.Pos
	}

	l.ScaleToFit(800, 600, 40)

	const eps = 1e-9
	for i, n := range l.Nodes {
		if math.Abs(n.Pos.X-before[i].X) > eps || math.Abs(n.Pos.Y-before[i].Y) > eps {
			t.Errorf("Node %d moved on second fit: %v -> %v", i, before[i], n.Pos)
		}
	}
}

func TestScaleToFitNoNodes(t *testing.T) {
	l := &Layout{}
	l.ScaleToFit(800, 600, 40) // must not panic or divide by zero
}

func TestScaleToFitCoincidentNodes(t *testing.T) {
	l := layoutAt(
		r2.Vec{X: 100, Y: 100},
		r2.Vec{X: 100, Y: 100},
		r2.Vec{X: 100, Y: 100},
	)

	l.ScaleToFit(800, 600, 40)

	for i, n := range l.Nodes {
		if n.Pos.X != 100 || n.Pos.Y != 100 {
			t.Errorf("Node %d moved in degenerate fit: %v", i, n.Pos)
		}
	}
}

func TestScaleToFitCollapsedAxis(t *testing.T) {
	// Zero height bounding box: all nodes on one horizontal line.
	l := layoutAt(
		r2.Vec{X: 0, Y: 50},
		r2.Vec{X: 200, Y: 50},
	)

	l.ScaleToFit(800, 600, 40)

	if l.Nodes[0].Pos.X != 0 || l.Nodes[1].Pos.X != 200 {
		t.Error("Collapsed-axis layout must be left unchanged")
	}
}
