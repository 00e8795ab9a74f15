package graph

import (
	"testing"

	"github.com/ritzau/graph-explorer/pkg/model"
)

func TestNewRelationshipGraph(t *testing.T) {
	rg := New()
	if rg == nil {
		t.Fatal("New() returned nil")
	}
	if rg.NodeCount() != 0 {
		t.Errorf("New graph should have 0 nodes, got %d", rg.NodeCount())
	}
}

func TestAddRelationship(t *testing.T) {
	rg := New()
	rg.AddRelationship("a", "b")

	if rg.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", rg.NodeCount())
	}
	if rg.Degree("a") != 1 || rg.Degree("b") != 1 {
		t.Errorf("Expected degree 1 for both endpoints, got %d and %d",
			rg.Degree("a"), rg.Degree("b"))
	}
}

func TestParallelEdgesCollapse(t *testing.T) {
	rg := New()
	rg.AddRelationship("a", "b")
	rg.AddRelationship("a", "b")

	if rg.Degree("a") != 1 {
		t.Errorf("Parallel edges should collapse, got degree %d", rg.Degree("a"))
	}
}

func TestSelfLoopDoesNotPanic(t *testing.T) {
	rg := New()
	rg.AddRelationship("a", "a")

	if rg.NodeCount() != 1 {
		t.Errorf("Expected 1 node, got %d", rg.NodeCount())
	}
	if rg.Degree("a") != 0 {
		t.Errorf("Self loop should not contribute degree, got %d", rg.Degree("a"))
	}
}

func TestDegrees(t *testing.T) {
	g := &model.Graph{
		Nodes: []*model.Node{
			{Identity: "hub"}, {Identity: "a"}, {Identity: "b"}, {Identity: "lone"},
		},
		Relationships: []*model.Relationship{
			{Identity: "r1", Start: "hub", End: "a"},
			{Identity: "r2", Start: "b", End: "hub"},
		},
	}

	rg := Build(g)
	degrees := rg.Degrees()

	if degrees["hub"] != 2 {
		t.Errorf("Expected hub degree 2, got %d", degrees["hub"])
	}
	if degrees["lone"] != 0 {
		t.Errorf("Expected lone degree 0, got %d", degrees["lone"])
	}
	if rg.Degree("unknown") != 0 {
		t.Error("Unknown identity should report degree 0")
	}
}

func TestComponentCount(t *testing.T) {
	g := &model.Graph{
		Nodes: []*model.Node{
			{Identity: "a"}, {Identity: "b"}, {Identity: "c"},
			{Identity: "d"}, {Identity: "lone"},
		},
		Relationships: []*model.Relationship{
			{Identity: "r1", Start: "a", End: "b"},
			{Identity: "r2", Start: "c", End: "b"}, // direction must not matter
			{Identity: "r3", Start: "c", End: "d"},
		},
	}

	rg := Build(g)

	if got := rg.ComponentCount(); got != 2 {
		t.Errorf("ComponentCount() = %d, want 2", got)
	}
}
