package explorer

import (
	"context"
	"testing"

	"github.com/ritzau/graph-explorer/pkg/model"
)

func chainRecords() []model.Record {
	node := func(id string) *model.RawNode {
		return &model.RawNode{Identity: id, Labels: []string{"Person"}}
	}
	return []model.Record{
		{
			Start: node("A"), End: node("B"),
			Rel: &model.RawRelationship{Identity: "r1", Start: "A", End: "B", Type: "KNOWS"},
		},
		{
			Start: node("B"), End: node("C"),
			Rel: &model.RawRelationship{Identity: "r2", Start: "B", End: "C", Type: "KNOWS"},
		},
	}
}

func chainPipeline() *Pipeline {
	return &Pipeline{Width: 400, Height: 300, Padding: 20, Seed: 42}
}

func TestPipelineEndToEnd(t *testing.T) {
	scene, err := chainPipeline().Run(context.Background(), chainRecords())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if scene.Stats.Nodes != 3 {
		t.Errorf("Expected 3 nodes, got %d", scene.Stats.Nodes)
	}
	if scene.Stats.Relationships != 2 {
		t.Errorf("Expected 2 relationships, got %d", scene.Stats.Relationships)
	}
	if scene.Stats.Components != 1 {
		t.Errorf("A chain is one component, got %d", scene.Stats.Components)
	}
	if len(scene.Layout.Links) != 2 {
		t.Fatalf("Expected 2 resolved links, got %d", len(scene.Layout.Links))
	}

	// B terminates the first link and starts the second; both links must
	// reference the same node slot.
	first, second := scene.Layout.Links[0], scene.Layout.Links[1]
	if first.Target != second.Source {
		t.Errorf("Expected shared endpoint index, got %d and %d", first.Target, second.Source)
	}
	if scene.Layout.Nodes[first.Target].Node.Identity != "B" {
		t.Errorf("Shared endpoint should be B, got %s",
			scene.Layout.Nodes[first.Target].Node.Identity)
	}

	bounds := scene.Renderer.Image().Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Errorf("Unexpected canvas size %v", bounds)
	}

	if len(scene.NodeColors()) != 1 || len(scene.RelationshipColors()) != 1 {
		t.Error("Expected one color per distinct type")
	}
}

func TestPipelineDeterministicWithSeed(t *testing.T) {
	first, err := chainPipeline().Run(context.Background(), chainRecords())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := chainPipeline().Run(context.Background(), chainRecords())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := range first.Layout.Nodes {
		if first.Layout.Nodes[i].Pos != second.Layout.Nodes[i].Pos {
			t.Errorf("Node %d position differs across seeded runs: %v vs %v",
				i, first.Layout.Nodes[i].Pos, second.Layout.Nodes[i].Pos)
		}
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := chainPipeline().Run(ctx, chainRecords()); err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	scene, err := chainPipeline().Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() on empty input error = %v", err)
	}

	if scene.Stats.Nodes != 0 || scene.Stats.Relationships != 0 {
		t.Errorf("Expected empty scene, got %d nodes %d relationships",
			scene.Stats.Nodes, scene.Stats.Relationships)
	}
}
