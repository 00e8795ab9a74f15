package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ritzau/graph-explorer/pkg/config"
)

func TestRunOnceMissingInput(t *testing.T) {
	cfg := &config.Config{
		Input:  filepath.Join(t.TempDir(), "absent.json"),
		Output: filepath.Join(t.TempDir(), "graph.png"),
		Width:  400, Height: 300, Padding: 20,
	}

	err := runOnce(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected error for missing input file")
	}
	if !strings.Contains(err.Error(), "could not load graph data") {
		t.Errorf("Expected a single load-failure status, got %q", err)
	}
}

func TestRunOnceMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(input, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := &config.Config{
		Input:  input,
		Output: filepath.Join(dir, "graph.png"),
		Width:  400, Height: 300, Padding: 20,
	}

	err := runOnce(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected error for malformed input file")
	}
	if !strings.Contains(err.Error(), "could not load graph data") {
		t.Errorf("Expected a single load-failure status, got %q", err)
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	data := `[{"n": {"identity": "a", "labels": ["Person"]},
	           "m": {"identity": "b", "labels": ["Company"]},
	           "r": {"identity": "r1", "start": "a", "end": "b", "type": "WORKS_AT"}}]`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	records, err := readRecords(input)
	if err != nil {
		t.Fatalf("readRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Start == nil || records[0].Start.Identity != "a" {
		t.Error("Start node not decoded")
	}
	if records[0].Rel == nil || records[0].Rel.Type != "WORKS_AT" {
		t.Error("Relationship not decoded")
	}
}
