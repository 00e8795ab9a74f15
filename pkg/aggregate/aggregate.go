// Package aggregate turns a flat sequence of query result records into a
// deduplicated graph with per-type frequency tables.
package aggregate

import (
	"github.com/ritzau/graph-explorer/pkg/logging"
	"github.com/ritzau/graph-explorer/pkg/model"
)

// Aggregate deduplicates the nodes and relationships referenced by records
// and counts primary label and relationship type frequencies.
//
// The first occurrence of a node identity is authoritative: its labels and
// properties are registered and its primary label counted once. Later
// records with the same identity contribute nothing. Relationships are
// deduplicated by identity the same way. Relationships whose endpoints are
// not both present in the node set are dropped with a warning.
//
// Output order follows first observation, so identical input always yields
// an identical result.
func Aggregate(records []model.Record) *model.Graph {
	g := &model.Graph{
		Nodes:             make([]*model.Node, 0),
		Relationships:     make([]*model.Relationship, 0),
		NodeTypes:         make(map[string]int),
		RelationshipTypes: make(map[string]int),
	}

	seenNodes := make(map[string]bool)
	seenRels := make(map[string]bool)
	pending := make([]*model.RawRelationship, 0)

	addNode := func(raw *model.RawNode) {
		if raw == nil || seenNodes[raw.Identity] {
			return
		}
		seenNodes[raw.Identity] = true
		node := &model.Node{
			Identity:   raw.Identity,
			Labels:     raw.Labels,
			Properties: raw.Properties,
		}
		g.Nodes = append(g.Nodes, node)
		g.NodeTypes[node.PrimaryLabel()]++
	}

	for _, rec := range records {
		// A record contributes only the fields it has; missing fields
		// are skipped, never an error.
		addNode(rec.Start)
		addNode(rec.End)

		if rec.Rel == nil || seenRels[rec.Rel.Identity] {
			continue
		}
		seenRels[rec.Rel.Identity] = true
		pending = append(pending, rec.Rel)
	}

	// Endpoint check runs after all records so a relationship may reference
	// a node introduced by a later record.
	dropped := 0
	for _, raw := range pending {
		if !seenNodes[raw.Start] || !seenNodes[raw.End] {
			logging.Warn("dropping dangling relationship",
				"relationship", raw.Identity, "type", raw.Type,
				"start", raw.Start, "end", raw.End)
			dropped++
			continue
		}
		rel := &model.Relationship{
			Identity:   raw.Identity,
			Start:      raw.Start,
			End:        raw.End,
			Type:       raw.Type,
			Properties: raw.Properties,
		}
		g.Relationships = append(g.Relationships, rel)
		g.RelationshipTypes[rel.Type]++
	}

	logging.Debug("aggregated records",
		"records", len(records), "nodes", len(g.Nodes),
		"relationships", len(g.Relationships), "dropped", dropped)

	return g
}
