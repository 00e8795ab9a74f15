// Package graph maintains a gonum directed graph over the aggregated
// relationships. It backs the console statistics and the degree fallback
// used for node sizing.
package graph

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ritzau/graph-explorer/pkg/model"
)

// RelationshipGraph is a directed graph keyed by node identity.
type RelationshipGraph struct {
	graph      *simple.DirectedGraph
	ids        map[string]int64 // identity -> gonum node ID
	identities map[int64]string
	nextID     int64
}

// New creates an empty relationship graph.
func New() *RelationshipGraph {
	return &RelationshipGraph{
		graph:      simple.NewDirectedGraph(),
		ids:        make(map[string]int64),
		identities: make(map[int64]string),
	}
}

// Build constructs the relationship graph for an aggregated result.
func Build(g *model.Graph) *RelationshipGraph {
	rg := New()
	for _, node := range g.Nodes {
		rg.AddNode(node.Identity)
	}
	for _, rel := range g.Relationships {
		rg.AddRelationship(rel.Start, rel.End)
	}
	return rg
}

// AddNode registers an identity. Adding an existing identity is a no-op.
func (rg *RelationshipGraph) AddNode(identity string) {
	if _, exists := rg.ids[identity]; exists {
		return
	}
	rg.ids[identity] = rg.nextID
	rg.identities[rg.nextID] = identity
	rg.graph.AddNode(simple.Node(rg.nextID))
	rg.nextID++
}

// AddRelationship adds a directed edge between two identities, registering
// endpoints as needed. Parallel edges collapse into one; self loops are
// kept out of the gonum graph (simple graphs reject them) but do not error.
func (rg *RelationshipGraph) AddRelationship(start, end string) {
	rg.AddNode(start)
	rg.AddNode(end)
	if start == end {
		return
	}
	from := rg.ids[start]
	to := rg.ids[end]
	if !rg.graph.HasEdgeFromTo(from, to) {
		rg.graph.SetEdge(rg.graph.NewEdge(rg.graph.Node(from), rg.graph.Node(to)))
	}
}

// NodeCount returns the number of registered identities.
func (rg *RelationshipGraph) NodeCount() int {
	return len(rg.ids)
}

// Degree returns the total in plus out degree of an identity, or 0 for an
// unknown identity.
func (rg *RelationshipGraph) Degree(identity string) int {
	id, ok := rg.ids[identity]
	if !ok {
		return 0
	}
	return rg.graph.From(id).Len() + rg.graph.To(id).Len()
}

// Degrees returns the degree of every registered identity.
func (rg *RelationshipGraph) Degrees() map[string]int {
	degrees := make(map[string]int, len(rg.ids))
	for identity := range rg.ids {
		degrees[identity] = rg.Degree(identity)
	}
	return degrees
}

// ComponentCount returns the number of weakly connected components, via
// union-find over the edge set.
func (rg *RelationshipGraph) ComponentCount() int {
	parent := make(map[int64]int64, len(rg.ids))
	for _, id := range rg.ids {
		parent[id] = id
	}

	var find func(int64) int64
	find = func(x int64) int64 {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	edges := rg.graph.Edges()
	for edges.Next() {
		e := edges.Edge()
		a, b := find(e.From().ID()), find(e.To().ID())
		if a != b {
			parent[a] = b
		}
	}

	roots := make(map[int64]bool)
	for _, id := range rg.ids {
		roots[find(id)] = true
	}
	return len(roots)
}
