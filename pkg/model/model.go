package model

import "encoding/json"

// Record is one row of a graph query result. Any of the three fields may be
// absent; a record contributes only the fields it carries.
type Record struct {
	Start *RawNode         `json:"n,omitempty"`
	End   *RawNode         `json:"m,omitempty"`
	Rel   *RawRelationship `json:"r,omitempty"`
}

// RawNode is a node exactly as it arrives from the source.
type RawNode struct {
	Identity   string         `json:"identity"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties,omitempty"`
}

// RawRelationship is a relationship exactly as it arrives from the source.
// Start and End reference node identities.
type RawRelationship struct {
	Identity   string         `json:"identity"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Node is a deduplicated graph node. The first label is the primary type
// used for coloring and type frequencies.
type Node struct {
	Identity   string         `json:"identity"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties,omitempty"`
}

// PrimaryLabel returns the first label, or "" for an unlabeled node.
func (n *Node) PrimaryLabel() string {
	if len(n.Labels) == 0 {
		return ""
	}
	return n.Labels[0]
}

// Relationship is a retained relationship whose endpoints both exist in the
// node set.
type Relationship struct {
	Identity   string         `json:"identity"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Graph is the aggregated result consumed by the layout engine and the
// renderer. Node and relationship order is the order of first observation.
type Graph struct {
	Nodes             []*Node         `json:"nodes"`
	Relationships     []*Relationship `json:"relationships"`
	NodeTypes         map[string]int  `json:"nodeTypes"`
	RelationshipTypes map[string]int  `json:"relationshipTypes"`
}

// NumericProperty probes a property bag with an ordered key list and returns
// the first value that holds a number. JSON decoding yields float64 for
// numbers, but values assembled in code may be ints.
func NumericProperty(props map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := props[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// StringProperty probes a property bag with an ordered key list and returns
// the first string value present.
func StringProperty(props map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
