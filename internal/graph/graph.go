package graph

import (
	"fmt"
	"strings"

	"github.com/icdkit/icdgraph/internal/model"
)

// HierarchySeparator splits an ICD code into its hierarchy segments,
// e.g. 410.71 is a child of 410.7.
const HierarchySeparator = "."

// TypeICDCode tags nodes that represent a predicted ICD code.
const TypeICDCode = "icd_code"

const entityTypePrefix = "entity:"

// Node is a drawable graph vertex: either a predicted ICD code or an extracted
// entity. Probability is only meaningful for icd_code nodes; zero means
// absent. Level is the count of hierarchy separators in an ICD code's id, kept
// for potential layering but unused by layout.
type Node struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Level       int     `json:"level,omitempty"`
	Probability float64 `json:"probability,omitempty"`
}

// IsICD reports whether the node represents a predicted ICD code.
func (n Node) IsICD() bool {
	return n.Type == TypeICDCode
}

// IsEntity reports whether the node represents an extracted entity, returning
// its category if so.
func (n Node) IsEntity() (category string, ok bool) {
	if strings.HasPrefix(n.Type, entityTypePrefix) {
		return n.Type[len(entityTypePrefix):], true
	}
	return "", false
}

// Edge is a directed, weighted relation between two nodes. Weight is a
// heuristic relevance score in [0,1] driving visual edge thickness, not a
// calibrated probability.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// Graph is the node/edge set built for one prediction result, plus the entity
// groups it originated from. It is rebuilt from scratch per prediction and
// never persisted.
type Graph struct {
	Nodes    []Node          `json:"nodes"`
	Edges    []Edge          `json:"edges"`
	Entities model.EntitySet `json:"entities"`

	index map[string]int
}

func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode inserts a node unless a node with the same id already exists. Node
// identity is the id alone, so repeated entities collapse to one node.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.index[n.ID]; exists {
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
}

// AddEdge inserts an edge. Edges whose endpoints aren't both present are
// dropped, not errors. Multiple edges between the same ordered pair are
// permitted; different rules may relate the same two nodes more than once.
func (g *Graph) AddEdge(e Edge) {
	if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
		return
	}
	g.Edges = append(g.Edges, e)
}

func (g *Graph) HasNode(id string) bool {
	_, exists := g.index[id]
	return exists
}

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id string) (Node, bool) {
	i, exists := g.index[id]
	if !exists {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// HasEdgeBetween reports whether any edge source->target already exists,
// regardless of type.
func (g *Graph) HasEdgeBetween(source, target string) bool {
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// Degrees counts incident edges per node id; both endpoints of an edge count
// toward their own node's degree.
func (g *Graph) Degrees() map[string]int {
	degrees := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		degrees[n.ID] = 0
	}
	for _, e := range g.Edges {
		degrees[e.Source]++
		degrees[e.Target]++
	}
	return degrees
}

// EntityNodeID derives the deterministic id for an entity node from its
// category and label.
func EntityNodeID(category, label string) string {
	return fmt.Sprintf("entity_%s_%s", category, label)
}

// CodeLevel is the count of hierarchy separators in an ICD code.
func CodeLevel(code string) int {
	return strings.Count(code, HierarchySeparator)
}

// ParentCode derives the parent ICD code by dropping the last hierarchy
// segment: 410.71 -> 410.7 -> 410. Returns "" when the code has no separator
// and therefore no parent.
func ParentCode(code string) string {
	if !strings.Contains(code, HierarchySeparator) {
		return ""
	}
	parent := code[:len(code)-1]
	return strings.TrimSuffix(parent, HierarchySeparator)
}
