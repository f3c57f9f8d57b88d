package graph

import (
	"github.com/icdkit/icdgraph/internal/model"
)

// Relation kinds produced by the builder. Externally supplied edges keep
// whatever kind they arrived with.
const (
	RelationParentChild = "parent-child"
	RelationEntityICD   = "entity-icd"
)

// Fixed rendering heuristics; not configurable.
const (
	maxSynthesizedNodes    = 5
	maxEntitiesPerCategory = 3
	entityEdgeFanout       = 3

	diseaseEdgeFactor = 0.8
	symptomEdgeFactor = 0.6
	defaultEdgeWeight = 0.5
)

// Build assembles a single deduplicated graph from an optional
// externally-fetched graph and a prediction result. It never fails: absent or
// malformed inputs degrade to an empty graph, which callers treat as "nothing
// to render".
//
// An external graph with at least one node is authoritative for the node set;
// otherwise nodes are synthesized from the top ranked predictions. Entity
// nodes, hierarchy edges and entity-to-prediction edges are then layered on
// top either way.
func Build(external *model.ExternalGraph, pred model.PredictionResult) *Graph {
	g := New()
	g.Entities = pred.Entities

	if external != nil && len(external.Nodes) > 0 {
		for _, n := range external.Nodes {
			g.AddNode(Node{
				ID:          n.ID,
				Label:       n.Label,
				Type:        n.Type,
				Level:       n.Level,
				Probability: n.Probability,
			})
		}
	} else {
		for _, p := range pred.TopPredictions(maxSynthesizedNodes) {
			g.AddNode(Node{
				ID:          p.Code,
				Label:       p.Description,
				Type:        TypeICDCode,
				Level:       CodeLevel(p.Code),
				Probability: p.Probability,
			})
		}
	}

	addEntityNodes(g, pred.Entities)

	// External edges go in before the hierarchy pass so an already-supplied
	// parent-child relation isn't duplicated.
	if external != nil && len(external.Nodes) > 0 {
		for _, e := range external.Edges {
			kind := e.Type
			if kind == "" {
				kind = RelationParentChild
			}
			weight := e.Weight
			if weight <= 0 {
				weight = defaultEdgeWeight
			}
			g.AddEdge(Edge{Source: e.Source, Target: e.Target, Type: kind, Weight: weight})
		}
	}

	addHierarchyEdges(g)
	addEntityEdges(g, pred)

	return g
}

// addEntityNodes injects up to the first maxEntitiesPerCategory labels of each
// category, in the normalizer's fixed category order. Identity is by derived
// id, so an entity already present (from a previous rule or the external
// graph) isn't inserted twice.
func addEntityNodes(g *Graph, entities model.EntitySet) {
	counts := make(map[string]int, len(model.EntityCategories))
	for _, entity := range model.NormalizeEntities(entities) {
		if counts[entity.Category] >= maxEntitiesPerCategory {
			continue
		}
		counts[entity.Category]++
		g.AddNode(Node{
			ID:    EntityNodeID(entity.Category, entity.Label),
			Label: entity.Label,
			Type:  entityTypePrefix + entity.Category,
		})
	}
}

// addHierarchyEdges links every ICD node to its parent code when that parent
// is also a node in the graph. The edge weight is the child's probability,
// defaulting when the probability is absent.
func addHierarchyEdges(g *Graph) {
	for _, n := range g.Nodes {
		if !n.IsICD() {
			continue
		}
		parent := ParentCode(n.ID)
		if parent == "" || !g.HasNode(parent) {
			continue
		}
		if g.HasEdgeBetween(parent, n.ID) {
			continue
		}
		weight := n.Probability
		if weight <= 0 {
			weight = defaultEdgeWeight
		}
		g.AddEdge(Edge{Source: parent, Target: n.ID, Type: RelationParentChild, Weight: weight})
	}
}

// addEntityEdges connects every entity node to each of the top ranked
// predictions. Weights are heuristic relevance scores: disease mentions count
// for more than symptoms, and everything else gets a flat default. Edges to
// predictions that never made it into the node set are dropped by AddEdge.
func addEntityEdges(g *Graph, pred model.PredictionResult) {
	top := pred.TopPredictions(entityEdgeFanout)
	if len(top) == 0 {
		return
	}
	for _, n := range g.Nodes {
		category, ok := n.IsEntity()
		if !ok {
			continue
		}
		for _, p := range top {
			var weight float64
			switch category {
			case "diseases":
				weight = p.Probability * diseaseEdgeFactor
			case "symptoms":
				weight = p.Probability * symptomEdgeFactor
			default:
				weight = defaultEdgeWeight
			}
			g.AddEdge(Edge{Source: n.ID, Target: p.Code, Type: RelationEntityICD, Weight: weight})
		}
	}
}
