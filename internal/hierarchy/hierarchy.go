// Package hierarchy maintains the ICD code hierarchy derived from prediction
// results, and answers the graph-fetch queries the visualization pipeline and
// the explain API make against it.
package hierarchy

import (
	"strings"
	"sync"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/model"
)

// Entry is one ICD code in the hierarchy. Level is 1-based segment count, so
// 410 is level 1 and 410.71 is level 3.
type Entry struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Parent      string   `json:"parent,omitempty"`
	Children    []string `json:"children"`
	Level       int      `json:"level"`
	Probability float64  `json:"probability,omitempty"`
}

// Metadata describes the prediction run the current hierarchy was built from.
type Metadata struct {
	Timestamp    string  `json:"timestamp"`
	OriginalText string  `json:"original_text"`
	Model        string  `json:"model"`
	TopK         int     `json:"top_k"`
	Threshold    float64 `json:"threshold"`
}

// PathStep is one level of a hierarchy path, root first.
type PathStep struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Manager owns the hierarchy for the latest prediction run. Reads and the
// per-prediction rebuild can come from different request handlers, hence the
// lock.
type Manager struct {
	mu      *sync.RWMutex
	entries map[string]Entry
	order   []string
	umls    map[string]UMLSMapping
	latest  model.PredictionResult
	meta    Metadata
}

func NewManager() *Manager {
	m := &Manager{
		mu:      &sync.RWMutex{},
		entries: make(map[string]Entry),
		umls:    make(map[string]UMLSMapping),
	}
	m.installDefaults()
	return m
}

// installDefaults seeds a tiny myocardial-infarction subtree so the explain
// endpoints have something to answer before the first prediction arrives.
func (m *Manager) installDefaults() {
	defaults := []Entry{
		{Code: "410", Name: "Acute myocardial infarction", Children: []string{"410.0", "410.1", "410.7", "410.9"}, Level: 1},
		{Code: "410.7", Name: "Subendocardial infarction", Parent: "410", Children: []string{"410.71"}, Level: 2},
		{Code: "410.71", Name: "Subendocardial infarction, initial episode", Parent: "410.7", Children: []string{}, Level: 3},
	}
	m.entries = make(map[string]Entry, len(defaults))
	m.order = m.order[:0]
	for _, e := range defaults {
		m.entries[e.Code] = e
		m.order = append(m.order, e.Code)
	}
}

// Query looks up an ICD code: exact first, then dot-insensitive, then prefix
// fuzzy matching in either direction.
func (m *Manager) Query(code string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.query(code)
}

func (m *Manager) query(code string) (Entry, bool) {
	if e, ok := m.entries[code]; ok {
		return e, true
	}

	noDot := strings.ReplaceAll(code, ".", "")
	for _, candidate := range m.order {
		if strings.ReplaceAll(candidate, ".", "") == noDot {
			return m.entries[candidate], true
		}
	}
	for _, candidate := range m.order {
		if strings.HasPrefix(candidate, code) || strings.HasPrefix(code, candidate) {
			return m.entries[candidate], true
		}
	}
	return Entry{}, false
}

// Path returns the hierarchy path for a code, root first. Unknown codes give
// an empty path.
func (m *Manager) Path(code string) []PathStep {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var path []PathStep
	current, ok := m.query(code)
	for ok {
		path = append([]PathStep{{Code: current.Code, Name: current.Name}}, path...)
		if current.Parent == "" {
			break
		}
		current, ok = m.query(current.Parent)
	}
	return path
}

// Related returns the immediate neighborhood of a code (itself, its parent and
// its children) as an external graph for the builder. Edge weights take the
// larger endpoint probability, floored at 0.5 when neither is known.
func (m *Manager) Related(code string) *model.ExternalGraph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.related(code)
}

func (m *Manager) related(code string) *model.ExternalGraph {
	g := &model.ExternalGraph{}
	entry, ok := m.query(code)
	if !ok {
		return g
	}

	add := func(e Entry) {
		g.Nodes = append(g.Nodes, model.ExternalNode{
			ID:          e.Code,
			Label:       labelOr(e.Name, e.Code),
			Type:        graph.TypeICDCode,
			Level:       e.Level,
			Probability: e.Probability,
		})
	}
	add(entry)

	if entry.Parent != "" {
		if parent, ok := m.query(entry.Parent); ok {
			add(parent)
			g.Edges = append(g.Edges, model.ExternalEdge{
				Source: parent.Code,
				Target: entry.Code,
				Type:   graph.RelationParentChild,
				Weight: edgeWeight(parent.Probability, entry.Probability),
			})
		}
	}

	for _, childCode := range entry.Children {
		child, ok := m.query(childCode)
		if !ok {
			continue
		}
		add(child)
		g.Edges = append(g.Edges, model.ExternalEdge{
			Source: entry.Code,
			Target: child.Code,
			Type:   graph.RelationParentChild,
			Weight: edgeWeight(entry.Probability, child.Probability),
		})
	}

	return dedupeNodes(g)
}

// GraphForPredictions merges the neighborhoods of the top-n predicted codes
// into one external graph, nodes deduplicated by id in first-seen order.
func (m *Manager) GraphForPredictions(preds []model.ICDPrediction, topN int) *model.ExternalGraph {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if topN > len(preds) {
		topN = len(preds)
	}
	merged := &model.ExternalGraph{}
	for _, p := range preds[:topN] {
		if p.Code == "" {
			continue
		}
		related := m.related(p.Code)
		merged.Nodes = append(merged.Nodes, related.Nodes...)
		merged.Edges = append(merged.Edges, related.Edges...)
	}
	return dedupeNodes(merged)
}

// Latest returns the prediction result the hierarchy was last rebuilt from.
func (m *Manager) Latest() (model.PredictionResult, Metadata) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.meta
}

func edgeWeight(a, b float64) float64 {
	w := a
	if b > w {
		w = b
	}
	if w <= 0 {
		return 0.5
	}
	return w
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

func dedupeNodes(g *model.ExternalGraph) *model.ExternalGraph {
	seen := make(map[string]struct{}, len(g.Nodes))
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes
	return g
}
