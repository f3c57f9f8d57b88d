package hierarchy

import (
	"strings"
	"time"

	"github.com/icdkit/icdgraph/internal/model"
)

// Update rebuilds the hierarchy from a prediction result, replacing whatever
// run it held before. Every predicted code contributes an entry for each of
// its hierarchy prefixes (410.71 -> 410, 410.7, 410.71), with parent/child
// links between consecutive prefixes. Prefixes that were never predicted
// themselves keep a zero probability and borrow a name from a prediction for
// the same code if one exists.
func (m *Manager) Update(pred model.PredictionResult, modelName string, topK int, threshold float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	descriptions := make(map[string]string, len(pred.ICDPredictions))
	probabilities := make(map[string]float64, len(pred.ICDPredictions))
	for _, p := range pred.ICDPredictions {
		if p.Code == "" {
			continue
		}
		descriptions[p.Code] = p.Description
		if p.Probability > probabilities[p.Code] {
			probabilities[p.Code] = p.Probability
		}
	}

	m.entries = make(map[string]Entry)
	m.order = m.order[:0]

	for _, p := range pred.ICDPredictions {
		if p.Code == "" {
			continue
		}
		segments := strings.Split(p.Code, ".")
		current := ""
		for i, segment := range segments {
			if i == 0 {
				current = segment
			} else {
				current = current + "." + segment
			}

			if _, exists := m.entries[current]; !exists {
				parent := ""
				if i > 0 {
					parent = strings.Join(segments[:i], ".")
				}
				m.entries[current] = Entry{
					Code:        current,
					Name:        descriptions[current],
					Parent:      parent,
					Children:    []string{},
					Level:       i + 1,
					Probability: probabilities[current],
				}
				m.order = append(m.order, current)
			}

			if i > 0 {
				parent := strings.Join(segments[:i], ".")
				if pe, ok := m.entries[parent]; ok && !contains(pe.Children, current) {
					pe.Children = append(pe.Children, current)
					m.entries[parent] = pe
				}
			}
		}
	}

	m.latest = pred
	m.meta = Metadata{
		Timestamp:    time.Now().Format(time.RFC3339),
		OriginalText: pred.OriginalText,
		Model:        modelName,
		TopK:         topK,
		Threshold:    threshold,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
