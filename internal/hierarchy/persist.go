package hierarchy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/icdkit/icdgraph/internal/model"
)

// snapshotFile is the on-disk format: the prediction run plus the hierarchy
// derived from it. A legacy file holding just the bare entry map is also
// accepted on load.
type snapshotFile struct {
	Timestamp    string                 `json:"timestamp"`
	OriginalText string                 `json:"original_text"`
	Model        string                 `json:"model"`
	TopK         int                    `json:"top_k"`
	Threshold    float64                `json:"threshold"`
	Predictions  model.PredictionResult `json:"predictions"`
	ICDHierarchy map[string]Entry       `json:"icd_hierarchy"`
}

// Save writes the current hierarchy and its source prediction run to path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	snapshot := snapshotFile{
		Timestamp:    m.meta.Timestamp,
		OriginalText: m.meta.OriginalText,
		Model:        m.meta.Model,
		TopK:         m.meta.TopK,
		Threshold:    m.meta.Threshold,
		Predictions:  m.latest,
		ICDHierarchy: m.entries,
	}
	m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load restores a saved snapshot. Missing files are not an error; the manager
// keeps its defaults.
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(snapshot.ICDHierarchy) > 0 {
		m.replaceEntries(snapshot.ICDHierarchy)
		m.latest = snapshot.Predictions
		m.meta = Metadata{
			Timestamp:    snapshot.Timestamp,
			OriginalText: snapshot.OriginalText,
			Model:        snapshot.Model,
			TopK:         snapshot.TopK,
			Threshold:    snapshot.Threshold,
		}
		return nil
	}

	// Legacy format: the file is the entry map itself.
	var legacy map[string]Entry
	if err := json.Unmarshal(data, &legacy); err == nil && len(legacy) > 0 {
		m.replaceEntries(legacy)
	}
	return nil
}

func (m *Manager) replaceEntries(entries map[string]Entry) {
	m.entries = entries
	m.order = m.order[:0]
	for code := range entries {
		m.order = append(m.order, code)
	}
	// Map iteration order is random; keep lookups deterministic.
	sort.Strings(m.order)
}

// LoadUMLS reads the UMLS term mappings used by semantic search. Missing
// files leave the mapping empty.
func (m *Manager) LoadUMLS(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var mappings map[string]UMLSMapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return err
	}

	m.mu.Lock()
	m.umls = mappings
	m.mu.Unlock()
	return nil
}
