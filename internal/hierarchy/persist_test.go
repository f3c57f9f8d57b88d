package hierarchy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icdkit/icdgraph/internal/model"
)

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hierarchy.json")

	m := NewManager()
	pred := model.PredictionResult{
		ICDPredictions: []model.ICDPrediction{
			{Code: "410.71", Description: "d1", Probability: 0.9},
		},
		OriginalText: "chest pain",
	}
	m.Update(pred, "CAML", 10, 0.5)
	require.NoError(t, m.Save(path))

	restored := NewManager()
	require.NoError(t, restored.Load(path))

	e, ok := restored.Query("410.71")
	require.True(t, ok)
	assert.Equal(t, 0.9, e.Probability)

	latest, meta := restored.Latest()
	assert.Equal(t, "chest pain", latest.OriginalText)
	assert.Equal(t, "CAML", meta.Model)
	assert.Equal(t, 10, meta.TopK)
}

func TestManager_LoadMissingFile(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Load(filepath.Join(t.TempDir(), "absent.json")))

	// Defaults survive.
	_, ok := m.Query("410")
	assert.True(t, ok)
}

func TestManager_LoadLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	legacy := map[string]Entry{
		"250": {Code: "250", Name: "Diabetes mellitus", Children: []string{}, Level: 1},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m := NewManager()
	require.NoError(t, m.Load(path))

	e, ok := m.Query("250")
	require.True(t, ok)
	assert.Equal(t, "Diabetes mellitus", e.Name)
}

func TestManager_LoadUMLS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umls.json")
	mappings := map[string]UMLSMapping{
		"410": {Synonyms: []string{"heart attack"}},
	}
	data, err := json.Marshal(mappings)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m := NewManager()
	require.NoError(t, m.LoadUMLS(path))

	results := m.SemanticSearch("heart attack", 0.9, 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "410", results[0].Code)
	assert.Equal(t, "umls", results[0].Source)
	assert.Equal(t, 0.9, results[0].Similarity)
}

func TestManager_LoadUMLSMissing(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.LoadUMLS(filepath.Join(t.TempDir(), "absent.json")))
}
