package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icdkit/icdgraph/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cases.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() model.PredictionResult {
	return model.PredictionResult{
		ICDPredictions: []model.ICDPrediction{
			{Code: "410.71", Description: "d1", Probability: 0.9},
			{Code: "428.0", Description: "d2", Probability: 0.7},
		},
		Entities:      model.EntitySet{Diseases: []string{"MI"}},
		AvgConfidence: 0.8,
		Mock:          true,
	}
}

func TestStore_SaveAndGetCase(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveCase("case one", "65 year old male with chest pain", sampleResult())
	require.NoError(t, err)
	require.NotZero(t, id)

	c, err := s.GetCase(id)
	require.NoError(t, err)
	assert.Equal(t, "case one", c.Title)
	assert.Equal(t, "65 year old male with chest pain", c.Text)
	assert.False(t, c.CreatedAt.IsZero())
	require.Len(t, c.Result.ICDPredictions, 2)
	assert.Equal(t, "410.71", c.Result.ICDPredictions[0].Code)
	assert.Equal(t, []string{"MI"}, c.Result.Entities.Diseases)
	assert.True(t, c.Result.Mock)
}

func TestStore_GetCaseNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCase(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListCasesNewestFirst(t *testing.T) {
	s := openTestStore(t)

	first, err := s.SaveCase("first", "text a", sampleResult())
	require.NoError(t, err)
	second, err := s.SaveCase("second", "text b", sampleResult())
	require.NoError(t, err)

	cases, err := s.ListCases(10)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, second, cases[0].ID)
	assert.Equal(t, first, cases[1].ID)
}

func TestStore_ListCasesLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.SaveCase("case", "text", sampleResult())
		require.NoError(t, err)
	}

	cases, err := s.ListCases(2)
	require.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestStore_DeleteCase(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveCase("case", "text", sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.DeleteCase(id))

	_, err = s.GetCase(id)
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := s.CasesForCode("410.71")
	require.NoError(t, err)
	assert.Empty(t, ids, "prediction rows deleted with the case")

	assert.ErrorIs(t, s.DeleteCase(id), ErrNotFound)
}

func TestStore_CasesForCode(t *testing.T) {
	s := openTestStore(t)

	withMI, err := s.SaveCase("mi", "text", sampleResult())
	require.NoError(t, err)
	_, err = s.SaveCase("other", "text", model.PredictionResult{
		ICDPredictions: []model.ICDPrediction{{Code: "250", Probability: 0.6}},
	})
	require.NoError(t, err)

	ids, err := s.CasesForCode("410.71")
	require.NoError(t, err)
	assert.Equal(t, []int64{withMI}, ids)

	none, err := s.CasesForCode("999")
	require.NoError(t, err)
	assert.Empty(t, none)
}
