package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEntities(t *testing.T) {
	set := EntitySet{
		Diseases:    []string{"myocardial infarction"},
		Symptoms:    []string{"chest pain", "dyspnea"},
		Medications: []string{"aspirin"},
	}

	entities := NormalizeEntities(set)
	require.Len(t, entities, 4)

	// Fixed category order, original label order within a category.
	assert.Equal(t, Entity{Category: "diseases", Label: "myocardial infarction"}, entities[0])
	assert.Equal(t, Entity{Category: "symptoms", Label: "chest pain"}, entities[1])
	assert.Equal(t, Entity{Category: "symptoms", Label: "dyspnea"}, entities[2])
	assert.Equal(t, Entity{Category: "medications", Label: "aspirin"}, entities[3])
}

func TestNormalizeEntities_Empty(t *testing.T) {
	assert.Empty(t, NormalizeEntities(EntitySet{}))
}

func TestEntitySet_Labels(t *testing.T) {
	set := EntitySet{Procedures: []string{"ecg"}}
	assert.Equal(t, []string{"ecg"}, set.Labels("procedures"))
	assert.Nil(t, set.Labels("diseases"))
	assert.Nil(t, set.Labels("unknown"))
}

func TestEntitySet_Count(t *testing.T) {
	set := EntitySet{
		Diseases: []string{"a", "b"},
		Symptoms: []string{"c"},
	}
	assert.Equal(t, 3, set.Count())
}

func TestTopPredictions(t *testing.T) {
	r := PredictionResult{
		ICDPredictions: []ICDPrediction{
			{Code: "a", Probability: 0.9},
			{Code: "b", Probability: 0.8},
			{Code: "c", Probability: 0.7},
		},
	}

	assert.Len(t, r.TopPredictions(2), 2)
	assert.Len(t, r.TopPredictions(10), 3)
	assert.Nil(t, r.TopPredictions(0))
	assert.Nil(t, PredictionResult{}.TopPredictions(5))
}
