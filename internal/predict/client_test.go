package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icdkit/icdgraph/internal/model"
)

func TestClient_Predict(t *testing.T) {
	var received predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(model.PredictionResult{
			ICDPredictions: []model.ICDPrediction{{Code: "410.71", Probability: 0.9}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Predict(context.Background(), "chest pain", "CAML", Params{TopK: 5, Threshold: 0.4})
	require.NoError(t, err)

	assert.Equal(t, "chest pain", received.CaseText)
	assert.Equal(t, "CAML", received.Model)
	assert.Equal(t, 5, received.Params.TopK)

	require.Len(t, result.ICDPredictions, 1)
	assert.Equal(t, "410.71", result.ICDPredictions[0].Code)
}

func TestClient_FetchGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/graph/visualize", r.URL.Path)
		json.NewEncoder(w).Encode(model.ExternalGraph{
			Nodes: []model.ExternalNode{{ID: "410", Type: "icd_code"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	g, err := client.FetchGraph(context.Background(), model.PredictionResult{})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "410", g.Nodes[0].ID)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Predict(context.Background(), "text", "", DefaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK status code")
}
