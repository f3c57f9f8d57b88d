// Package predict talks to prediction backends. A Predictor turns case text
// into ranked ICD predictions plus extracted entities; the HTTP client speaks
// to a real model service and the mock serves fixed results for development
// and tests.
package predict

import (
	"context"

	"github.com/icdkit/icdgraph/internal/model"
)

// Params are the per-request knobs every predictor understands.
type Params struct {
	TopK      int     `json:"topK"`
	Threshold float64 `json:"threshold"`
}

// DefaultParams are the service-wide defaults when a request sets none.
func DefaultParams() Params {
	return Params{TopK: 10, Threshold: 0.5}
}

// Predictor is implemented by the mock predictor and the HTTP client.
type Predictor interface {
	Predict(ctx context.Context, caseText, modelName string, params Params) (model.PredictionResult, error)
}
