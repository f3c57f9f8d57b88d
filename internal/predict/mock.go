package predict

import (
	"context"
	"math"
	"time"

	"github.com/icdkit/icdgraph/internal/model"
)

// Mock serves a fixed cardiology-flavoured prediction for any input, the same
// table for every call. Used when no model service is configured.
type Mock struct{}

var _ Predictor = Mock{}

func NewMock() Mock {
	return Mock{}
}

var mockPredictions = []model.ICDPrediction{
	{Code: "410.71", Description: "Subendocardial infarction", Probability: 0.89},
	{Code: "410.7", Description: "Subendocardial infarction, initial episode", Probability: 0.82},
	{Code: "410", Description: "Acute myocardial infarction", Probability: 0.75},
	{Code: "428.0", Description: "Congestive heart failure, unspecified", Probability: 0.68},
	{Code: "414.01", Description: "Coronary atherosclerosis of native coronary artery", Probability: 0.61},
	{Code: "412", Description: "Old myocardial infarction", Probability: 0.54},
	{Code: "414.0", Description: "Coronary atherosclerosis", Probability: 0.47},
	{Code: "427.31", Description: "Atrial fibrillation", Probability: 0.43},
	{Code: "428.1", Description: "Left heart failure", Probability: 0.39},
	{Code: "424.1", Description: "Aortic valve disorders", Probability: 0.35},
}

var mockEntities = model.EntitySet{
	Diseases:    []string{"myocardial infarction", "heart failure", "coronary artery disease"},
	Symptoms:    []string{"chest pain", "shortness of breath", "fatigue"},
	Procedures:  []string{"echocardiogram", "cardiac catheterization", "ecg"},
	Medications: []string{"aspirin", "atorvastatin", "metoprolol"},
}

var mockKeywordHeatmap = []model.KeywordWeight{
	{Term: "chest pain", Importance: 0.95},
	{Term: "myocardial infarction", Importance: 0.89},
	{Term: "shortness of breath", Importance: 0.82},
	{Term: "ecg", Importance: 0.75},
	{Term: "st segment elevation", Importance: 0.71},
	{Term: "troponin", Importance: 0.68},
	{Term: "coronary artery", Importance: 0.64},
	{Term: "heart failure", Importance: 0.61},
	{Term: "ejection fraction", Importance: 0.58},
	{Term: "cardiac enzymes", Importance: 0.55},
}

var mockFeatureImportance = []model.FeatureScore{
	{Name: "chest pain", Score: 0.92},
	{Name: "st elevation", Score: 0.87},
	{Name: "troponin elevated", Score: 0.83},
	{Name: "ecg abnormal", Score: 0.79},
	{Name: "coronary occlusion", Score: 0.74},
	{Name: "cardiac enzymes", Score: 0.70},
	{Name: "left ventricular dysfunction", Score: 0.66},
	{Name: "hypotension", Score: 0.62},
	{Name: "arrhythmia", Score: 0.59},
	{Name: "elevated bnp", Score: 0.56},
}

var mockDecisionPath = []model.DecisionStep{
	{Description: "Preprocessing: text cleanup, tokenization, normalization", Confidence: 1.0},
	{Description: "Entity recognition: found myocardial infarction, heart failure and related terms", Confidence: 0.95},
	{Description: "Model prediction: CAML predicts ICD 410.71 (confidence 0.89)", Confidence: 0.89},
	{Description: "Knowledge-graph filter: verified code position in the ICD hierarchy", Confidence: 0.92},
	{Description: "Result fusion: merged predictions from cooperating models", Confidence: 0.85},
}

// Predict filters the fixed table by threshold, truncates to topK and wraps
// the result. The context is accepted for interface symmetry only.
func (Mock) Predict(_ context.Context, caseText, modelName string, params Params) (model.PredictionResult, error) {
	start := time.Now()

	var filtered []model.ICDPrediction
	for _, p := range mockPredictions {
		if p.Probability >= params.Threshold {
			filtered = append(filtered, p)
		}
		if params.TopK > 0 && len(filtered) >= params.TopK {
			break
		}
	}

	avg := 0.0
	if len(filtered) > 0 {
		for _, p := range filtered {
			avg += p.Probability
		}
		avg = math.Round(avg/float64(len(filtered))*1000) / 1000
	}

	models := []string{"CAML", "DCAN"}
	if modelName != "" {
		models = []string{modelName}
	}

	return model.PredictionResult{
		Entities:          mockEntities,
		EntityCount:       mockEntities.Count(),
		ICDPredictions:    filtered,
		AvgConfidence:     avg,
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
		KeywordHeatmap:    mockKeywordHeatmap,
		FeatureImportance: mockFeatureImportance,
		DecisionPath:      mockDecisionPath,
		ModelsUsed:        models,
		OriginalText:      caseText,
		Mock:              true,
	}, nil
}
