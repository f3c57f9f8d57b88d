package model

// ICDPrediction is one ranked code prediction from a model. Predictions arrive
// ordered by rank, highest probability first.
type ICDPrediction struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

// EntitySet groups extracted entity labels by category. Label order within a
// category is the extraction order and is significant downstream.
type EntitySet struct {
	Diseases    []string `json:"diseases"`
	Symptoms    []string `json:"symptoms"`
	Procedures  []string `json:"procedures"`
	Medications []string `json:"medications"`
}

// Count returns the total number of entity labels across all categories.
func (e EntitySet) Count() int {
	return len(e.Diseases) + len(e.Symptoms) + len(e.Procedures) + len(e.Medications)
}

// KeywordWeight is a term with its attention importance, for the keyword
// heatmap panel.
type KeywordWeight struct {
	Term       string  `json:"term"`
	Importance float64 `json:"importance"`
}

// FeatureScore is a named feature with its contribution score.
type FeatureScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// DecisionStep is one step of the model's decision path.
type DecisionStep struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// PredictionResult is the full response of a prediction run. The core
// visualization pipeline only reads ICDPredictions and Entities; the rest is
// carried for the dashboard panels. Treated as read-only everywhere.
type PredictionResult struct {
	Entities          EntitySet       `json:"entities"`
	EntityCount       int             `json:"entityCount"`
	ICDPredictions    []ICDPrediction `json:"icdPredictions"`
	AvgConfidence     float64         `json:"avgConfidence"`
	ProcessingTimeMs  int64           `json:"processingTime"`
	KeywordHeatmap    []KeywordWeight `json:"keywordHeatmap,omitempty"`
	FeatureImportance []FeatureScore  `json:"featureImportance,omitempty"`
	DecisionPath      []DecisionStep  `json:"decisionPath,omitempty"`
	ModelsUsed        []string        `json:"modelsUsed,omitempty"`
	OriginalText      string          `json:"originalText,omitempty"`
	Mock              bool            `json:"isMock,omitempty"`
}

// ExternalNode is a node as supplied by the knowledge-graph service.
type ExternalNode struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Level       int     `json:"level,omitempty"`
	Probability float64 `json:"probability,omitempty"`
}

// ExternalEdge is an edge as supplied by the knowledge-graph service. Type and
// Weight may be absent; the builder applies defaults.
type ExternalEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

// ExternalGraph is an authoritative graph fetched from a backend. A nil or
// node-less graph causes the builder to synthesize one from predictions
// instead; a fetch failure is represented the same way.
type ExternalGraph struct {
	Nodes []ExternalNode `json:"nodes"`
	Edges []ExternalEdge `json:"edges"`
}
