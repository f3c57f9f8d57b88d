package server

import (
	"encoding/json"
	"net/http"

	"github.com/icdkit/icdgraph/internal/predict"
)

type predictRequest struct {
	CaseText string          `json:"caseText"`
	Language string          `json:"language,omitempty"`
	Model    string          `json:"model,omitempty"`
	Params   *predict.Params `json:"params,omitempty"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CaseText == "" {
		s.writeError(w, http.StatusBadRequest, "caseText is required")
		return
	}

	params := predict.Params{TopK: s.cfg.TopK, Threshold: s.cfg.Threshold}
	if req.Params != nil {
		params = *req.Params
	}
	modelName := req.Model
	if modelName == "" {
		modelName = s.cfg.DefaultModel
	}

	result, err := s.predictor.Predict(r.Context(), req.CaseText, modelName, params)
	if err != nil {
		s.logger.Error("prediction failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	// The hierarchy rebuild feeds the graph endpoints; persistence of the
	// snapshot and the case is best-effort and never blocks the response.
	s.hier.Update(result, modelName, params.TopK, params.Threshold)
	if s.cfg.HierarchyPath != "" {
		if err := s.hier.Save(s.cfg.HierarchyPath); err != nil {
			s.logger.Warn("saving hierarchy snapshot", "err", err)
		}
	}
	if s.cases != nil {
		title := req.CaseText
		if len(title) > 60 {
			title = title[:60]
		}
		if _, err := s.cases.SaveCase(title, req.CaseText, result); err != nil {
			s.logger.Warn("saving case", "err", err)
		}
	}

	s.logger.Info("prediction complete", "model", modelName, "codes", len(result.ICDPredictions))
	s.writeJSON(w, http.StatusOK, result)
}
