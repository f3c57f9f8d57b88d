package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/hierarchy"
	"github.com/icdkit/icdgraph/internal/layout"
	"github.com/icdkit/icdgraph/internal/model"
)

// visualizedCodes is how many top predictions seed the hierarchy neighborhood
// merge, mirroring the fan-out the entity edges use.
const visualizedCodes = 3

type predictionPath struct {
	Code          string               `json:"icd_code"`
	Name          string               `json:"icd_name"`
	Probability   float64              `json:"probability"`
	HierarchyPath []hierarchy.PathStep `json:"hierarchy_path"`
}

type visualizeResponse struct {
	Nodes     []graph.Node         `json:"nodes"`
	Edges     []graph.Edge         `json:"edges"`
	Positions layout.Positions     `json:"positions"`
	Paths     []predictionPath     `json:"paths"`
	Entities  model.EntitySet      `json:"entities"`
	Metadata  hierarchy.Metadata   `json:"metadata"`
	Message   string               `json:"message,omitempty"`
}

// handleVisualize builds the full positioned graph for a prediction result:
// the one POSTed by the client, or the latest run when called with GET or an
// empty body.
func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var pred model.PredictionResult
	if r.Method == http.MethodPost {
		// An empty or absent body falls through to the latest run.
		_ = json.NewDecoder(r.Body).Decode(&pred)
	}

	meta := hierarchy.Metadata{}
	if len(pred.ICDPredictions) == 0 {
		pred, meta = s.hier.Latest()
	}
	if len(pred.ICDPredictions) == 0 {
		s.writeJSON(w, http.StatusOK, visualizeResponse{
			Nodes:     []graph.Node{},
			Edges:     []graph.Edge{},
			Positions: layout.Positions{},
			Paths:     []predictionPath{},
			Entities:  pred.Entities,
			Message:   "no predictions yet, run a prediction first",
		})
		return
	}

	width, height := s.canvasSize(r)

	external := s.hier.GraphForPredictions(pred.ICDPredictions, visualizedCodes)
	g := graph.Build(external, pred)
	positions := layout.Compute(g, width, height)

	paths := make([]predictionPath, 0, visualizedCodes)
	for _, p := range pred.TopPredictions(visualizedCodes) {
		if p.Code == "" {
			continue
		}
		paths = append(paths, predictionPath{
			Code:          p.Code,
			Name:          p.Description,
			Probability:   p.Probability,
			HierarchyPath: s.hier.Path(p.Code),
		})
	}

	s.writeJSON(w, http.StatusOK, visualizeResponse{
		Nodes:     g.Nodes,
		Edges:     g.Edges,
		Positions: positions,
		Paths:     paths,
		Entities:  pred.Entities,
		Metadata:  meta,
	})
}

func (s *Server) canvasSize(r *http.Request) (width, height float64) {
	width, height = s.cfg.Canvas.Width, s.cfg.Canvas.Height
	if v, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64); err == nil {
		width = v
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("height"), 64); err == nil {
		height = v
	}
	return width, height
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("icd")
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "icd parameter is required")
		return
	}

	entry, ok := s.hier.Query(code)
	if !ok {
		s.writeError(w, http.StatusNotFound, "ICD code "+code+" not found")
		return
	}

	related := s.hier.Related(code)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"icd_code":       code,
		"icd_name":       entry.Name,
		"exists":         true,
		"level":          entry.Level,
		"hierarchy_path": s.hier.Path(code),
		"related_nodes":  related.Nodes,
		"related_edges":  related.Edges,
	})
}

func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("icd")
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "icd parameter is required")
		return
	}

	path := s.hier.Path(code)
	if len(path) == 0 {
		s.writeError(w, http.StatusNotFound, "ICD code "+code+" not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"icd_code":       code,
		"hierarchy_path": path,
		"levels":         len(path),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	limit := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	results := s.hier.Search(query, limit)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handleSemanticSimilarity(w http.ResponseWriter, r *http.Request) {
	concept := r.URL.Query().Get("concept")
	if concept == "" {
		s.writeError(w, http.StatusBadRequest, "concept parameter is required")
		return
	}

	threshold := 0.7
	if v, err := strconv.ParseFloat(r.URL.Query().Get("threshold"), 64); err == nil {
		threshold = v
	}
	maxResults := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("max_results")); err == nil && v > 0 {
		maxResults = v
	}

	results := s.hier.SemanticSearch(concept, threshold, maxResults)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"concept":   concept,
		"threshold": threshold,
		"results":   results,
		"total":     len(results),
	})
}
