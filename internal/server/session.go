package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
	"github.com/icdkit/icdgraph/internal/lib"
	"github.com/icdkit/icdgraph/internal/model"
	"github.com/icdkit/icdgraph/internal/predict"
)

// SessionConfig is the first message a websocket client sends: what to
// predict (or which stored case to load) and the canvas to lay the graph out
// on.
type SessionConfig struct {
	CaseText  string          `json:"caseText"`
	CaseID    int64           `json:"caseId"`
	Model     string          `json:"model"`
	Params    *predict.Params `json:"params"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
}

// resizeMessage is any later message from the client; only resizes are
// understood, anything else ends the session.
type resizeMessage struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// handleSession runs one graph-streaming session: predict, build, lay out,
// stream the graph, then answer resize messages with fresh positions until
// the client goes away.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("ws upgrade err:", err)
		return
	}
	defer c.Close()

	ws := lib.NewThreadSafeWebSocket(c)

	_, msg, err := ws.ReadMessage()
	if err != nil {
		log.Println("ws cfg read err:", err)
		return
	}

	cfg := &SessionConfig{}
	if err = json.Unmarshal(msg, cfg); err != nil {
		log.Println("ws cfg unmarshal err:", err)
		return
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = s.cfg.Canvas.Width, s.cfg.Canvas.Height
	}

	pred, err := s.sessionPrediction(r, cfg)
	if err != nil {
		log.Println("ws prediction err:", err)
		return
	}

	external := s.hier.GraphForPredictions(pred.ICDPredictions, visualizedCodes)
	g := graph.Build(external, pred)
	positions := layout.Compute(g, cfg.Width, cfg.Height)

	stream := newGraphStream(ws)
	stream.sendGraph(g, positions)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var resize resizeMessage
		if err := json.Unmarshal(msg, &resize); err != nil || resize.Type != "resize" {
			// Anything else is the client telling us to stop.
			return
		}

		// A resize invalidates every position; recompute from scratch.
		positions = layout.Compute(g, resize.Width, resize.Height)
		stream.sendPositions(g, positions)
	}
}

func (s *Server) sessionPrediction(r *http.Request, cfg *SessionConfig) (model.PredictionResult, error) {
	if cfg.CaseID != 0 && s.cases != nil {
		stored, err := s.cases.GetCase(cfg.CaseID)
		if err != nil {
			return model.PredictionResult{}, err
		}
		return stored.Result, nil
	}

	params := predict.Params{TopK: s.cfg.TopK, Threshold: s.cfg.Threshold}
	if cfg.Params != nil {
		params = *cfg.Params
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = s.cfg.DefaultModel
	}

	return s.predictor.Predict(r.Context(), cfg.CaseText, modelName, params)
}
