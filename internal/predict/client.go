package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/corpix/uarand"
	"golang.org/x/time/rate"

	"github.com/icdkit/icdgraph/internal/model"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond keeps us polite towards shared model services.
	requestsPerSecond = 10
)

// Client is a rate-limited JSON-over-HTTP client for a prediction service and
// its knowledge-graph endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

var _ Predictor = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    baseURL,
	}
}

type predictRequest struct {
	CaseText string `json:"caseText"`
	Model    string `json:"model,omitempty"`
	Params   Params `json:"params"`
}

// Predict submits case text and decodes the ranked predictions.
func (c *Client) Predict(ctx context.Context, caseText, modelName string, params Params) (model.PredictionResult, error) {
	var result model.PredictionResult
	body := predictRequest{CaseText: caseText, Model: modelName, Params: params}
	if err := c.post(ctx, "/api/predict", body, &result); err != nil {
		return model.PredictionResult{}, err
	}
	return result, nil
}

// FetchGraph asks the backend for the authoritative graph for a prediction
// result. Callers treat any error the same as an empty graph: the builder
// falls back to synthesizing one.
func (c *Client) FetchGraph(ctx context.Context, pred model.PredictionResult) (*model.ExternalGraph, error) {
	var g model.ExternalGraph
	if err := c.post(ctx, "/api/graph/visualize", pred, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("got non-OK status code: %v", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
