package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/logger"
)

// HTTPClient habla con un servidor de inferencia que expone POST /predict y devuelve logits.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye el cliente apuntando al servidor de inferencia.
func NewHTTPClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8082"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) ScoreText(ctx context.Context, texts []string) ([][]float64, error) {
	return c.predict(ctx, predictRequest{Model: c.model, Inputs: texts}, len(texts))
}

func (c *HTTPClient) ScoreEmbeddings(ctx context.Context, embs []domain.Embedding) ([][]float64, error) {
	return c.predict(ctx, predictRequest{Model: c.model, Embeddings: embs}, len(embs))
}

func (c *HTTPClient) predict(ctx context.Context, reqBody predictRequest, want int) ([][]float64, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("classifier error status", zap.Int("status", resp.StatusCode), zap.String("body", logger.TruncateForLog(string(respBody), 512)))
		return nil, fmt.Errorf("classifier http error: status=%d", resp.StatusCode)
	}

	var pr predictResponse
	if err := json.Unmarshal(respBody, &pr); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if pr.Error != nil {
		return nil, fmt.Errorf("classifier api error: %s", pr.Error.Message)
	}
	if len(pr.Logits) != want {
		return nil, fmt.Errorf("classifier returned %d rows for %d inputs", len(pr.Logits), want)
	}
	return pr.Logits, nil
}

type predictRequest struct {
	Model      string             `json:"model,omitempty"`
	Inputs     []string           `json:"inputs,omitempty"`
	Embeddings []domain.Embedding `json:"embeddings,omitempty"`
}

type predictResponse struct {
	Logits [][]float64 `json:"logits"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
