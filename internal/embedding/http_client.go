package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/logger"
)

// HTTPClient implementa Provider contra un endpoint /embeddings compatible con OpenAI
// (por ejemplo sentence-transformers servido detras de un gateway).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	client     *http.Client
	maxRetries int
	dims       *dimensionTracker
	logger     *zap.Logger
}

// HTTPConfig configura el cliente HTTP de embeddings.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	// Dimension es el largo esperado de los vectores; con 0 se toma del primer response.
	Dimension int
}

// NewHTTPClient construye el cliente con valores por defecto razonables.
func NewHTTPClient(cfg HTTPConfig, logger *zap.Logger) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8081/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "all-MiniLM-L6-v2"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		dims:       newDimensionTracker(cfg.Dimension),
		logger:     logger,
	}
}

func (c *HTTPClient) Name() string { return "http:" + c.model }

func (c *HTTPClient) Dimension() int { return c.dims.get() }

func (c *HTTPClient) EmbedOne(ctx context.Context, text string) (domain.Embedding, error) {
	out, err := c.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (c *HTTPClient) EmbedMany(ctx context.Context, texts []string, batchSize int) ([]domain.Embedding, error) {
	out := make([]domain.Embedding, 0, len(texts))
	for i, batch := range batches(texts, batchSize) {
		vecs, err := c.embed(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d: %w", i, err)
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (c *HTTPClient) embed(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	inputs := make([]string, len(texts))
	for i, t := range texts {
		inputs[i] = placeholder(t)
	}
	bodyBytes, err := json.Marshal(embeddingRequest{Model: c.model, Input: inputs})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		payload, retryAfter, err := c.do(ctx, bodyBytes)
		if err == nil {
			out, err := decodeEmbeddings(payload, len(texts))
			if err != nil {
				return nil, err
			}
			if err := c.dims.check(out); err != nil {
				return nil, err
			}
			return out, nil
		}
		if !isRetryable(err) || attempt >= c.maxRetries {
			return nil, err
		}

		wait := retryDelay(attempt)
		if retryAfter > 0 {
			wait = retryAfter
		}
		c.logger.Warn("embedding request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("inputs", len(texts)),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *HTTPClient) do(ctx context.Context, body []byte) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, &statusError{cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &statusError{cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), &statusError{status: resp.StatusCode}
	}
	if resp.StatusCode >= 300 {
		c.logger.Error("embedding error response", zap.Int("status", resp.StatusCode), zap.String("body", logger.TruncateForLog(string(respBody), 512)))
		return nil, 0, fmt.Errorf("embedding http error: status=%d", resp.StatusCode)
	}
	return respBody, 0, nil
}

func decodeEmbeddings(payload []byte, want int) ([]domain.Embedding, error) {
	var er embeddingResponse
	if err := json.Unmarshal(payload, &er); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if er.Error != nil {
		return nil, fmt.Errorf("embedding api error: %s", er.Error.Message)
	}
	if len(er.Data) != want {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrCountMismatch, want, len(er.Data))
	}

	out := make([]domain.Embedding, want)
	for pos, item := range er.Data {
		idx := item.Index
		if idx == nil {
			p := pos
			idx = &p
		}
		if *idx < 0 || *idx >= want || out[*idx] != nil {
			return nil, fmt.Errorf("embedding api error: invalid index %d", *idx)
		}
		if len(item.Embedding) == 0 {
			return nil, fmt.Errorf("embedding api error: empty vector at index %d", *idx)
		}
		out[*idx] = item.Embedding
	}
	return out, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     *int             `json:"index"`
		Embedding domain.Embedding `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// statusError marca fallos transitorios (red, 429, 5xx) que vale la pena reintentar.
type statusError struct {
	status int
	cause  error
}

func (e *statusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("do request: %v", e.cause)
	}
	return fmt.Sprintf("embedding http error: status=%d", e.status)
}

func (e *statusError) Unwrap() error { return e.cause }

func isRetryable(err error) bool {
	var se *statusError
	return errors.As(err, &se)
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

