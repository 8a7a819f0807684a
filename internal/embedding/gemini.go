package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"persona-insight/internal/domain"
)

const defaultGeminiModel = "text-embedding-004"

// contentEmbedder es el subconjunto de genai.Models que usamos; permite fakes en tests.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GeminiClient implementa Provider usando la API de embeddings de Gemini.
type GeminiClient struct {
	models contentEmbedder
	model  string
	dims   *dimensionTracker
	logger *zap.Logger
}

// NewGeminiClient crea el cliente genai para el backend Gemini API. Con dimension > 0 se pide
// esa dimensionalidad de salida al modelo.
func NewGeminiClient(ctx context.Context, apiKey, model string, dimension int, logger *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiClient(client.Models, model, dimension, logger), nil
}

func newGeminiClient(models contentEmbedder, model string, dimension int, logger *zap.Logger) *GeminiClient {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{models: models, model: model, dims: newDimensionTracker(dimension), logger: logger}
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

func (g *GeminiClient) Dimension() int { return g.dims.get() }

func (g *GeminiClient) EmbedOne(ctx context.Context, text string) (domain.Embedding, error) {
	out, err := g.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (g *GeminiClient) EmbedMany(ctx context.Context, texts []string, batchSize int) ([]domain.Embedding, error) {
	out := make([]domain.Embedding, 0, len(texts))
	for i, batch := range batches(texts, batchSize) {
		vecs, err := g.embed(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d: %w", i, err)
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (g *GeminiClient) embed(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(placeholder(t), genai.RoleUser)
	}

	var cfg *genai.EmbedContentConfig
	if d := g.dims.get(); d > 0 {
		dim := int32(d)
		cfg = &genai.EmbedContentConfig{OutputDimensionality: &dim}
	}
	resp, err := g.models.EmbedContent(ctx, g.model, contents, cfg)
	if err != nil {
		g.logger.Warn("gemini embed failed", zap.String("model", g.model), zap.Int("inputs", len(texts)), zap.Error(err))
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("%w: want %d, got %d", ErrCountMismatch, len(texts), got)
	}

	out := make([]domain.Embedding, len(texts))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini embed content: empty vector at index %d", i)
		}
		out[i] = domain.Embedding(e.Values)
	}
	if err := g.dims.check(out); err != nil {
		return nil, err
	}
	return out, nil
}
