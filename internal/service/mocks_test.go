package service

import (
	"context"
	"errors"

	"persona-insight/internal/domain"
)

type mockEmbedder struct {
	manyErr   error
	oneErr    func(text string) error
	manyCalls int
	oneCalls  int
}

func (m *mockEmbedder) Name() string { return "mock" }

func (m *mockEmbedder) Dimension() int { return 2 }

func (m *mockEmbedder) EmbedOne(ctx context.Context, text string) (domain.Embedding, error) {
	m.oneCalls++
	if m.oneErr != nil {
		if err := m.oneErr(text); err != nil {
			return nil, err
		}
	}
	return domain.Embedding{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) EmbedMany(ctx context.Context, texts []string, batchSize int) ([]domain.Embedding, error) {
	m.manyCalls++
	if m.manyErr != nil {
		return nil, m.manyErr
	}
	out := make([]domain.Embedding, len(texts))
	for i, t := range texts {
		out[i] = domain.Embedding{float32(len(t)), 1}
	}
	return out, nil
}

type mockTextScorer struct {
	fn    func(text string) ([]float64, error)
	seen  []string
	calls int
}

func (m *mockTextScorer) ScoreText(ctx context.Context, texts []string) ([][]float64, error) {
	m.calls++
	m.seen = append(m.seen, texts...)
	out := make([][]float64, 0, len(texts))
	for _, t := range texts {
		row, err := m.fn(t)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

type mockEmbeddingScorer struct {
	fn    func(emb domain.Embedding) ([]float64, error)
	calls int
}

func (m *mockEmbeddingScorer) ScoreEmbeddings(ctx context.Context, embs []domain.Embedding) ([][]float64, error) {
	m.calls++
	out := make([][]float64, 0, len(embs))
	for _, e := range embs {
		row, err := m.fn(e)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

var errModelDown = errors.New("model down")

func constantLogits(v float64) func(domain.Embedding) ([]float64, error) {
	return func(domain.Embedding) ([]float64, error) {
		return []float64{v, v, v, v, v}, nil
	}
}
