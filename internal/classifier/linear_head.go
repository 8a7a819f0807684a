package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"persona-insight/internal/domain"
)

// LinearHead es una capa lineal sobre embeddings (W·e + b) cargada desde un archivo JSON.
// Es la forma servible de la cabeza de regresion entrenada offline.
type LinearHead struct {
	dimension  int
	weights    [domain.TraitCount][]float64
	bias       [domain.TraitCount]float64
	activation Activation
}

type linearHeadFile struct {
	Dimension  int         `json:"dimension"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// LoadLinearHead lee y valida los pesos desde path.
func LoadLinearHead(path string) (*LinearHead, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read linear head: %w", err)
	}
	return ParseLinearHead(raw)
}

// ParseLinearHead valida que haya cinco filas de pesos del largo declarado.
func ParseLinearHead(raw []byte) (*LinearHead, error) {
	var f linearHeadFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse linear head: %w", err)
	}
	if f.Dimension <= 0 {
		return nil, errors.New("linear head: dimension must be positive")
	}
	if len(f.Weights) != domain.TraitCount {
		return nil, fmt.Errorf("linear head: want %d weight rows, got %d", domain.TraitCount, len(f.Weights))
	}
	if f.Bias != nil && len(f.Bias) != domain.TraitCount {
		return nil, fmt.Errorf("linear head: want %d bias values, got %d", domain.TraitCount, len(f.Bias))
	}

	activation := Activation(f.Activation)
	switch activation {
	case "":
		activation = ActivationIdentity
	case ActivationIdentity, ActivationSigmoid:
	default:
		return nil, fmt.Errorf("linear head: unknown activation %q", f.Activation)
	}

	h := &LinearHead{dimension: f.Dimension, activation: activation}
	for i, row := range f.Weights {
		if len(row) != f.Dimension {
			return nil, fmt.Errorf("linear head: row %d has %d weights, want %d", i, len(row), f.Dimension)
		}
		h.weights[i] = row
	}
	copy(h.bias[:], f.Bias)
	return h, nil
}

// Activation es "identity" para cabezas de regresion (default) y "sigmoid" para cabezas de logits.
func (h *LinearHead) Activation() Activation { return h.activation }

// Dimension es el largo de embedding que acepta la cabeza.
func (h *LinearHead) Dimension() int { return h.dimension }

func (h *LinearHead) ScoreEmbeddings(ctx context.Context, embs []domain.Embedding) ([][]float64, error) {
	out := make([][]float64, len(embs))
	for i, emb := range embs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(emb) != h.dimension {
			return nil, fmt.Errorf("linear head: embedding %d has dimension %d, want %d", i, len(emb), h.dimension)
		}
		logits := make([]float64, domain.TraitCount)
		for t := range logits {
			sum := h.bias[t]
			for j, x := range emb {
				sum += h.weights[t][j] * float64(x)
			}
			logits[t] = sum
		}
		out[i] = logits
	}
	return out, nil
}
