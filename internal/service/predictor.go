package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"persona-insight/internal/classifier"
	"persona-insight/internal/domain"
)

// DefaultMaxTokens es el largo maximo de secuencia del clasificador BERT.
const DefaultMaxTokens = 512

// Prediction es el resultado por registro: rasgos o error, nunca ambos.
type Prediction struct {
	Traits domain.TraitVector
	Err    error
}

// Predictor convierte texto o embeddings en un TraitVector usando el clasificador externo.
type Predictor struct {
	text      classifier.TextScorer
	embedding classifier.EmbeddingScorer
	maxTokens int
	logger    *zap.Logger
}

// NewPredictor recibe los backends disponibles; cualquiera de los dos puede ser nil.
func NewPredictor(text classifier.TextScorer, embedding classifier.EmbeddingScorer, maxTokens int, logger *zap.Logger) *Predictor {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{
		text:      text,
		embedding: embedding,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Predict puntua un texto. Texto vacio o "nan" devuelve el vector cero sin llamar al modelo.
func (p *Predictor) Predict(ctx context.Context, v any) (domain.TraitVector, error) {
	text := stringify(v)
	if isDegenerate(text) {
		return domain.ZeroTraits(), nil
	}
	if p.text == nil {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: classifier.ErrUnsupported}
	}

	logits, err := p.text.ScoreText(ctx, []string{truncateTokens(text, p.maxTokens)})
	if err != nil {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: err}
	}
	return traitsFromOutputs(logits, classifier.ActivationOf(p.text))
}

// PredictEmbedding puntua un embedding ya calculado. Un embedding vacio devuelve el vector cero.
func (p *Predictor) PredictEmbedding(ctx context.Context, emb domain.Embedding) (domain.TraitVector, error) {
	if len(emb) == 0 {
		return domain.ZeroTraits(), nil
	}
	if p.embedding == nil {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: classifier.ErrUnsupported}
	}

	logits, err := p.embedding.ScoreEmbeddings(ctx, []domain.Embedding{emb})
	if err != nil {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: err}
	}
	return traitsFromOutputs(logits, classifier.ActivationOf(p.embedding))
}

// PredictEach aplica Predict a cada elemento y conserva el error de cada uno.
func (p *Predictor) PredictEach(ctx context.Context, values []any) []Prediction {
	out := make([]Prediction, len(values))
	for i, v := range values {
		traits, err := p.Predict(ctx, v)
		if err != nil {
			out[i] = Prediction{Traits: domain.ZeroTraits(), Err: withIndex(err, i)}
			continue
		}
		out[i] = Prediction{Traits: traits}
	}
	return out
}

// PredictBatch es PredictEach con los errores convertidos en vectores cero. El largo de la
// salida siempre es igual al de la entrada.
func (p *Predictor) PredictBatch(ctx context.Context, values []any) []domain.TraitVector {
	preds := p.PredictEach(ctx, values)
	out := make([]domain.TraitVector, len(preds))
	for i, pred := range preds {
		if pred.Err != nil {
			p.logger.Warn("skipping text due to prediction error", zap.Int("index", i), zap.Error(pred.Err))
		}
		out[i] = pred.Traits
	}
	return out
}

// traitsFromOutputs pasa la salida del backend a puntajes: sigmoid para logits, recorte a
// [0,1] para cabezas de regresion.
func traitsFromOutputs(logits [][]float64, activation classifier.Activation) (domain.TraitVector, error) {
	if len(logits) != 1 {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: fmt.Errorf("expected 1 row of logits, got %d", len(logits))}
	}
	row := logits[0]
	if len(row) != domain.TraitCount {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: fmt.Errorf("expected %d logits, got %d", domain.TraitCount, len(row))}
	}

	var scores [domain.TraitCount]float64
	for i, l := range row {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: fmt.Errorf("non-finite logit for %s", domain.TraitNames[i])}
		}
		if activation == classifier.ActivationIdentity {
			scores[i] = l
			continue
		}
		scores[i] = sigmoid(l)
	}
	return domain.NewTraitVector(scores), nil
}

// sigmoid por rasgo: los rasgos no son excluyentes y no suman 1.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func isDegenerate(text string) bool {
	return strings.TrimSpace(text) == "" || strings.EqualFold(text, "nan")
}

func truncateTokens(text string, max int) string {
	fields := strings.Fields(text)
	if len(fields) <= max {
		return text
	}
	return strings.Join(fields[:max], " ")
}

func withIndex(err error, index int) error {
	if pe, ok := err.(*domain.PredictionError); ok {
		return &domain.PredictionError{Index: index, Cause: pe.Cause}
	}
	return &domain.PredictionError{Index: index, Cause: err}
}
