package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/embedding"
)

// TextNormalizer limpia el texto crudo antes de embeberlo o puntuarlo.
type TextNormalizer interface {
	Normalize(text string) string
}

// Orchestrator aplica normalizar -> embeber -> predecir sobre una coleccion de registros.
// Un registro que falla recibe el vector cero; el batch nunca se aborta ni pierde filas.
type Orchestrator struct {
	normalizer TextNormalizer
	embedder   embedding.Provider
	predictor  *Predictor
	batchSize  int
	logger     *zap.Logger
}

func NewOrchestrator(
	normalizer TextNormalizer,
	embedder embedding.Provider,
	predictor *Predictor,
	batchSize int,
	logger *zap.Logger,
) *Orchestrator {
	if batchSize <= 0 {
		batchSize = embedding.DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		normalizer: normalizer,
		embedder:   embedder,
		predictor:  predictor,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// RunEmbedding embebe todos los textos en una sola llamada batch y puntua cada embedding.
func (o *Orchestrator) RunEmbedding(ctx context.Context, records []domain.Record, columns []string) domain.BatchResult {
	result := newBatchResult(records)
	texts := o.normalizeAll(records, columns)
	embs, embErrs := o.embedAll(ctx, result.RunID, texts)

	for i := range records {
		if isDegenerate(texts[i]) {
			continue
		}
		if embErrs[i] != nil {
			o.markFailed(&result, i, embErrs[i])
			continue
		}
		traits, err := o.predictor.PredictEmbedding(ctx, embs[i])
		if err != nil {
			o.markFailed(&result, i, withIndex(err, i))
			continue
		}
		result.Items[i].Traits = traits
	}

	o.logSummary("embedding", result)
	return result
}

// RunText puntua el texto normalizado directamente, sin pasar por el embedder.
func (o *Orchestrator) RunText(ctx context.Context, records []domain.Record, columns []string) domain.BatchResult {
	result := newBatchResult(records)
	texts := o.normalizeAll(records, columns)

	values := make([]any, len(texts))
	for i, t := range texts {
		values[i] = t
	}
	for i, pred := range o.predictor.PredictEach(ctx, values) {
		if pred.Err != nil {
			o.markFailed(&result, i, pred.Err)
			continue
		}
		result.Items[i].Traits = pred.Traits
	}

	o.logSummary("text", result)
	return result
}

// Normalize expone la normalizacion de un texto suelto para los flujos individuales.
func (o *Orchestrator) Normalize(text string) string {
	return o.normalizer.Normalize(text)
}

func (o *Orchestrator) normalizeAll(records []domain.Record, columns []string) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = o.normalizer.Normalize(r.RawText(columns))
	}
	return texts
}

// embedAll intenta un unico EmbedMany; si falla, cae a EmbedOne por texto para que solo
// los textos problematicos queden sin embedding.
func (o *Orchestrator) embedAll(ctx context.Context, runID string, texts []string) ([]domain.Embedding, []error) {
	errs := make([]error, len(texts))
	if len(texts) == 0 {
		return nil, errs
	}

	embs, err := o.embedder.EmbedMany(ctx, texts, o.batchSize)
	if err == nil && len(embs) == len(texts) {
		return embs, errs
	}
	if err == nil {
		err = fmt.Errorf("%w: want %d, got %d", embedding.ErrCountMismatch, len(texts), len(embs))
	}
	o.logger.Warn("batch embedding failed, falling back to single embeddings",
		zap.String("run_id", runID),
		zap.String("embedder", o.embedder.Name()),
		zap.Int("records", len(texts)),
		zap.Error(err),
	)

	embs = make([]domain.Embedding, len(texts))
	for i, t := range texts {
		if isDegenerate(t) {
			continue
		}
		emb, err := o.embedder.EmbedOne(ctx, t)
		if err != nil {
			errs[i] = &domain.PredictionError{Index: i, Cause: fmt.Errorf("embed: %w", err)}
			continue
		}
		embs[i] = emb
	}
	return embs, errs
}

func (o *Orchestrator) markFailed(result *domain.BatchResult, i int, err error) {
	result.Items[i].Traits = domain.ZeroTraits()
	result.Items[i].Failed = true
	o.logger.Warn("record prediction failed",
		zap.String("run_id", result.RunID),
		zap.Int("index", i),
		zap.String("name", result.Items[i].Name),
		zap.Error(err),
	)
}

func (o *Orchestrator) logSummary(path string, result domain.BatchResult) {
	o.logger.Info("batch scored",
		zap.String("run_id", result.RunID),
		zap.String("path", path),
		zap.Int("records", len(result.Items)),
		zap.Int("failed", result.Failures()),
	)
}

func newBatchResult(records []domain.Record) domain.BatchResult {
	items := make([]domain.ScoredRecord, len(records))
	for i, r := range records {
		items[i] = domain.ScoredRecord{
			Name:     r.DisplayName(),
			Username: r.Username,
			Source:   r.Source,
			Traits:   domain.ZeroTraits(),
		}
	}
	return domain.BatchResult{RunID: uuid.NewString(), Items: items}
}
