package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"persona-insight/internal/dataset"
	"persona-insight/internal/domain"
	"persona-insight/internal/embedding"
)

// ReportExporter genera el PDF de rasgos y devuelve la ruta escrita.
type ReportExporter interface {
	Export(source domain.Source, name string, traits domain.TraitVector) (string, error)
}

// IndividualResult es el analisis de un unico registro elegido por nombre.
type IndividualResult struct {
	Record domain.Record      `json:"record"`
	Traits domain.TraitVector `json:"traits"`
}

// AnalysisService expone los flujos del dashboard: texto manual, individual, batch,
// comparacion entre plataformas y exportacion de reportes.
type AnalysisService struct {
	orchestrator *Orchestrator
	predictor    *Predictor
	embedder     embedding.Provider
	policy       domain.ColumnPolicy
	exporter     ReportExporter
	logger       *zap.Logger
}

func NewAnalysisService(
	orchestrator *Orchestrator,
	predictor *Predictor,
	embedder embedding.Provider,
	policy domain.ColumnPolicy,
	exporter ReportExporter,
	logger *zap.Logger,
) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		orchestrator: orchestrator,
		predictor:    predictor,
		embedder:     embedder,
		policy:       policy.WithDefaults(),
		exporter:     exporter,
		logger:       logger,
	}
}

// Policy devuelve la politica de columnas efectiva.
func (s *AnalysisService) Policy() domain.ColumnPolicy {
	return s.policy
}

// AnalyzeText analiza texto pegado a mano. Texto en blanco devuelve ErrEmptyInput.
func (s *AnalysisService) AnalyzeText(ctx context.Context, source domain.Source, text string) (domain.TraitVector, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ZeroTraits(), domain.ErrEmptyInput
	}
	rec := domain.Record{Name: "manual input", Source: source}
	if err := rec.Validate(); err != nil {
		return domain.ZeroTraits(), fmt.Errorf("invalid source %q: %w", source, err)
	}

	traits, err := s.scoreText(ctx, text)
	if err != nil {
		s.logger.Warn("manual analysis failed", zap.String("source", source.String()), zap.Error(err))
		return domain.ZeroTraits(), err
	}
	return traits, nil
}

// AnalyzeIndividual analiza la primera fila cuyo identificador coincide con key
// (name en LinkedIn, Username en GitHub).
func (s *AnalysisService) AnalyzeIndividual(ctx context.Context, source domain.Source, records []domain.Record, key string) (IndividualResult, error) {
	rec, ok := dataset.Find(records, key)
	if !ok {
		return IndividualResult{}, fmt.Errorf("%s %q: %w", source, key, domain.ErrRecordNotFound)
	}
	if err := rec.Validate(); err != nil {
		return IndividualResult{}, fmt.Errorf("invalid record %q: %w", key, err)
	}

	traits, err := s.scoreText(ctx, rec.RawText(s.policy.Analysis(source)))
	if err != nil {
		s.logger.Warn("individual analysis failed",
			zap.String("source", source.String()),
			zap.String("name", rec.DisplayName()),
			zap.Error(err),
		)
		return IndividualResult{}, err
	}
	return IndividualResult{Record: rec, Traits: traits}, nil
}

// AnalyzeAll puntua todo el dataset por el camino de embeddings.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, source domain.Source, records []domain.Record) domain.BatchResult {
	return s.orchestrator.RunEmbedding(ctx, records, s.policy.Analysis(source))
}

// AnalyzeAllCSV valida el CSV completo antes de puntuar; un *domain.SchemaError corta el
// flujo sin ninguna llamada a los modelos.
func (s *AnalysisService) AnalyzeAllCSV(ctx context.Context, source domain.Source, r io.Reader) (domain.BatchResult, error) {
	records, err := dataset.Read(r, source)
	if err != nil {
		return domain.BatchResult{}, err
	}
	return s.AnalyzeAll(ctx, source, records), nil
}

// Compare promedia ambos datasets por el camino de texto y los compara rasgo a rasgo.
// Cualquier fallo se devuelve como *domain.ComparisonError.
func (s *AnalysisService) Compare(ctx context.Context, linkedin, github []domain.Record) (domain.ComparisonResult, error) {
	left := s.orchestrator.RunText(ctx, linkedin, s.policy.Comparison(domain.SourceLinkedIn))
	right := s.orchestrator.RunText(ctx, github, s.policy.Comparison(domain.SourceGitHub))
	if err := ctx.Err(); err != nil {
		return domain.ComparisonResult{}, &domain.ComparisonError{Cause: err}
	}

	result := Compare(Average(left), Average(right), domain.SourceLinkedIn, domain.SourceGitHub)
	s.logger.Info("comparison done",
		zap.Int("linkedin_records", len(left.Items)),
		zap.Int("github_records", len(right.Items)),
		zap.String("dominant_linkedin", result.DominantA.Trait),
		zap.String("dominant_github", result.DominantB.Trait),
	)
	return result, nil
}

// CompareCSV lee ambos CSV y ejecuta Compare. El CSV de GitHub solo necesita "Latest Commit".
func (s *AnalysisService) CompareCSV(ctx context.Context, linkedin, github io.Reader) (domain.ComparisonResult, error) {
	left, err := dataset.Read(linkedin, domain.SourceLinkedIn)
	if err != nil {
		return domain.ComparisonResult{}, &domain.ComparisonError{Cause: err}
	}
	right, err := dataset.ReadCommits(github)
	if err != nil {
		return domain.ComparisonResult{}, &domain.ComparisonError{Cause: err}
	}
	return s.Compare(ctx, left, right)
}

// ExportReport delega en el exportador; el error siempre llega al usuario.
func (s *AnalysisService) ExportReport(ctx context.Context, source domain.Source, name string, traits domain.TraitVector) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &domain.ReportError{Name: name, Cause: err}
	}
	if s.exporter == nil {
		return "", &domain.ReportError{Name: name, Cause: fmt.Errorf("no report exporter configured")}
	}
	path, err := s.exporter.Export(source, name, traits)
	if err != nil {
		s.logger.Error("report export failed", zap.String("name", name), zap.Error(err))
		var reportErr *domain.ReportError
		if !errors.As(err, &reportErr) {
			err = &domain.ReportError{Name: name, Cause: err}
		}
		return "", err
	}
	s.logger.Info("report exported", zap.String("source", source.String()), zap.String("path", path))
	return path, nil
}

// scoreText aplica normalizar -> embeber -> predecir a un unico texto.
func (s *AnalysisService) scoreText(ctx context.Context, raw string) (domain.TraitVector, error) {
	text := s.orchestrator.Normalize(raw)
	if isDegenerate(text) {
		return domain.ZeroTraits(), nil
	}
	emb, err := s.embedder.EmbedOne(ctx, text)
	if err != nil {
		return domain.ZeroTraits(), &domain.PredictionError{Index: -1, Cause: fmt.Errorf("embed: %w", err)}
	}
	return s.predictor.PredictEmbedding(ctx, emb)
}
