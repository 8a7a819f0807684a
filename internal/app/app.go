// Package app arma los servicios compartidos por la API y el CLI a partir de la configuracion.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"persona-insight/internal/classifier"
	"persona-insight/internal/config"
	"persona-insight/internal/embedding"
	"persona-insight/internal/report"
	"persona-insight/internal/service"
	"persona-insight/internal/textnorm"
)

// App contiene los objetos de servicio construidos una vez por proceso.
type App struct {
	Service  *service.AnalysisService
	Exporter *report.Exporter
	Tokens   *service.TokenService
	Limiter  service.RateLimiter

	redis  *redis.Client
	logger *zap.Logger
}

// New construye embedder, clasificador, servicio de analisis y las protecciones opcionales.
// Redis es opcional: si no responde se sigue sin rate limit.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	embedder, err := NewEmbedder(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	textScorer, embScorer, err := NewClassifier(cfg, embedder, logger)
	if err != nil {
		return nil, err
	}
	policy, err := config.LoadColumnPolicy(cfg.ColumnPolicyFile)
	if err != nil {
		return nil, err
	}

	predictor := service.NewPredictor(textScorer, embScorer, cfg.ClassifierMaxTokens, logger)
	orchestrator := service.NewOrchestrator(textnorm.New(), embedder, predictor, cfg.EmbeddingBatchSize, logger)
	exporter := report.NewExporter(cfg.ReportDir)

	a := &App{
		Service:  service.NewAnalysisService(orchestrator, predictor, embedder, policy, exporter, logger),
		Exporter: exporter,
		logger:   logger,
	}

	var revocations service.RevocationList
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
			_ = client.Close()
		} else {
			a.redis = client
			a.Limiter = service.NewRedisRateLimiter(client, cfg.RateLimitWindow, cfg.RateLimitMax)
			revocations = service.NewRedisRevocationList(client)
		}
		cancel()
	}

	if cfg.JWTSecret != "" {
		a.Tokens = service.NewTokenServiceWithRevocations(cfg.JWTSecret, cfg.JWTTTL, revocations)
	} else {
		logger.Warn("jwt secret not configured, api is open")
	}

	logger.Info("services ready",
		zap.String("embedder", embedder.Name()),
		zap.String("classifier", cfg.ClassifierModel),
		zap.Bool("linear_head", cfg.ClassifierHeadFile != ""),
		zap.Bool("rate_limit", a.Limiter != nil),
	)
	return a, nil
}

// Close libera la conexion a Redis si existe.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
}

// NewEmbedder elige el proveedor de embeddings segun EMBEDDING_PROVIDER.
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *zap.Logger) (embedding.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.EmbeddingProvider)) {
	case "", "http":
		return embedding.NewHTTPClient(embedding.HTTPConfig{
			BaseURL:    cfg.EmbeddingBaseURL,
			APIKey:     cfg.EmbeddingAPIKey,
			Model:      cfg.EmbeddingModel,
			Timeout:    cfg.EmbeddingTimeout,
			MaxRetries: cfg.EmbeddingMaxRetries,
			Dimension:  cfg.EmbeddingDimension,
		}, logger), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini embedder requires GEMINI_API_KEY")
		}
		client, err := embedding.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingDimension, logger)
		if err != nil {
			return nil, fmt.Errorf("init gemini embedder: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// NewClassifier devuelve los backends de texto y embeddings. Con CLASSIFIER_HEAD_FILE los
// embeddings se puntuan localmente con la cabeza lineal, que debe aceptar la dimension del
// embedder.
func NewClassifier(cfg *config.Config, embedder embedding.Provider, logger *zap.Logger) (classifier.TextScorer, classifier.EmbeddingScorer, error) {
	remote := classifier.NewHTTPClient(cfg.ClassifierBaseURL, cfg.ClassifierAPIKey, cfg.ClassifierModel, cfg.ClassifierTimeout, logger)
	if cfg.ClassifierHeadFile == "" {
		return remote, remote, nil
	}
	head, err := classifier.LoadLinearHead(cfg.ClassifierHeadFile)
	if err != nil {
		return nil, nil, err
	}
	if dim := embedder.Dimension(); dim > 0 && dim != head.Dimension() {
		return nil, nil, fmt.Errorf("linear head expects %d-dim embeddings, %s produces %d", head.Dimension(), embedder.Name(), dim)
	}
	return remote, head, nil
}
