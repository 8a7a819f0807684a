package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-insight/internal/service"
)

const requestIDHeader = "X-Request-ID"

// RouterOptions agrupa las protecciones opcionales de la API. Con Tokens nil la API queda
// abierta; con Limiter nil no hay limite.
type RouterOptions struct {
	Tokens  *service.TokenService
	Limiter service.RateLimiter
}

// NewRouter configura el router de Gin con middlewares y rutas de analisis.
func NewRouter(
	logger *zap.Logger,
	analysisH *AnalysisHandler,
	reportH *ReportHandler,
	opts RouterOptions,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging y recovery.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("")
	if opts.Tokens != nil {
		api.Use(JWTAuthMiddleware(opts.Tokens))
	}
	api.Use(RateLimitMiddleware(opts.Limiter, logger))

	analyze := api.Group("/analyze", jsonContentTypeMiddleware())
	analyze.POST("/text", analysisH.AnalyzeText)
	analyze.POST("/:source/individual", analysisH.AnalyzeIndividual)
	analyze.POST("/:source/batch", analysisH.AnalyzeBatch)

	api.POST("/compare", jsonContentTypeMiddleware(), analysisH.Compare)

	api.POST("/reports", jsonContentTypeMiddleware(), reportH.CreateReport)
	api.GET("/reports/:file", reportH.DownloadReport)

	if opts.Tokens != nil {
		api.POST("/tokens/revoke", jsonContentTypeMiddleware(), revokeTokenHandler(opts.Tokens, logger))
	}

	return r
}

// requestIDMiddleware propaga X-Request-ID o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
