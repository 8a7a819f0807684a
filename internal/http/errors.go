package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
)

// writeError traduce los errores de dominio a status HTTP.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		schemaErr  *domain.SchemaError
		cmpErr     *domain.ComparisonError
		reportErr  *domain.ReportError
		predictErr *domain.PredictionError
	)

	switch {
	case errors.As(err, &cmpErr) && !errors.As(err, &schemaErr):
		logger.Warn(op+" failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &schemaErr):
		logger.Warn(op+" rejected csv", zap.Strings("missing", schemaErr.Missing))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "missing": schemaErr.Missing})
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter some content"})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &reportErr):
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.As(err, &predictErr):
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "prediction failed"})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
