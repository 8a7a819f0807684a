package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/report"
	"persona-insight/internal/schemas"
	"persona-insight/internal/service"
)

// ReportHandler genera y sirve los PDF de rasgos.
type ReportHandler struct {
	logger   *zap.Logger
	svc      *service.AnalysisService
	exporter *report.Exporter
}

func NewReportHandler(logger *zap.Logger, svc *service.AnalysisService, exporter *report.Exporter) *ReportHandler {
	return &ReportHandler{logger: logger, svc: svc, exporter: exporter}
}

// CreateReport maneja POST /reports.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req struct {
		Source string          `json:"source" binding:"required"`
		Name   string          `json:"name" binding:"required"`
		Traits json.RawMessage `json:"traits" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	source, err := domain.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := schemas.ValidateTraits(req.Traits); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid traits", "details": verr.Errors})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid traits"})
		return
	}
	var traits domain.TraitVector
	if err := json.Unmarshal(req.Traits, &traits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid traits"})
		return
	}
	path, err := h.svc.ExportReport(c.Request.Context(), source, req.Name, traits)
	if err != nil {
		writeError(c, h.logger, "create report", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": filepath.Base(path)})
}

// DownloadReport maneja GET /reports/:file.
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	file := c.Param("file")
	path, err := h.exporter.Resolve(file)
	switch {
	case errors.Is(err, report.ErrInvalidFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report file"})
		return
	case errors.Is(err, os.ErrNotExist):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	case err != nil:
		h.logger.Error("resolve report failed", zap.String("file", file), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read report"})
		return
	}
	c.FileAttachment(path, file)
}

// revokeTokenHandler maneja POST /tokens/revoke: invalida el token con el que se llama.
func revokeTokenHandler(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		if err := tokens.Revoke(token); err != nil {
			logger.Warn("token revoke failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "revoked"})
	}
}
