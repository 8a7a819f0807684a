package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/dataset"
	"persona-insight/internal/domain"
	"persona-insight/internal/service"
)

// AnalysisHandler expone los flujos de analisis y comparacion.
type AnalysisHandler struct {
	logger *zap.Logger
	svc    *service.AnalysisService
}

// NewAnalysisHandler crea una instancia de AnalysisHandler con dependencias necesarias.
func NewAnalysisHandler(logger *zap.Logger, svc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, svc: svc}
}

// AnalyzeText maneja POST /analyze/text.
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req struct {
		Source string `json:"source" binding:"required"`
		Text   string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze text request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	source, err := domain.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	traits, err := h.svc.AnalyzeText(c.Request.Context(), source, req.Text)
	if err != nil {
		writeError(c, h.logger, "analyze text", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"traits": traits})
}

// AnalyzeIndividual maneja POST /analyze/:source/individual (multipart file + name).
func (h *AnalysisHandler) AnalyzeIndividual(c *gin.Context) {
	source, ok := h.sourceParam(c)
	if !ok {
		return
	}
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	file, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer file.Close()

	records, err := dataset.Read(file, source)
	if err != nil {
		writeError(c, h.logger, "analyze individual", err)
		return
	}
	res, err := h.svc.AnalyzeIndividual(c.Request.Context(), source, records, name)
	if err != nil {
		writeError(c, h.logger, "analyze individual", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": res.Record.DisplayName(), "record": res.Record, "traits": res.Traits})
}

// AnalyzeBatch maneja POST /analyze/:source/batch (multipart file).
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	source, ok := h.sourceParam(c)
	if !ok {
		return
	}
	file, ok := h.formFile(c, "file")
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.svc.AnalyzeAllCSV(c.Request.Context(), source, file)
	if err != nil {
		writeError(c, h.logger, "analyze batch", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": result.RunID, "results": result.Items, "failed": result.Failures()})
}

// Compare maneja POST /compare (multipart linkedin + github).
func (h *AnalysisHandler) Compare(c *gin.Context) {
	linkedin, ok := h.formFile(c, "linkedin")
	if !ok {
		return
	}
	defer linkedin.Close()
	github, ok := h.formFile(c, "github")
	if !ok {
		return
	}
	defer github.Close()

	res, err := h.svc.CompareCSV(c.Request.Context(), linkedin, github)
	if err != nil {
		writeError(c, h.logger, "compare", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) sourceParam(c *gin.Context) (domain.Source, bool) {
	source, err := domain.ParseSource(c.Param("source"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return source, true
}

func (h *AnalysisHandler) formFile(c *gin.Context, field string) (io.ReadCloser, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s file is required", field)})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		h.logger.Error("open upload failed", zap.String("field", field), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return nil, false
	}
	return f, true
}
