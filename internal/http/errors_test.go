package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
)

func TestWriteErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	schemaErr := &domain.SchemaError{Source: domain.SourceGitHub, Missing: []string{domain.GitHubLatestCommitColumn}}
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"comparison backend failure", &domain.ComparisonError{Cause: errors.New("classifier unreachable")}, http.StatusBadGateway},
		{"comparison cancelled", &domain.ComparisonError{Cause: context.Canceled}, http.StatusBadGateway},
		{"comparison bad csv", &domain.ComparisonError{Cause: schemaErr}, http.StatusUnprocessableEntity},
		{"bad csv", schemaErr, http.StatusUnprocessableEntity},
		{"empty input", domain.ErrEmptyInput, http.StatusBadRequest},
		{"not found", domain.ErrRecordNotFound, http.StatusNotFound},
		{"report", &domain.ReportError{Name: "ada", Cause: errors.New("disk full")}, http.StatusInternalServerError},
		{"prediction", &domain.PredictionError{Index: -1, Cause: errors.New("model down")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			writeError(c, zap.NewNop(), "test", tc.err)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
