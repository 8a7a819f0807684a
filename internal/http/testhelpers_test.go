package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
	"persona-insight/internal/report"
	"persona-insight/internal/service"
	"persona-insight/internal/textnorm"
)

type stubEmbedder struct{}

func (stubEmbedder) Name() string { return "stub" }

func (stubEmbedder) Dimension() int { return 2 }

func (stubEmbedder) EmbedOne(ctx context.Context, text string) (domain.Embedding, error) {
	return domain.Embedding{0.1, 0.2}, nil
}

func (stubEmbedder) EmbedMany(ctx context.Context, texts []string, batchSize int) ([]domain.Embedding, error) {
	out := make([]domain.Embedding, len(texts))
	for i := range texts {
		out[i] = domain.Embedding{0.1, 0.2}
	}
	return out, nil
}

type stubScorer struct {
	logits []float64
	err    error
	calls  int
}

func (s *stubScorer) rows(n int) ([][]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = s.logits
	}
	return out, nil
}

func (s *stubScorer) ScoreText(ctx context.Context, texts []string) ([][]float64, error) {
	return s.rows(len(texts))
}

func (s *stubScorer) ScoreEmbeddings(ctx context.Context, embs []domain.Embedding) ([][]float64, error) {
	return s.rows(len(embs))
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

type testServer struct {
	router *gin.Engine
	scorer *stubScorer
}

func newTestServer(t *testing.T, opts RouterOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	scorer := &stubScorer{logits: []float64{1, 0, -1, 2, -2}}
	predictor := service.NewPredictor(scorer, scorer, 0, logger)
	orch := service.NewOrchestrator(textnorm.New(), stubEmbedder{}, predictor, 16, logger)
	exporter := report.NewExporter(t.TempDir())
	svc := service.NewAnalysisService(orch, predictor, stubEmbedder{}, domain.DefaultColumnPolicy(), exporter, logger)

	router := NewRouter(logger, NewAnalysisHandler(logger, svc), NewReportHandler(logger, svc, exporter), opts)
	return &testServer{router: router, scorer: scorer}
}

func performJSON(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func performMultipart(t *testing.T, r http.Handler, path string, files map[string]string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

const (
	linkedinCSV = "name,about,posts,experience,education\n" +
		"Ada Lovelace,Curious mathematician exploring engines,Notes on the engine,Analyst,Home schooled\n" +
		"Grace Hopper,Compiler pioneer,,Navy,Yale\n"
	githubCSV = "Username,Name,Description,Languages,Latest Commit,README\n" +
		"octocat,,Mascot repo,Go,fix typo in docs,Hello world\n"
)
