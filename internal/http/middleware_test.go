package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"persona-insight/internal/service"
)

func TestJWTAuthMiddleware_AllowsValidAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("analyst-7")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.Subject != "analyst-7" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouterRequiresTokenWhenConfigured(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	srv := newTestServer(t, RouterOptions{Tokens: tokens})
	body := map[string]string{"source": "LinkedIn", "text": "curious builder"}

	if rec := performJSON(srv.router, http.MethodPost, "/analyze/text", body, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := performJSON(srv.router, http.MethodGet, "/healthz", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz must stay public, got %d", rec.Code)
	}

	token, err := tokens.Issue("analyst-7")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	auth := map[string]string{"Authorization": "Bearer " + token}
	if rec := performJSON(srv.router, http.MethodPost, "/analyze/text", body, auth); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	if rec := performJSON(srv.router, http.MethodPost, "/tokens/revoke", nil, auth); rec.Code != http.StatusOK {
		t.Fatalf("expected revoke 200, got %d", rec.Code)
	}
	if rec := performJSON(srv.router, http.MethodPost, "/analyze/text", body, auth); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after revoke, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	limiter := &stubLimiter{allow: false}
	srv := newTestServer(t, RouterOptions{Tokens: tokens, Limiter: limiter})

	token, err := tokens.Issue("analyst-7")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := performJSON(srv.router, http.MethodPost, "/analyze/text",
		map[string]string{"source": "LinkedIn", "text": "curious builder"},
		map[string]string{"Authorization": "Bearer " + token})

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "analyst-7" {
		t.Fatalf("expected token subject as limiter key, got %v", limiter.keys)
	}
	if srv.scorer.calls != 0 {
		t.Fatalf("expected no model calls when limited")
	}
}

func TestRateLimitMiddlewareUsesClientIP(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	srv := newTestServer(t, RouterOptions{Limiter: limiter})

	rec := performJSON(srv.router, http.MethodPost, "/analyze/text", map[string]string{"source": "LinkedIn", "text": "curious builder"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "192.0.2.1" {
		t.Fatalf("expected client ip key, got %v", limiter.keys)
	}
}
