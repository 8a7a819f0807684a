package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "http", cfg.EmbeddingProvider)
	assert.Equal(t, 16, cfg.EmbeddingBatchSize)
	assert.Equal(t, 30*time.Second, cfg.EmbeddingTimeout)
	assert.Equal(t, 3, cfg.EmbeddingMaxRetries)
	assert.Equal(t, 384, cfg.EmbeddingDimension)
	assert.Equal(t, "Minej/bert-base-personality", cfg.ClassifierModel)
	assert.Equal(t, 512, cfg.ClassifierMaxTokens)
	assert.Equal(t, "reports", cfg.ReportDir)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EMBEDDING_PROVIDER", "gemini")
	t.Setenv("EMBEDDING_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("EMBEDDING_MAX_RETRIES", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "gemini", cfg.EmbeddingProvider)
	assert.Equal(t, 5*time.Second, cfg.EmbeddingTimeout)
	assert.Equal(t, 3, cfg.RateLimitMax)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 0, cfg.EmbeddingMaxRetries)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("EMBEDDING_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
