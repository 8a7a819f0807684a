package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`
	LogDebug bool   `env:"LOG_DEBUG" envDefault:"false"`

	EmbeddingProvider   string        `env:"EMBEDDING_PROVIDER" envDefault:"http"`
	EmbeddingBaseURL    string        `env:"EMBEDDING_BASE_URL" envDefault:"http://localhost:8081/v1"`
	EmbeddingAPIKey     string        `env:"EMBEDDING_API_KEY"`
	EmbeddingModel      string        `env:"EMBEDDING_MODEL" envDefault:"all-MiniLM-L6-v2"`
	EmbeddingBatchSize  int           `env:"EMBEDDING_BATCH_SIZE" envDefault:"16"`
	EmbeddingTimeout    time.Duration `env:"EMBEDDING_TIMEOUT" envDefault:"30s"`
	EmbeddingMaxRetries int           `env:"EMBEDDING_MAX_RETRIES" envDefault:"3"`
	EmbeddingDimension  int           `env:"EMBEDDING_DIMENSION" envDefault:"384"`
	GeminiAPIKey        string        `env:"GEMINI_API_KEY"`
	GeminiModel         string        `env:"GEMINI_EMBEDDING_MODEL" envDefault:"text-embedding-004"`

	ClassifierBaseURL   string        `env:"CLASSIFIER_BASE_URL" envDefault:"http://localhost:8082"`
	ClassifierModel     string        `env:"CLASSIFIER_MODEL" envDefault:"Minej/bert-base-personality"`
	ClassifierAPIKey    string        `env:"CLASSIFIER_API_KEY"`
	ClassifierHeadFile  string        `env:"CLASSIFIER_HEAD_FILE"`
	ClassifierMaxTokens int           `env:"CLASSIFIER_MAX_TOKENS" envDefault:"512"`
	ClassifierTimeout   time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"30s"`

	ReportDir        string `env:"REPORT_DIR" envDefault:"reports"`
	ColumnPolicyFile string `env:"COLUMN_POLICY_FILE"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"30"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
