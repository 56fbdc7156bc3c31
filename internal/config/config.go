package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// AI provider (OpenAI-compatible)
	OpenAIBaseURL string
	OpenAIAPIKey  string
	EmbedModel    string
	ChatModel     string

	// Vector index
	IndexBackend   string // "weaviate" or "memory"
	WeaviateURL    string
	WeaviateAPIKey string

	// Uploads
	UploadDir      string
	MaxUploadBytes int64

	// Chunking defaults
	DefaultChunkSize    int
	DefaultChunkOverlap int

	// Query defaults
	DefaultMaxCitations int

	// Upload policy: delete all existing documents before each new upload.
	SingleDocument bool

	// Async ingest
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		EmbedModel:    envOr("EMBED_MODEL", "text-embedding-3-small"),
		ChatModel:     envOr("CHAT_MODEL", "gpt-4o-mini"),

		IndexBackend:   envOr("INDEX_BACKEND", "weaviate"),
		WeaviateURL:    envOr("WEAVIATE_URL", "http://localhost:8081"),
		WeaviateAPIKey: os.Getenv("WEAVIATE_API_KEY"),

		UploadDir:      envOr("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultChunkSize:    envInt("DEFAULT_CHUNK_SIZE", 1000),
		DefaultChunkOverlap: envInt("DEFAULT_CHUNK_OVERLAP", 200),

		DefaultMaxCitations: envInt("DEFAULT_MAX_CITATIONS", 3),

		SingleDocument: envBool("SINGLE_DOCUMENT", true),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultChunkSize <= 0 {
		cfg.DefaultChunkSize = 1000
	}
	if cfg.DefaultChunkOverlap < 0 {
		cfg.DefaultChunkOverlap = 200
	}
	if cfg.DefaultMaxCitations <= 0 {
		cfg.DefaultMaxCitations = 3
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.IndexBackend {
	case "weaviate":
		if c.WeaviateURL == "" {
			return fmt.Errorf("WEAVIATE_URL is required for the weaviate backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown INDEX_BACKEND %q", c.IndexBackend)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
