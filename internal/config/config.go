// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the persistence backend: "postgres" or "memory".
	Store string `koanf:"store"`

	// DatabaseURL is the Postgres connection string. Required when
	// Store is "postgres".
	DatabaseURL string `koanf:"database_url"`

	// WorkerCount sets the number of concurrent scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DefaultLimit is the match count used when a request omits one.
	DefaultLimit int `koanf:"default_limit"`

	// GeminiAPIKey enables embedding-based semantic scoring when set.
	// Without it the engine uses the local token-overlap fallback.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel overrides the default embedding model.
	GeminiModel string `koanf:"gemini_model"`

	// EmbedTimeoutMS bounds each embedding call.
	EmbedTimeoutMS int `koanf:"embed_timeout_ms"`
}

// Store backend names.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		Store:          StoreMemory,
		WorkerCount:    8,
		DefaultLimit:   10,
		EmbedTimeoutMS: 10_000,
	}
}
