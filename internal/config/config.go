// ABOUTME: Centralized configuration for the agricultural advisor
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
)

// Embedding providers
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderHash   = "hash"
)

// Knowledge backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendQdrant = "qdrant"
)

// Config holds all configuration for the advisor
type Config struct {
	// Embedding settings
	EmbeddingProvider string
	OpenAIKey         string
	GeminiKey         string
	EmbeddingModel    string
	VectorDimension   int
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration

	// Knowledge store settings
	KnowledgeBackend   string
	KnowledgeDBPath    string
	BootstrapBatchSize int
	RetrievalTopK      int

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Qdrant settings
	QdrantHost       string
	QdrantPort       int
	QdrantCollection string

	// Source adapter settings
	OpenWeatherKey        string
	OpenWeatherBaseURL    string
	WeatherTimeout        time.Duration
	DiseaseTreatmentsPath string
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		EmbeddingProvider:     ProviderAuto,
		Timeout:               30 * time.Second,
		MaxRetries:            3,
		RetryDelay:            2 * time.Second,
		KnowledgeBackend:      BackendMemory,
		BootstrapBatchSize:    10,
		RetrievalTopK:         models.DefaultTopK,
		CharmHost:             "cloud.charm.sh",
		CharmDBName:           "agri-advisor",
		AutoSync:              true,
		QdrantHost:            "localhost",
		QdrantPort:            6334,
		QdrantCollection:      "agri_knowledge",
		OpenWeatherBaseURL:    "https://api.openweathermap.org/data/2.5",
		WeatherTimeout:        5 * time.Second,
		DiseaseTreatmentsPath: "disease_treatments.json",
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", ProviderAuto),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel:    os.Getenv("ADVISOR_EMBEDDING_MODEL"),
		VectorDimension:   getEnvInt("VECTOR_DIMENSION", 0),
		Timeout:           getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		KnowledgeBackend:   getEnv("KNOWLEDGE_BACKEND", BackendMemory),
		KnowledgeDBPath:    os.Getenv("KNOWLEDGE_DB_PATH"),
		BootstrapBatchSize: getEnvInt("BOOTSTRAP_BATCH_SIZE", 10),
		RetrievalTopK:      getEnvInt("RETRIEVAL_TOP_K", models.DefaultTopK),

		CharmHost:   getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName: getEnv("CHARM_DB", "agri-advisor"),
		AutoSync:    getEnvBool("CHARM_AUTO_SYNC", true),

		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "agri_knowledge"),

		OpenWeatherKey:        os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL:    getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherTimeout:        getEnvDuration("WEATHER_TIMEOUT", 5*time.Second),
		DiseaseTreatmentsPath: getEnv("DISEASE_TREATMENTS_PATH", "disease_treatments.json"),
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	switch c.EmbeddingProvider {
	case ProviderAuto, ProviderOpenAI, ProviderGemini, ProviderHash:
	default:
		return goerr.Wrap(models.ErrValidation, "EMBEDDING_PROVIDER must be auto, openai, gemini or hash",
			goerr.V("value", c.EmbeddingProvider))
	}
	switch c.KnowledgeBackend {
	case BackendMemory, BackendSQLite, BackendCharm, BackendQdrant:
	default:
		return goerr.Wrap(models.ErrValidation, "KNOWLEDGE_BACKEND must be memory, sqlite, charm or qdrant",
			goerr.V("value", c.KnowledgeBackend))
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return goerr.Wrap(models.ErrValidation, "OPENAI_MAX_RETRIES must be 0-10", goerr.V("value", c.MaxRetries))
	}
	if c.VectorDimension < 0 {
		return goerr.Wrap(models.ErrValidation, "VECTOR_DIMENSION must not be negative", goerr.V("value", c.VectorDimension))
	}
	if c.BootstrapBatchSize < 1 {
		return goerr.Wrap(models.ErrValidation, "BOOTSTRAP_BATCH_SIZE must be at least 1", goerr.V("value", c.BootstrapBatchSize))
	}
	if c.RetrievalTopK < 1 || c.RetrievalTopK > models.MaxTopK {
		return goerr.Wrap(models.ErrValidation, "RETRIEVAL_TOP_K must be 1-5", goerr.V("value", c.RetrievalTopK))
	}
	if c.WeatherTimeout <= 0 {
		return goerr.Wrap(models.ErrValidation, "WEATHER_TIMEOUT must be positive", goerr.V("value", c.WeatherTimeout))
	}
	if c.KnowledgeBackend == BackendQdrant && (c.QdrantPort < 1 || c.QdrantPort > 65535) {
		return goerr.Wrap(models.ErrValidation, "QDRANT_PORT must be a valid port", goerr.V("value", c.QdrantPort))
	}
	return nil
}

// ResolvedProvider returns the embedding provider after resolving auto
func (c *Config) ResolvedProvider() string {
	if c.EmbeddingProvider != ProviderAuto {
		return c.EmbeddingProvider
	}
	switch {
	case c.OpenAIKey != "":
		return ProviderOpenAI
	case c.GeminiKey != "":
		return ProviderGemini
	}
	return ProviderHash
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
