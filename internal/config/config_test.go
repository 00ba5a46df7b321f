// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, provider resolution and validation
package config

import (
	"errors"
	"testing"
	"time"

	"github.com/harper/agri-advisor/internal/models"
)

var advisorEnvKeys = []string{
	"EMBEDDING_PROVIDER", "OPENAI_API_KEY", "GEMINI_API_KEY", "ADVISOR_EMBEDDING_MODEL",
	"VECTOR_DIMENSION", "OPENAI_TIMEOUT", "OPENAI_MAX_RETRIES", "OPENAI_RETRY_DELAY",
	"KNOWLEDGE_BACKEND", "KNOWLEDGE_DB_PATH", "BOOTSTRAP_BATCH_SIZE", "RETRIEVAL_TOP_K",
	"CHARM_HOST", "CHARM_DB", "CHARM_AUTO_SYNC", "QDRANT_HOST", "QDRANT_PORT",
	"QDRANT_COLLECTION", "OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "WEATHER_TIMEOUT",
	"DISEASE_TREATMENTS_PATH",
}

// clearEnv blanks every advisor variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range advisorEnvKeys {
		t.Setenv(key, "")
	}
}

func validConfig() *Config {
	return &Config{
		EmbeddingProvider:  ProviderAuto,
		KnowledgeBackend:   BackendMemory,
		MaxRetries:         3,
		BootstrapBatchSize: 10,
		RetrievalTopK:      3,
		WeatherTimeout:     5 * time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.EmbeddingProvider != ProviderAuto {
		t.Errorf("EmbeddingProvider = %s, want auto", cfg.EmbeddingProvider)
	}
	if cfg.KnowledgeBackend != BackendMemory {
		t.Errorf("KnowledgeBackend = %s, want memory", cfg.KnowledgeBackend)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "agri-advisor" {
		t.Errorf("CharmDBName = %s, want agri-advisor", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.VectorDimension != 0 {
		t.Errorf("VectorDimension = %d, want 0", cfg.VectorDimension)
	}
	if cfg.BootstrapBatchSize != 10 {
		t.Errorf("BootstrapBatchSize = %d, want 10", cfg.BootstrapBatchSize)
	}
	if cfg.RetrievalTopK != 3 {
		t.Errorf("RetrievalTopK = %d, want 3", cfg.RetrievalTopK)
	}
	if cfg.QdrantPort != 6334 {
		t.Errorf("QdrantPort = %d, want 6334", cfg.QdrantPort)
	}
	if cfg.WeatherTimeout != 5*time.Second {
		t.Errorf("WeatherTimeout = %v, want 5s", cfg.WeatherTimeout)
	}
	if cfg.OpenWeatherBaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("OpenWeatherBaseURL = %s", cfg.OpenWeatherBaseURL)
	}
	if cfg.DiseaseTreatmentsPath != "disease_treatments.json" {
		t.Errorf("DiseaseTreatmentsPath = %s, want disease_treatments.json", cfg.DiseaseTreatmentsPath)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ADVISOR_EMBEDDING_MODEL", "text-embedding-004")
	t.Setenv("VECTOR_DIMENSION", "768")
	t.Setenv("OPENAI_TIMEOUT", "60s")
	t.Setenv("OPENAI_MAX_RETRIES", "5")
	t.Setenv("KNOWLEDGE_BACKEND", "sqlite")
	t.Setenv("KNOWLEDGE_DB_PATH", "/tmp/knowledge.db")
	t.Setenv("BOOTSTRAP_BATCH_SIZE", "4")
	t.Setenv("RETRIEVAL_TOP_K", "5")
	t.Setenv("CHARM_AUTO_SYNC", "false")
	t.Setenv("WEATHER_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.EmbeddingProvider != ProviderGemini {
		t.Errorf("EmbeddingProvider = %s, want gemini", cfg.EmbeddingProvider)
	}
	if cfg.GeminiKey != "g-key" {
		t.Errorf("GeminiKey = %s, want g-key", cfg.GeminiKey)
	}
	if cfg.EmbeddingModel != "text-embedding-004" {
		t.Errorf("EmbeddingModel = %s", cfg.EmbeddingModel)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("VectorDimension = %d, want 768", cfg.VectorDimension)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.KnowledgeBackend != BackendSQLite {
		t.Errorf("KnowledgeBackend = %s, want sqlite", cfg.KnowledgeBackend)
	}
	if cfg.KnowledgeDBPath != "/tmp/knowledge.db" {
		t.Errorf("KnowledgeDBPath = %s", cfg.KnowledgeDBPath)
	}
	if cfg.BootstrapBatchSize != 4 {
		t.Errorf("BootstrapBatchSize = %d, want 4", cfg.BootstrapBatchSize)
	}
	if cfg.RetrievalTopK != 5 {
		t.Errorf("RetrievalTopK = %d, want 5", cfg.RetrievalTopK)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.WeatherTimeout != 2*time.Second {
		t.Errorf("WeatherTimeout = %v, want 2s", cfg.WeatherTimeout)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("KNOWLEDGE_BACKEND", "postgres")

	_, err := Load()
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "cohere" }, true},
		{"unknown backend", func(c *Config) { c.KnowledgeBackend = "redis" }, true},
		{"max retries too high", func(c *Config) { c.MaxRetries = 15 }, true},
		{"max retries negative", func(c *Config) { c.MaxRetries = -1 }, true},
		{"negative dimension", func(c *Config) { c.VectorDimension = -1 }, true},
		{"zero batch size", func(c *Config) { c.BootstrapBatchSize = 0 }, true},
		{"top k too high", func(c *Config) { c.RetrievalTopK = 6 }, true},
		{"top k zero", func(c *Config) { c.RetrievalTopK = 0 }, true},
		{"zero weather timeout", func(c *Config) { c.WeatherTimeout = 0 }, true},
		{"qdrant bad port", func(c *Config) { c.KnowledgeBackend = BackendQdrant; c.QdrantPort = 0 }, true},
		{"qdrant good port", func(c *Config) { c.KnowledgeBackend = BackendQdrant; c.QdrantPort = 6334 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() should fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestResolvedProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		openai   string
		gemini   string
		want     string
	}{
		{"auto with nothing", ProviderAuto, "", "", ProviderHash},
		{"auto prefers openai", ProviderAuto, "sk", "g", ProviderOpenAI},
		{"auto falls to gemini", ProviderAuto, "", "g", ProviderGemini},
		{"explicit hash", ProviderHash, "sk", "g", ProviderHash},
		{"explicit gemini", ProviderGemini, "", "", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingProvider: tt.provider, OpenAIKey: tt.openai, GeminiKey: tt.gemini}
			if got := cfg.ResolvedProvider(); got != tt.want {
				t.Errorf("ResolvedProvider() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			got := getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.ResolvedProvider() != ProviderHash {
		t.Errorf("ResolvedProvider() = %s, want %s", cfg.ResolvedProvider(), ProviderHash)
	}
}
