// ABOUTME: Embedder interface and provider selection from configuration
// ABOUTME: auto picks OpenAI, then Gemini, then the local hash embedder
package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/models"
)

// Embedder maps text to fixed-length vectors
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
	Dimensions() int
	Name() string
}

// NewEmbedder builds the embedder selected by cfg
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Embedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := cfg.ResolvedProvider()
	logger.Debug("selecting embedder", zap.String("provider", provider))

	switch provider {
	case config.ProviderOpenAI:
		clientCfg := DefaultConfig(cfg.OpenAIKey)
		if cfg.EmbeddingModel != "" {
			clientCfg.EmbeddingModel = openai.EmbeddingModel(cfg.EmbeddingModel)
		}
		if cfg.VectorDimension > 0 {
			clientCfg.Dimensions = cfg.VectorDimension
		}
		clientCfg.Timeout = cfg.Timeout
		clientCfg.MaxRetries = cfg.MaxRetries
		clientCfg.RetryDelay = cfg.RetryDelay
		client, err := NewOpenAIClientWithConfig(clientCfg)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.ProviderGemini:
		embedder, err := NewGeminiEmbedder(ctx, cfg.GeminiKey, cfg.EmbeddingModel, cfg.VectorDimension)
		if err != nil {
			return nil, err
		}
		return embedder, nil

	case config.ProviderHash:
		return NewHashEmbedder(cfg.VectorDimension), nil
	}

	return nil, goerr.Wrap(models.ErrValidation, "unknown embedding provider", goerr.V("provider", provider))
}
