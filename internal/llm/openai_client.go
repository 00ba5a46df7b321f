// ABOUTME: OpenAI embedding client for the knowledge store
// ABOUTME: Uses text-embedding-3-small with per-attempt timeouts and exponential backoff
package llm

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/util"
	"github.com/harper/agri-advisor/internal/vector"
)

const (
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultOpenAIDimensions is the native size of text-embedding-3-small
	DefaultOpenAIDimensions = 1536
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel openai.EmbeddingModel
	Dimensions     int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		EmbeddingModel: DefaultEmbeddingModel,
		Dimensions:     DefaultOpenAIDimensions,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	dimensions     int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}
	dims := config.Dimensions
	if dims <= 0 {
		dims = DefaultOpenAIDimensions
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		embeddingModel: model,
		dimensions:     dims,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// Name returns the embedder name
func (c *OpenAIClient) Name() string {
	return "openai:" + string(c.embeddingModel)
}

// Dimensions returns the configured vector size
func (c *OpenAIClient) Dimensions() int {
	return c.dimensions
}

// GenerateEmbedding generates an embedding vector for a single text
func (c *OpenAIClient) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings embeds a batch of texts in one request per attempt
func (c *OpenAIClient) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var vectors [][]float64
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context, attempt int) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req := openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		}
		if c.dimensions != DefaultOpenAIDimensions {
			req.Dimensions = c.dimensions
		}

		resp, err := c.client.CreateEmbeddings(attemptCtx, req)
		if err != nil {
			return goerr.Wrap(err, "embedding request failed", goerr.V("attempt", attempt+1))
		}
		if len(resp.Data) != len(texts) {
			return goerr.New("unexpected embedding count",
				goerr.V("attempt", attempt+1),
				goerr.V("expected", len(texts)),
				goerr.V("got", len(resp.Data)))
		}

		data := resp.Data
		sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

		out := make([][]float64, len(data))
		for i, d := range data {
			out[i] = vector.Float32To64(d.Embedding)
		}
		vectors = out
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "failed to generate embeddings",
			goerr.V("model", string(c.embeddingModel)),
			goerr.V("cause", err.Error()))
	}

	return vectors, nil
}
