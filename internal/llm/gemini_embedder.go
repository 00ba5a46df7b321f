// ABOUTME: Gemini embedding client backed by the Google GenAI SDK
// ABOUTME: Embeds batches natively with the semantic similarity task type
package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

const (
	// DefaultGeminiModel is the default Gemini embedding model
	DefaultGeminiModel = "gemini-embedding-001"
	// DefaultGeminiDimensions is the requested output size for Gemini embeddings
	DefaultGeminiDimensions = 768

	semanticSimilarityTask = "SEMANTIC_SIMILARITY"
)

// GeminiEmbedder generates embeddings using Google's Gemini API
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewGeminiEmbedder creates a Gemini embedder; model and dims fall back to defaults when empty
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dims int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if dims <= 0 {
		dims = DefaultGeminiDimensions
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "failed to create GenAI client",
			goerr.V("cause", err.Error()))
	}

	return &GeminiEmbedder{
		client:     client,
		model:      model,
		dimensions: dims,
	}, nil
}

// Name returns the embedder name
func (e *GeminiEmbedder) Name() string {
	return "gemini:" + e.model
}

// Dimensions returns the requested output dimensionality
func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}

// GenerateEmbedding embeds a single text
func (e *GeminiEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings embeds texts in a single native batch call
func (e *GeminiEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	dims := int32(e.dimensions)
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType:             semanticSimilarityTask,
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "GenAI embed failed",
			goerr.V("model", e.model),
			goerr.V("cause", err.Error()))
	}
	if len(result.Embeddings) != len(texts) {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "unexpected embedding count",
			goerr.V("expected", len(texts)),
			goerr.V("got", len(result.Embeddings)))
	}

	out := make([][]float64, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		// Truncated Gemini outputs are not unit length
		out[i] = vector.Normalize(vector.Float32To64(emb.Values))
	}
	return out, nil
}
