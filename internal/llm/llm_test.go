// ABOUTME: Tests for embedders and provider selection
// ABOUTME: Uses httptest for the OpenAI client and exercises the hash embedder directly
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(0)
	ctx := context.Background()

	a, err := e.GenerateEmbedding(ctx, "Water early in the morning")
	gt.NoError(t, err).Required()
	b, err := e.GenerateEmbedding(ctx, "Water early in the morning")
	gt.NoError(t, err).Required()

	gt.Array(t, a).Length(DefaultHashDimensions)
	gt.Value(t, a).Equal(b)
}

func TestHashEmbedder_RelatedTextScoresHigher(t *testing.T) {
	e := NewHashEmbedder(1024)
	ctx := context.Background()

	vectors, err := e.GenerateEmbeddings(ctx, []string{
		"how often should I water tomatoes",
		"Water tomatoes consistently at the base of the plant",
		"Composting improves soil fertility and structure",
	})
	gt.NoError(t, err).Required()
	gt.Array(t, vectors).Length(3)

	related := vector.Cosine(vectors[0], vectors[1])
	unrelated := vector.Cosine(vectors[0], vectors[2])
	gt.Bool(t, related > unrelated).True()
}

func TestHashEmbedder_EmptyTextIsZeroVector(t *testing.T) {
	v, err := NewHashEmbedder(8).GenerateEmbedding(context.Background(), "the and of")
	gt.NoError(t, err).Required()
	for _, x := range v {
		gt.Value(t, x).Equal(0.0)
	}
}

func TestHashEmbedder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashEmbedder(8).GenerateEmbedding(ctx, "soil")
	gt.Error(t, err).Is(models.ErrEmbedderUnavailable)
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"tomatoes": "tomato",
		"potatoes": "potato",
		"berries":  "berry",
		"leaves":   "leave",
		"grass":    "grass",
		"crops":    "crop",
		"pest":     "pest",
		"gas":      "gas",
	}
	for in, want := range tests {
		gt.Value(t, stem(in)).Equal(want)
	}
}

func newEmbeddingServer(t *testing.T, status int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}

		var req struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		// Reverse order to check index sorting
		for i := range req.Input {
			data[len(req.Input)-1-i] = item{Object: "embedding", Embedding: []float32{float32(i), 1}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "text-embedding-3-small",
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestOpenAIClient_GenerateEmbeddings(t *testing.T) {
	var calls int32
	server := newEmbeddingServer(t, http.StatusOK, &calls)
	defer server.Close()

	client, err := NewOpenAIClientWithConfig(&ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/v1",
		Dimensions: 2,
		Timeout:    time.Second,
	})
	gt.NoError(t, err).Required()

	vectors, err := client.GenerateEmbeddings(context.Background(), []string{"a", "b", "c"})
	gt.NoError(t, err).Required()
	gt.Array(t, vectors).Length(3)
	gt.Value(t, vectors[0][0]).Equal(0.0)
	gt.Value(t, vectors[2][0]).Equal(2.0)
	gt.Value(t, atomic.LoadInt32(&calls)).Equal(int32(1))
	gt.Value(t, client.Dimensions()).Equal(2)
	gt.Value(t, client.Name()).Equal("openai:text-embedding-3-small")
}

func TestOpenAIClient_FailureIsEmbedderUnavailable(t *testing.T) {
	var calls int32
	server := newEmbeddingServer(t, http.StatusInternalServerError, &calls)
	defer server.Close()

	client, err := NewOpenAIClientWithConfig(&ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/v1",
		Timeout:    time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	gt.NoError(t, err).Required()

	_, err = client.GenerateEmbedding(context.Background(), "soil")
	gt.Error(t, err).Is(models.ErrEmbedderUnavailable)
	gt.Value(t, atomic.LoadInt32(&calls)).Equal(int32(2))
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("")
	gt.Error(t, err).Is(models.ErrEmbedderUnavailable)
}

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), "", "", 0)
	gt.Error(t, err).Is(models.ErrEmbedderUnavailable)
}

func TestNewEmbedder_SelectsProvider(t *testing.T) {
	ctx := context.Background()

	hash, err := NewEmbedder(ctx, &config.Config{EmbeddingProvider: config.ProviderAuto, VectorDimension: 64}, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, hash.Name()).Equal("hash")
	gt.Value(t, hash.Dimensions()).Equal(64)

	oa, err := NewEmbedder(ctx, &config.Config{EmbeddingProvider: config.ProviderAuto, OpenAIKey: "sk-test"}, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, oa.Dimensions()).Equal(DefaultOpenAIDimensions)

	_, err = NewEmbedder(ctx, &config.Config{EmbeddingProvider: config.ProviderOpenAI}, nil)
	gt.Error(t, err).Is(models.ErrEmbedderUnavailable)

	_, err = NewEmbedder(ctx, &config.Config{EmbeddingProvider: "cohere"}, nil)
	gt.Error(t, err).Is(models.ErrValidation)
}
