// ABOUTME: Local deterministic embedder using signed feature hashing
// ABOUTME: Used offline and in tests when no embedding API key is configured
package llm

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/util"
	"github.com/harper/agri-advisor/internal/vector"
)

// DefaultHashDimensions is the bucket count for the hash embedder
const DefaultHashDimensions = 4096

const bigramWeight = 0.5

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "can": {}, "do": {}, "does": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"me": {}, "my": {}, "of": {}, "on": {}, "or": {}, "our": {}, "should": {}, "so": {},
	"such": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "why": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

// HashEmbedder maps text to vectors by hashing stemmed unigrams and bigrams
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder creates a hash embedder; dims <= 0 uses DefaultHashDimensions
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &HashEmbedder{dimensions: dims}
}

// Name returns the embedder name
func (h *HashEmbedder) Name() string {
	return "hash"
}

// Dimensions returns the bucket count
func (h *HashEmbedder) Dimensions() int {
	return h.dimensions
}

// GenerateEmbedding embeds a single text
func (h *HashEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "context done", goerr.V("cause", err.Error()))
	}
	return h.embed(text), nil
}

// GenerateEmbeddings embeds each text independently
func (h *HashEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, err := h.GenerateEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (h *HashEmbedder) embed(text string) []float64 {
	v := make([]float64, h.dimensions)

	terms := make([]string, 0)
	for _, tok := range util.Tokenize(text) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		terms = append(terms, stem(tok))
	}

	for i, term := range terms {
		h.add(v, term, 1.0)
		if i > 0 {
			h.add(v, terms[i-1]+" "+term, bigramWeight)
		}
	}

	return vector.Normalize(v)
}

func (h *HashEmbedder) add(v []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dimensions))
	if sum>>63 == 1 {
		weight = -weight
	}
	v[idx] += weight
}

// stem strips common English plural endings
func stem(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 4 && strings.HasSuffix(word, "oes"):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us"):
		return word[:len(word)-1]
	}
	return word
}
