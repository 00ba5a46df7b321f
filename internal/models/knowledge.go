// ABOUTME: Knowledge document models for the semantic knowledge store
// ABOUTME: Defines stored passages, ranked matches, and query request/result shapes
package models

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Top-k bounds for knowledge queries
const (
	DefaultTopK = 3
	MaxTopK     = 5
)

// DefaultSourceTag is applied to ingested documents without a source
const DefaultSourceTag = "manual"

// KnowledgeDocument is a single passage in the knowledge store.
// Re-ingesting an existing ID replaces text, source and embedding but keeps Seq.
type KnowledgeDocument struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	SourceTag string    `json:"source_tag"`
	Embedding []float64 `json:"embedding"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the document is storable with the given embedding dimension
func (d *KnowledgeDocument) Validate(dim int) error {
	if strings.TrimSpace(d.ID) == "" {
		return goerr.Wrap(ErrValidation, "document id cannot be empty")
	}
	if strings.TrimSpace(d.Text) == "" {
		return goerr.Wrap(ErrValidation, "document text cannot be empty", goerr.V("id", d.ID))
	}
	if len(d.Embedding) == 0 {
		return goerr.Wrap(ErrValidation, "document embedding cannot be empty", goerr.V("id", d.ID))
	}
	if dim > 0 && len(d.Embedding) != dim {
		return goerr.Wrap(ErrValidation, "embedding dimension mismatch",
			goerr.V("id", d.ID),
			goerr.V("expected", dim),
			goerr.V("got", len(d.Embedding)))
	}
	return nil
}

// KnowledgeMatch is a stored document with its similarity to a query
type KnowledgeMatch struct {
	Document KnowledgeDocument `json:"document"`
	Score    float64           `json:"score"`
}

// SeedDocument is an entry of the built-in default corpus
type SeedDocument struct {
	ID        string
	Text      string
	SourceTag string
}

// QueryRequest asks the knowledge store for the passages closest to Text
type QueryRequest struct {
	Text string `json:"query"`
	TopK int    `json:"top_k"`
}

// QueryResult holds ranked passage texts, most similar first
type QueryResult struct {
	Results []string `json:"results"`
	Count   int      `json:"count"`
}

// NewQueryResult builds a QueryResult from ranked texts
func NewQueryResult(texts []string) QueryResult {
	if texts == nil {
		texts = []string{}
	}
	return QueryResult{Results: texts, Count: len(texts)}
}

// NormalizeTopK clamps k into 1..MaxTopK, treating 0 as DefaultTopK
func NormalizeTopK(k int) int {
	switch {
	case k == 0:
		return DefaultTopK
	case k < 1:
		return 1
	case k > MaxTopK:
		return MaxTopK
	}
	return k
}
