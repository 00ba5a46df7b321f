// ABOUTME: Backend contract for knowledge persistence and similarity search
// ABOUTME: Implemented by memory, SQLite, Charm KV and Qdrant backends
package storage

import (
	"context"

	"github.com/harper/agri-advisor/internal/models"
)

// Backend stores knowledge documents and answers nearest-neighbour queries.
// Upsert keeps the original Seq of an existing id and assigns a new, larger
// Seq to unseen ids. Search returns at most k matches, most similar first,
// equal scores ordered by Seq where the backend can honour it.
type Backend interface {
	Upsert(ctx context.Context, docs []models.KnowledgeDocument) error
	Search(ctx context.Context, query []float64, k int) ([]models.KnowledgeMatch, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Lister is implemented by backends that can enumerate every document in Seq order
type Lister interface {
	List(ctx context.Context) ([]models.KnowledgeDocument, error)
}

// Syncer is implemented by backends that replicate to a remote
type Syncer interface {
	Sync() error
}
