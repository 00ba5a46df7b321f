// ABOUTME: In-process knowledge backend living for the process lifetime
// ABOUTME: Ranks with exact cosine similarity under a read lock
package storage

import (
	"context"
	"sync"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

// MemoryBackend keeps documents in insertion order
type MemoryBackend struct {
	mu      sync.RWMutex
	docs    []models.KnowledgeDocument
	index   map[string]int
	nextSeq int64
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{index: make(map[string]int)}
}

// Upsert inserts new documents and replaces existing ones in place
func (m *MemoryBackend) Upsert(ctx context.Context, docs []models.KnowledgeDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		doc.Embedding = append([]float64(nil), doc.Embedding...)
		if i, ok := m.index[doc.ID]; ok {
			doc.Seq = m.docs[i].Seq
			doc.CreatedAt = m.docs[i].CreatedAt
			m.docs[i] = doc
			continue
		}
		m.nextSeq++
		doc.Seq = m.nextSeq
		m.index[doc.ID] = len(m.docs)
		m.docs = append(m.docs, doc)
	}
	return nil
}

// Search ranks every document against query
func (m *MemoryBackend) Search(ctx context.Context, query []float64, k int) ([]models.KnowledgeMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return vector.Rank(query, m.docs, k), nil
}

// Count returns the number of stored documents
func (m *MemoryBackend) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}

// List returns a copy of every document in insertion order
func (m *MemoryBackend) List(ctx context.Context) ([]models.KnowledgeDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.KnowledgeDocument, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

// Close is a no-op
func (m *MemoryBackend) Close() error {
	return nil
}
