// ABOUTME: Cloud-synced knowledge backend on Charm KV
// ABOUTME: One JSON document per key under the knowledge: prefix
package charm

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

// KnowledgePrefix namespaces knowledge documents in the KV store
const KnowledgePrefix = "knowledge:"

// KnowledgeKey generates a key for a knowledge document
func KnowledgeKey(id string) string {
	return KnowledgePrefix + id
}

// KnowledgeBackend stores knowledge documents through a Client
type KnowledgeBackend struct {
	client *Client
	now    func() time.Time
}

// NewKnowledgeBackend creates a backend over an open client
func NewKnowledgeBackend(client *Client) *KnowledgeBackend {
	return &KnowledgeBackend{client: client, now: time.Now}
}

// Upsert writes docs; existing ids keep their seq and creation time.
// New seqs derive from the wall clock so devices syncing the same database stay ordered.
func (b *KnowledgeBackend) Upsert(ctx context.Context, docs []models.KnowledgeDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base := b.now().UnixNano()
	values := make(map[string]interface{}, len(docs))
	for i, doc := range docs {
		key := KnowledgeKey(doc.ID)

		var existing models.KnowledgeDocument
		if err := b.client.GetJSON(key, &existing); err == nil && existing.ID == doc.ID {
			doc.Seq = existing.Seq
			doc.CreatedAt = existing.CreatedAt
		} else {
			doc.Seq = base + int64(i)
		}
		values[key] = doc
	}

	if err := b.client.SetManyJSON(values); err != nil {
		return goerr.Wrap(err, "failed to write knowledge documents", goerr.V("count", len(docs)))
	}
	return nil
}

// Search ranks every stored document against query
func (b *KnowledgeBackend) Search(ctx context.Context, query []float64, k int) ([]models.KnowledgeMatch, error) {
	docs, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	return vector.Rank(query, docs, k), nil
}

// Count returns the number of knowledge keys
func (b *KnowledgeBackend) Count(ctx context.Context) (int, error) {
	keys, err := b.client.ListKeys(KnowledgePrefix)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// List returns every document in seq order; unreadable entries are skipped
func (b *KnowledgeBackend) List(ctx context.Context) ([]models.KnowledgeDocument, error) {
	keys, err := b.client.ListKeys(KnowledgePrefix)
	if err != nil {
		return nil, err
	}

	docs := make([]models.KnowledgeDocument, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var doc models.KnowledgeDocument
		if err := b.client.GetJSON(key, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Seq < docs[j].Seq })
	return docs, nil
}

// Sync pushes and pulls the knowledge database
func (b *KnowledgeBackend) Sync() error {
	return b.client.Sync()
}

// Close closes the client
func (b *KnowledgeBackend) Close() error {
	return b.client.Close()
}
