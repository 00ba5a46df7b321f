// ABOUTME: Durable knowledge backend on SQLite
// ABOUTME: Stores vectors as little-endian BLOBs and ranks them with exact cosine similarity
package sqlite

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/vector"
)

// KnowledgeStore persists knowledge documents in SQLite
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a KnowledgeStore over an open database
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// OpenKnowledgeStore opens the database at path, or the default path when empty
func OpenKnowledgeStore(path string) (*KnowledgeStore, error) {
	if path == "" {
		path = DefaultDBPath()
	}
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewKnowledgeStore(db), nil
}

// Upsert writes docs in one transaction; existing ids keep their seq
func (s *KnowledgeStore) Upsert(ctx context.Context, docs []models.KnowledgeDocument) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO knowledge_documents (id, text, source_tag, vector, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			source_tag = excluded.source_tag,
			vector = excluded.vector
	`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare upsert")
	}
	defer func() { _ = stmt.Close() }()

	for _, doc := range docs {
		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, doc.Text, doc.SourceTag, vector.ToBlob(doc.Embedding), createdAt); err != nil {
			return goerr.Wrap(err, "failed to upsert document", goerr.V("id", doc.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit upsert")
	}
	return nil
}

// Search ranks every stored vector against query
func (s *KnowledgeStore) Search(ctx context.Context, query []float64, k int) ([]models.KnowledgeMatch, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return vector.Rank(query, docs, k), nil
}

// Count returns the number of stored documents
func (s *KnowledgeStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM knowledge_documents").Scan(&n); err != nil {
		return 0, goerr.Wrap(err, "failed to count documents")
	}
	return n, nil
}

// List returns every document in seq order
func (s *KnowledgeStore) List(ctx context.Context) ([]models.KnowledgeDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, text, source_tag, vector, created_at
		FROM knowledge_documents
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query documents")
	}
	defer func() { _ = rows.Close() }()

	var docs []models.KnowledgeDocument
	for rows.Next() {
		var (
			doc  models.KnowledgeDocument
			blob []byte
		)
		if err := rows.Scan(&doc.Seq, &doc.ID, &doc.Text, &doc.SourceTag, &blob, &doc.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan document")
		}
		doc.Embedding = vector.FromBlob(blob)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate documents")
	}
	return docs, nil
}

// Close closes the underlying database
func (s *KnowledgeStore) Close() error {
	return s.db.Close()
}
