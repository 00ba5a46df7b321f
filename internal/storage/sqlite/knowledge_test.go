// ABOUTME: Tests for the SQLite knowledge backend
// ABOUTME: Verifies upsert semantics, seq preservation, ranking and persistence across reopen
package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harper/agri-advisor/internal/models"
)

func newTestStore(t *testing.T) *KnowledgeStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	store := NewKnowledgeStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func doc(id, text string, v ...float64) models.KnowledgeDocument {
	return models.KnowledgeDocument{ID: id, Text: text, SourceTag: "test", Embedding: v}
}

func TestKnowledgeStore_UpsertAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Upsert(ctx, []models.KnowledgeDocument{
		doc("a", "alpha", 1, 0),
		doc("b", "beta", 0, 1),
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestKnowledgeStore_UpsertKeepsSeq(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Upsert(ctx, []models.KnowledgeDocument{doc("a", "alpha", 1, 0), doc("b", "beta", 0, 1)}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Upsert(ctx, []models.KnowledgeDocument{doc("a", "alpha v2", 0.5, 0.5)}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List() returned %d docs, want 2", len(docs))
	}
	if docs[0].ID != "a" || docs[0].Text != "alpha v2" {
		t.Errorf("first doc = %s/%s, want a/alpha v2", docs[0].ID, docs[0].Text)
	}
	if docs[0].Seq >= docs[1].Seq {
		t.Errorf("seq order broken: %d >= %d", docs[0].Seq, docs[1].Seq)
	}
	if docs[0].Embedding[0] != 0.5 {
		t.Errorf("embedding not replaced: %v", docs[0].Embedding)
	}
}

func TestKnowledgeStore_SearchTieBreaksBySeq(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Upsert(ctx, []models.KnowledgeDocument{
		doc("first", "one", 1, 0),
		doc("other", "two", 0, 1),
		doc("second", "three", 1, 0),
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	matches, err := store.Search(ctx, []float64{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Search() returned %d matches, want 2", len(matches))
	}
	if matches[0].Document.ID != "first" || matches[1].Document.ID != "second" {
		t.Errorf("order = %s, %s; want first, second", matches[0].Document.ID, matches[1].Document.ID)
	}
}

func TestKnowledgeStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "knowledge.db")

	store, err := OpenKnowledgeStore(path)
	if err != nil {
		t.Fatalf("OpenKnowledgeStore() error = %v", err)
	}
	if err := store.Upsert(ctx, []models.KnowledgeDocument{doc("a", "alpha", 0.25, -1.5)}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	_ = store.Close()

	reopened, err := OpenKnowledgeStore(path)
	if err != nil {
		t.Fatalf("OpenKnowledgeStore() reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	docs, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("List() returned %d docs, want 1", len(docs))
	}
	if docs[0].Embedding[0] != 0.25 || docs[0].Embedding[1] != -1.5 {
		t.Errorf("embedding round trip = %v", docs[0].Embedding)
	}
	if docs[0].SourceTag != "test" {
		t.Errorf("SourceTag = %s, want test", docs[0].SourceTag)
	}
}
