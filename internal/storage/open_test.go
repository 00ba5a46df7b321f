// ABOUTME: Tests for backend selection from configuration
// ABOUTME: Covers memory, sqlite and unknown backend names
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/llm"
	"github.com/harper/agri-advisor/internal/models"
)

func TestOpenBackend_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.KnowledgeBackend = config.BackendMemory

	backend, err := OpenBackend(context.Background(), cfg, 64, nil)
	gt.NoError(t, err).Required()
	defer func() { _ = backend.Close() }()

	_, ok := backend.(*MemoryBackend)
	gt.Bool(t, ok).True()
}

func TestOpenBackend_SQLiteBootstrapsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.KnowledgeBackend = config.BackendSQLite
	cfg.KnowledgeDBPath = filepath.Join(t.TempDir(), "knowledge.db")

	backend, err := OpenBackend(ctx, cfg, 64, nil)
	gt.NoError(t, err).Required()
	store := NewKnowledgeStore(backend, llm.NewHashEmbedder(64))

	results, err := store.Query(ctx, "fertilizer for tomatoes", 2)
	gt.NoError(t, err).Required()
	gt.Array(t, results).Length(2)
	gt.NoError(t, store.Close()).Required()

	// Reopening sees the persisted corpus and does not reseed
	backend, err = OpenBackend(ctx, cfg, 64, nil)
	gt.NoError(t, err).Required()
	store = NewKnowledgeStore(backend, llm.NewHashEmbedder(64))
	defer func() { _ = store.Close() }()

	seeded, err := store.Bootstrap(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, seeded).Equal(0)

	count, err := store.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(20)
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.KnowledgeBackend = "floppy"

	_, err := OpenBackend(context.Background(), cfg, 64, nil)
	gt.Error(t, err).Is(models.ErrValidation)
}
