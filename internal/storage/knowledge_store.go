// ABOUTME: Semantic knowledge store combining an embedder with a storage backend
// ABOUTME: Handles ingestion, top-k retrieval and idempotent lazy bootstrap of the default corpus
package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/harper/agri-advisor/internal/llm"
	"github.com/harper/agri-advisor/internal/models"
)

// DefaultBootstrapBatchSize bounds the texts sent per embedding call while seeding
const DefaultBootstrapBatchSize = 10

// KnowledgeStore is safe for concurrent use
type KnowledgeStore struct {
	backend   Backend
	embedder  llm.Embedder
	logger    *zap.Logger
	seed      []models.SeedDocument
	batchSize int
	now       func() time.Time

	bootstrap singleflight.Group
	seedMu    sync.Mutex
}

// Option configures a KnowledgeStore
type Option func(*KnowledgeStore)

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *KnowledgeStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeedCorpus replaces the default corpus; an empty corpus disables bootstrap
func WithSeedCorpus(docs []models.SeedDocument) Option {
	return func(s *KnowledgeStore) {
		s.seed = docs
	}
}

// WithBatchSize sets the bootstrap embedding batch size
func WithBatchSize(n int) Option {
	return func(s *KnowledgeStore) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *KnowledgeStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewKnowledgeStore wires a backend and an embedder.
// A nil embedder is allowed; every embedding call then fails with ErrEmbedderUnavailable.
func NewKnowledgeStore(backend Backend, embedder llm.Embedder, opts ...Option) *KnowledgeStore {
	s := &KnowledgeStore{
		backend:   backend,
		embedder:  embedder,
		logger:    zap.NewNop(),
		seed:      DefaultCorpus(),
		batchSize: DefaultBootstrapBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest embeds text and upserts it, returning the document id.
// An empty sourceTag becomes "manual"; an empty id is generated.
func (s *KnowledgeStore) Ingest(ctx context.Context, text, sourceTag, id string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", goerr.Wrap(models.ErrValidation, "content is required")
	}
	if strings.TrimSpace(sourceTag) == "" {
		sourceTag = models.DefaultSourceTag
	}
	if strings.TrimSpace(id) == "" {
		id = "doc_" + uuid.NewString()
	}

	vectors, err := s.embed(ctx, []string{text})
	if err != nil {
		return "", err
	}

	doc := models.KnowledgeDocument{
		ID:        id,
		Text:      text,
		SourceTag: sourceTag,
		Embedding: vectors[0],
		CreatedAt: s.now(),
	}
	if err := doc.Validate(s.embedder.Dimensions()); err != nil {
		return "", err
	}

	if err := s.backend.Upsert(ctx, []models.KnowledgeDocument{doc}); err != nil {
		return "", goerr.Wrap(err, "failed to store document", goerr.V("id", id))
	}

	s.logger.Debug("ingested knowledge document",
		zap.String("id", id),
		zap.String("source", sourceTag))
	return id, nil
}

// Query returns the texts of the topK most similar documents
func (s *KnowledgeStore) Query(ctx context.Context, text string, topK int) ([]string, error) {
	matches, err := s.Search(ctx, text, topK)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Document.Text
	}
	return texts, nil
}

// Search returns the topK most similar documents with scores, bootstrapping an empty store first
func (s *KnowledgeStore) Search(ctx context.Context, text string, topK int) ([]models.KnowledgeMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(models.ErrValidation, "query is required")
	}
	k := models.NormalizeTopK(topK)

	count, err := s.backend.Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count documents")
	}
	if count == 0 {
		if _, err := s.Bootstrap(ctx); err != nil {
			return nil, err
		}
	}

	vectors, err := s.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	matches, err := s.backend.Search(ctx, vectors[0], k)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search documents")
	}
	return matches, nil
}

// Count returns the number of stored documents
func (s *KnowledgeStore) Count(ctx context.Context) (int, error) {
	return s.backend.Count(ctx)
}

// Bootstrap seeds the default corpus when the store is empty and returns the number seeded.
// Concurrent callers share one in-flight seeding and observe its result. A caller whose ctx
// ends stops waiting while the seeding itself runs to completion.
func (s *KnowledgeStore) Bootstrap(ctx context.Context) (int, error) {
	ch := s.bootstrap.DoChan("bootstrap", func() (interface{}, error) {
		return s.seedIfEmpty(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		if res.Shared {
			s.logger.Debug("joined in-flight bootstrap")
		}
		return res.Val.(int), nil
	case <-ctx.Done():
		s.logger.Debug("stopped waiting for bootstrap", zap.Error(ctx.Err()))
		return 0, goerr.Wrap(ctx.Err(), "bootstrap still in progress")
	}
}

// Seed upserts the whole seed corpus regardless of the current count
func (s *KnowledgeStore) Seed(ctx context.Context) (int, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.upsertSeed(ctx)
}

func (s *KnowledgeStore) seedIfEmpty(ctx context.Context) (int, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	count, err := s.backend.Count(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count documents")
	}
	if count > 0 {
		return 0, nil
	}
	return s.upsertSeed(ctx)
}

// upsertSeed embeds every batch before writing anything, so a failed run leaves the store untouched
func (s *KnowledgeStore) upsertSeed(ctx context.Context) (int, error) {
	if len(s.seed) == 0 {
		return 0, nil
	}

	docs := make([]models.KnowledgeDocument, 0, len(s.seed))
	for start := 0; start < len(s.seed); start += s.batchSize {
		end := start + s.batchSize
		if end > len(s.seed) {
			end = len(s.seed)
		}
		batch := s.seed[start:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Text
		}

		vectors, err := s.embed(ctx, texts)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to embed seed batch", goerr.V("offset", start))
		}

		for i, d := range batch {
			docs = append(docs, models.KnowledgeDocument{
				ID:        d.ID,
				Text:      d.Text,
				SourceTag: d.SourceTag,
				Embedding: vectors[i],
				CreatedAt: s.now(),
			})
		}
	}

	if err := s.backend.Upsert(ctx, docs); err != nil {
		return 0, goerr.Wrap(err, "failed to store seed corpus")
	}

	s.logger.Info("seeded default knowledge",
		zap.Int("documents", len(docs)),
		zap.String("version", SeedCorpusVersion))
	return len(docs), nil
}

// List returns every document when the backend can enumerate them
func (s *KnowledgeStore) List(ctx context.Context) ([]models.KnowledgeDocument, error) {
	lister, ok := s.backend.(Lister)
	if !ok {
		return nil, goerr.Wrap(models.ErrNotSupported, "backend cannot list documents")
	}
	return lister.List(ctx)
}

// Sync replicates the backend when it supports it
func (s *KnowledgeStore) Sync() error {
	syncer, ok := s.backend.(Syncer)
	if !ok {
		return goerr.Wrap(models.ErrNotSupported, "backend does not sync")
	}
	return syncer.Sync()
}

// EmbedderName reports the configured embedder, or "none"
func (s *KnowledgeStore) EmbedderName() string {
	if s.embedder == nil {
		return "none"
	}
	return s.embedder.Name()
}

// Close releases the backend
func (s *KnowledgeStore) Close() error {
	return s.backend.Close()
}

// embed calls the embedder and checks every vector's dimension
func (s *KnowledgeStore) embed(ctx context.Context, texts []string) ([][]float64, error) {
	if s.embedder == nil {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "no embedder configured")
	}

	vectors, err := s.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		if errors.Is(err, models.ErrEmbedderUnavailable) {
			return nil, err
		}
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "embedding failed", goerr.V("cause", err.Error()))
	}
	if len(vectors) != len(texts) {
		return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "embedder returned wrong number of vectors",
			goerr.V("expected", len(texts)),
			goerr.V("got", len(vectors)))
	}

	dim := s.embedder.Dimensions()
	for _, v := range vectors {
		if dim > 0 && len(v) != dim {
			return nil, goerr.Wrap(models.ErrEmbedderUnavailable, "embedder returned wrong dimension",
				goerr.V("expected", dim),
				goerr.V("got", len(v)))
		}
	}
	return vectors, nil
}
