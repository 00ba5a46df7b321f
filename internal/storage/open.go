// ABOUTME: Builds the configured knowledge backend
// ABOUTME: memory by default, or SQLite, Charm KV or Qdrant
package storage

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/charm"
	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/storage/qdrant"
	"github.com/harper/agri-advisor/internal/storage/sqlite"
)

// OpenBackend opens the backend named by cfg.KnowledgeBackend.
// dimension is the embedder's vector size, needed to create a Qdrant collection.
func OpenBackend(ctx context.Context, cfg *config.Config, dimension int, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.KnowledgeBackend {
	case config.BackendMemory, "":
		logger.Debug("using in-memory knowledge backend")
		return NewMemoryBackend(), nil

	case config.BackendSQLite:
		store, err := sqlite.OpenKnowledgeStore(cfg.KnowledgeDBPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open sqlite knowledge backend")
		}
		logger.Debug("using sqlite knowledge backend", zap.String("path", cfg.KnowledgeDBPath))
		return store, nil

	case config.BackendCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open charm knowledge backend")
		}
		logger.Debug("using charm knowledge backend",
			zap.String("host", cfg.CharmHost),
			zap.String("db", cfg.CharmDBName))
		return charm.NewKnowledgeBackend(client), nil

	case config.BackendQdrant:
		backend, err := qdrant.New(ctx, qdrant.Config{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			Collection: cfg.QdrantCollection,
			Dimension:  dimension,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open qdrant knowledge backend")
		}
		logger.Debug("using qdrant knowledge backend",
			zap.String("host", cfg.QdrantHost),
			zap.String("collection", cfg.QdrantCollection))
		return backend, nil
	}

	return nil, goerr.Wrap(models.ErrValidation, "unknown knowledge backend", goerr.V("backend", cfg.KnowledgeBackend))
}
