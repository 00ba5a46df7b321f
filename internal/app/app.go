// ABOUTME: Wires configuration into a knowledge store and advisory aggregator
// ABOUTME: Shared by the CLI, the MCP server binary and the benchmark runner
package app

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/adapters"
	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/core"
	"github.com/harper/agri-advisor/internal/llm"
	"github.com/harper/agri-advisor/internal/storage"
)

// App holds the long-lived services of one process
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      *storage.KnowledgeStore
	Aggregator *core.Aggregator
	Treatments *adapters.TreatmentTable
}

// New builds every service from cfg. The embedder and backend are created once and shared.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedder, err := llm.NewEmbedder(ctx, cfg, logger)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize embedder")
	}

	backend, err := storage.OpenBackend(ctx, cfg, embedder.Dimensions(), logger)
	if err != nil {
		return nil, err
	}

	store := storage.NewKnowledgeStore(backend, embedder,
		storage.WithLogger(logger),
		storage.WithBatchSize(cfg.BootstrapBatchSize))

	treatments, err := adapters.LoadTreatmentTable(cfg.DiseaseTreatmentsPath)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	weather := adapters.NewOpenWeatherClient(adapters.WeatherConfig{
		APIKey:     cfg.OpenWeatherKey,
		BaseURL:    cfg.OpenWeatherBaseURL,
		Timeout:    cfg.WeatherTimeout,
		MaxRetries: 1,
		RetryDelay: cfg.RetryDelay,
	}, logger)

	aggregator := core.NewAggregator(store,
		core.WithWeather(weather),
		core.WithTreatments(treatments),
		core.WithLogger(logger),
		core.WithTopK(cfg.RetrievalTopK),
		core.WithWeatherTimeout(cfg.WeatherTimeout))

	logger.Debug("advisor initialized",
		zap.String("embedder", embedder.Name()),
		zap.String("backend", cfg.KnowledgeBackend),
		zap.Int("treatments", treatments.Len()))

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Aggregator: aggregator,
		Treatments: treatments,
	}, nil
}

// Close releases the knowledge backend
func (a *App) Close() error {
	return a.Store.Close()
}
