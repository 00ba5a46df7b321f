// ABOUTME: Main entry point for the advisory MCP server with stdio transport
// ABOUTME: Wires the knowledge store and aggregator from the environment and serves all tools
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/app"
	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/logging"
	"github.com/harper/agri-advisor/internal/mcp"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	logger, err := logging.New(false, false)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.ResolvedProvider() == config.ProviderHash {
		logger.Warn("no embedding API key set, using offline hash embeddings")
	}

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize advisor", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	server := mcpserver.NewMCPServer(
		"Agri Advisor",
		"0.1.0",
	)
	mcp.RegisterTools(server, a.Store, a.Aggregator, logger)

	log.Println("Agri Advisor MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
