// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the advisory tools to LLM agents over stdio
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the advisor as an MCP (Model Context Protocol) server, giving
LLM agents chat advisory, comprehensive advisory, seasonal guidance
and knowledge search tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  advisor mcp

  # Configure in an MCP client config file:
  # {
  #   "mcpServers": {
  #     "advisor": {
  #       "command": "advisor",
  #       "args": ["mcp", "--backend", "sqlite"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Agri Advisor",
		versionInfo.Version,
		mcpserver.WithToolCapabilities(false),
	)
	mcp.RegisterTools(server, a.Store, a.Aggregator, logger)

	logger.Info("MCP server starting on stdio",
		zap.String("backend", a.Config.KnowledgeBackend),
		zap.String("embedder", a.Store.EmbedderName()))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-serverErr:
	}

	if closeErr := a.Close(); closeErr != nil {
		logger.Warn("error closing knowledge store", zap.Error(closeErr))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
