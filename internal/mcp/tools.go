// ABOUTME: MCP tool definitions and registration for the advisory server
// ABOUTME: Defines JSON schemas for chat, comprehensive, seasonal and knowledge tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/core"
	"github.com/harper/agri-advisor/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.KnowledgeStore, aggregator *core.Aggregator, logger *zap.Logger) *Handlers {
	handlers := NewHandlers(store, aggregator, logger)

	// 1. chat_advisory - free-text question answered from knowledge, weather and fallbacks
	server.AddTool(mcp.Tool{
		Name:        "chat_advisory",
		Description: "Answer a farming question. Classifies the message, retrieves agronomic knowledge and adds weather context when a location is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The farmer's question or message",
				},
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Optional city or region for weather context",
				},
				"crop_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional crop being grown; narrows retrieval",
				},
				"detected_disease": map[string]interface{}{
					"type":        "string",
					"description": "Optional disease label already diagnosed; narrows retrieval",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.ChatAdvisory)

	// 2. comprehensive_advisory - structured advisory from every source
	server.AddTool(mcp.Tool{
		Name:        "comprehensive_advisory",
		Description: "Combine weather, disease treatment, best practices and seasonal guidance into one advisory. All fields are optional.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "City or region for the weather advisory",
				},
				"crop_type": map[string]interface{}{
					"type":        "string",
					"description": "Crop to look up best practices for",
				},
				"detected_disease": map[string]interface{}{
					"type":        "string",
					"description": "Disease label to look up treatment for",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text knowledge query (overrides crop_type for retrieval)",
				},
				"month": map[string]interface{}{
					"type":        "number",
					"description": "Month 1-12 for seasonal guidance (default: current month)",
				},
			},
		},
	}, handlers.ComprehensiveAdvisory)

	// 3. seasonal_guide - fixed seasonal recommendations
	server.AddTool(mcp.Tool{
		Name:        "seasonal_guide",
		Description: "Get the seasonal recommendation, suitable crops and activities for a month.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"month": map[string]interface{}{
					"type":        "number",
					"description": "Month 1-12 (default: current month)",
				},
			},
		},
	}, handlers.SeasonalGuide)

	// 4. search_knowledge - semantic search over the knowledge store
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search agricultural knowledge by meaning. Seeds the default corpus on first use.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Number of results, 1-5 (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledge)

	// 5. ingest_knowledge - add a passage to the knowledge store
	server.AddTool(mcp.Tool{
		Name:        "ingest_knowledge",
		Description: "Add an agricultural knowledge passage. Re-using an id replaces the stored passage.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Passage text",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Source tag (default: manual)",
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Optional document id",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.IngestKnowledge)

	// 6. initialize_knowledge - seed the default corpus if the store is empty
	server.AddTool(mcp.Tool{
		Name:        "initialize_knowledge",
		Description: "Seed the default agricultural knowledge corpus when the store is empty.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.InitializeKnowledge)

	return handlers
}
