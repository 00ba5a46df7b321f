// ABOUTME: MCP tool handler implementations for the advisory server
// ABOUTME: Client errors become tool errors; degraded sources never fail a call
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/core"
	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store      *storage.KnowledgeStore
	aggregator *core.Aggregator
	logger     *zap.Logger
	now        func() time.Time
}

// NewHandlers creates handlers over a store and aggregator
func NewHandlers(store *storage.KnowledgeStore, aggregator *core.Aggregator, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		store:      store,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
}

// ChatAdvisory handles the chat_advisory tool
func (h *Handlers) ChatAdvisory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := request.GetString("message", "")

	resp, err := h.aggregator.Respond(ctx, models.AdvisoryContext{
		RawMessage:      message,
		Location:        request.GetString("location", ""),
		CropType:        request.GetString("crop_type", ""),
		DetectedDisease: request.GetString("detected_disease", ""),
	})
	if err != nil {
		return h.toolError("chat advisory failed", err), nil
	}

	return jsonResult(map[string]interface{}{
		"message":   message,
		"response":  resp.Text,
		"metadata":  resp.Metadata,
		"timestamp": h.now().Format(time.RFC3339),
	})
}

// ComprehensiveAdvisory handles the comprehensive_advisory tool
func (h *Handlers) ComprehensiveAdvisory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adv, err := h.aggregator.Comprehensive(ctx, models.AdvisoryRequest{
		Location:        request.GetString("location", ""),
		CropType:        request.GetString("crop_type", ""),
		DetectedDisease: request.GetString("detected_disease", ""),
		Query:           request.GetString("query", ""),
		Month:           request.GetInt("month", 0),
	})
	if err != nil {
		return h.toolError("comprehensive advisory failed", err), nil
	}
	return jsonResult(adv)
}

// SeasonalGuide handles the seasonal_guide tool
func (h *Handlers) SeasonalGuide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := request.GetInt("month", 0)
	if month == 0 {
		return jsonResult(h.aggregator.SeasonalNow())
	}

	rec, err := core.SeasonalGuide(month)
	if err != nil {
		return h.toolError("seasonal guide failed", err), nil
	}
	return jsonResult(rec)
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", models.DefaultTopK)

	matches, err := h.store.Search(ctx, query, topK)
	if err != nil {
		return h.toolError("knowledge search failed", err), nil
	}

	texts := make([]string, len(matches))
	scored := make([]map[string]interface{}, len(matches))
	for i, m := range matches {
		texts[i] = m.Document.Text
		scored[i] = map[string]interface{}{
			"id":     m.Document.ID,
			"source": m.Document.SourceTag,
			"score":  m.Score,
		}
	}
	result := models.NewQueryResult(texts)

	return jsonResult(map[string]interface{}{
		"query":   query,
		"results": result.Results,
		"count":   result.Count,
		"matches": scored,
	})
}

// IngestKnowledge handles the ingest_knowledge tool
func (h *Handlers) IngestKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	id, err := h.store.Ingest(ctx, content, request.GetString("source", ""), request.GetString("id", ""))
	if err != nil {
		return h.toolError("ingestion failed", err), nil
	}

	return jsonResult(map[string]interface{}{
		"message": "Document ingested successfully",
		"id":      id,
	})
}

// InitializeKnowledge handles the initialize_knowledge tool
func (h *Handlers) InitializeKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	existing, err := h.store.Count(ctx)
	if err != nil {
		return h.toolError("failed to count documents", err), nil
	}
	if existing > 0 {
		return jsonResult(map[string]interface{}{
			"message": fmt.Sprintf("Knowledge base already initialized with %d documents", existing),
			"count":   existing,
		})
	}

	seeded, err := h.store.Bootstrap(ctx)
	if err != nil {
		return h.toolError("failed to initialize knowledge", err), nil
	}

	return jsonResult(map[string]interface{}{
		"message": fmt.Sprintf("Initialized %d knowledge documents", seeded),
		"count":   seeded,
	})
}

// toolError reports err to the client; only validation messages are shown verbatim
func (h *Handlers) toolError(msg string, err error) *mcp.CallToolResult {
	switch {
	case models.IsClientError(err):
		return mcp.NewToolResultError(err.Error())
	case errors.Is(err, models.ErrEmbedderUnavailable):
		h.logger.Warn(msg, zap.Error(err))
		return mcp.NewToolResultError("embedding model unavailable")
	}
	h.logger.Error(msg, zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", msg, err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
