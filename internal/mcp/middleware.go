package mcp

import (
	"context"
	"time"

	"github.com/dmmcquay/goban-engine/internal/logging"
	"github.com/dmmcquay/goban-engine/internal/metrics"
	"github.com/mark3labs/mcp-go/mcp"
)

// Middleware wraps MCP tool handlers with logging and metrics.
type Middleware struct {
	logger     logging.Logger
	metrics    *metrics.Collector
	prometheus *metrics.PrometheusCollector
}

// NewMiddleware creates a new middleware instance.
func NewMiddleware(logger logging.Logger, collector *metrics.Collector, prometheus *metrics.PrometheusCollector) *Middleware {
	return &Middleware{
		logger:     logger,
		metrics:    collector,
		prometheus: prometheus,
	}
}

// ToolHandler is the function signature for MCP tool handlers.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// WrapTool wraps a tool handler with middleware functionality.
func (m *Middleware) WrapTool(toolName string, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		m.logger.WithField("tool", toolName).Info("Tool request received")

		result, err := handler(ctx, request)

		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			m.logger.WithFields(map[string]interface{}{
				"tool":     toolName,
				"duration": duration.String(),
			}).Error("Tool request failed: %v", err)
		} else {
			m.logger.WithFields(map[string]interface{}{
				"tool":     toolName,
				"duration": duration.String(),
			}).Info("Tool request completed")
		}

		if m.metrics != nil {
			m.metrics.RecordToolCall(toolName, status, duration)
		}
		if m.prometheus != nil {
			m.prometheus.RecordToolCall(toolName, status, duration.Seconds())
		}

		return result, err
	}
}
