// Package mcp wires the refpin tool registry into an MCP (Model Context
// Protocol) server. The JSON-RPC transport itself is owned by mcp-go.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/refpin/refpin/internal/registry"
	"github.com/refpin/refpin/internal/telemetry"
	"github.com/refpin/refpin/pkg/types"
	"github.com/refpin/refpin/pkg/version"
	"go.uber.org/zap"
)

// ServerName identifies the refpin MCP server to clients.
const ServerName = "refpin-pinterest-search"

// ServiceConfig holds the parameters for initializing the Service.
type ServiceConfig struct {
	Registry *registry.Registry
	Metrics  telemetry.CustomMetrics
	Logger   *zap.Logger
}

// Service serves the tool registry over MCP: it exposes tool metadata for
// discovery (tools/list) and dispatches tool calls (tools/call) through the
// registry's validation.
type Service struct {
	registry *registry.Registry
	metrics  telemetry.CustomMetrics
	log      *zap.Logger
}

// NewService creates a new Service.
func NewService(c *ServiceConfig) (*Service, error) {
	if c.Registry == nil {
		return nil, fmt.Errorf("registry must not be nil")
	}
	metrics := c.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopCustomMetrics()
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: c.Registry,
		metrics:  metrics,
		log:      logger,
	}, nil
}

// NewMCPServer creates the MCP server and registers all tools from the
// registry on it. The returned server can be served over stdio or mounted
// as a streamable HTTP handler.
func NewMCPServer(svc *Service) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version.GetVersion(),
		server.WithToolCapabilities(true),
	)
	svc.RegisterTools(s)
	return s
}

// RegisterTools adds every registered tool to the MCP server, all sharing
// the same call handler.
func (s *Service) RegisterTools(srv *server.MCPServer) {
	for _, tool := range s.registry.MCPTools() {
		srv.AddTool(tool, s.ToolCallHandler)
	}
}

// ToolCallHandler handles a tools/call request for any registered tool.
// Validation failures become tool-level error results, never protocol
// errors: the server keeps serving subsequent calls.
func (s *Service) ToolCallHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()
	outcome := telemetry.ToolCallOutcomeError

	name := req.Params.Name
	defer func() {
		s.metrics.RecordToolCall(ctx, name, outcome, time.Since(started))
	}()

	payload, err := s.registry.Invoke(ctx, name, req.GetArguments())
	if err != nil {
		var callErr *registry.CallError
		if errors.As(err, &callErr) {
			s.log.Warn("tool call rejected",
				zap.String("tool", name),
				zap.String("code", callErr.Code),
				zap.String("message", callErr.Message),
			)
			return newToolErrorResult(callErr), nil
		}
		return nil, fmt.Errorf("failed to invoke tool %s: %w", name, err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result for tool %s: %w", name, err)
	}

	outcome = telemetry.ToolCallOutcomeSuccess

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: string(data)},
		},
		StructuredContent: payload,
	}, nil
}

// newToolErrorResult converts a registry rejection into an MCP error result
// carrying the structured {code, message} object.
func newToolErrorResult(callErr *registry.CallError) *mcp.CallToolResult {
	obj := types.ToolError{Code: callErr.Code, Message: callErr.Message}

	// best effort: fall back to the plain message if marshalling fails
	text := callErr.Message
	if data, err := json.Marshal(obj); err == nil {
		text = string(data)
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
		StructuredContent: obj,
	}
}
