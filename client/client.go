// Package client provides a Go client for the refpin MCP server.
//
// The client launches the server as a stdio subprocess, initializes an MCP
// session over its stdin/stdout and exposes the server's tools both
// generically (CallTool) and through typed convenience methods (Search,
// SearchDiverse).
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/refpin/refpin/pkg/types"
	"github.com/refpin/refpin/pkg/version"
)

// DefaultInitTimeout bounds how long Connect waits for the server's
// initialization response before giving up.
const DefaultInitTimeout = 10 * time.Second

// Config describes how to launch the refpin server subprocess.
type Config struct {
	// Command is the executable to launch (e.g. "refpin").
	Command string
	// Args are passed to the command (e.g. ["serve"]).
	Args []string
	// Env is added to the subprocess environment.
	Env map[string]string

	// InitTimeout overrides DefaultInitTimeout when positive.
	InitTimeout time.Duration
}

// Client is a connected session with a refpin server subprocess.
type Client struct {
	mcpClient *mcpclient.Client

	// tools caches the server's tool descriptors discovered at connect time.
	tools []types.Tool
}

// ToolCallError is returned when the server rejects a tool call with a
// structured {code, message} error object.
type ToolCallError struct {
	Code    string
	Message string
}

func (e *ToolCallError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Connect launches the server subprocess, initializes the MCP session and
// discovers the available tools. The caller must Close the client to stop
// the subprocess.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("command must not be empty")
	}

	envVars := make([]string, 0, len(cfg.Env))
	for k, v := range cfg.Env {
		envVars = append(envVars, fmt.Sprintf("%s=%s", k, v))
	}

	c, err := mcpclient.NewStdioMCPClient(cfg.Command, envVars, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdio client for refpin server: %w", err)
	}

	captureServerStderr(c)

	initTimeout := cfg.InitTimeout
	if initTimeout <= 0 {
		initTimeout = DefaultInitTimeout
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "refpin-client",
		Version: version.GetVersion(),
	}
	initRequest.Params.Capabilities = mcp.ClientCapabilities{}

	initCtx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	if _, err := c.Initialize(initCtx, initRequest); err != nil {
		_ = c.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("initialization request to refpin server timed out after %s", initTimeout)
		}
		return nil, fmt.Errorf("failed to initialize connection with refpin server: %w", err)
	}

	listResp, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to list tools from refpin server: %w", err)
	}

	return &Client{
		mcpClient: c,
		tools:     convertTools(listResp.Tools),
	}, nil
}

// Tools returns the tool descriptors discovered at connect time.
func (c *Client) Tools() []types.Tool {
	return c.tools
}

// CallTool calls any tool on the server and returns the converted result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*types.ToolInvokeResult, error) {
	callToolReq := mcp.CallToolRequest{}
	callToolReq.Params.Name = name
	callToolReq.Params.Arguments = args

	resp, err := c.mcpClient.CallTool(ctx, callToolReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call tool %s: %w", name, err)
	}
	return convertCallToolResult(resp)
}

// Search calls the search_pinterest tool and decodes its payload.
func (c *Client) Search(ctx context.Context, query string, limit int, artFocused bool) (*types.SearchResponse, error) {
	result, err := c.callAndCheck(ctx, "search_pinterest", map[string]any{
		"query":       query,
		"limit":       limit,
		"art_focused": artFocused,
	})
	if err != nil {
		return nil, err
	}

	var out types.SearchResponse
	if err := decodeTextPayload(result, &out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &out, nil
}

// SearchDiverse calls the search_pinterest_diverse tool and decodes its payload.
func (c *Client) SearchDiverse(ctx context.Context, queries []string, imagesPerQuery int) (*types.DiverseSearchResponse, error) {
	result, err := c.callAndCheck(ctx, "search_pinterest_diverse", map[string]any{
		"queries":          queries,
		"images_per_query": imagesPerQuery,
	})
	if err != nil {
		return nil, err
	}

	var out types.DiverseSearchResponse
	if err := decodeTextPayload(result, &out); err != nil {
		return nil, fmt.Errorf("failed to decode diverse search response: %w", err)
	}
	return &out, nil
}

// Close shuts down the session and the server subprocess.
func (c *Client) Close() error {
	return c.mcpClient.Close()
}

// callAndCheck calls a tool and converts server-side rejections into
// *ToolCallError values.
func (c *Client) callAndCheck(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	callToolReq := mcp.CallToolRequest{}
	callToolReq.Params.Name = name
	callToolReq.Params.Arguments = args

	resp, err := c.mcpClient.CallTool(ctx, callToolReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call tool %s: %w", name, err)
	}
	if resp.IsError {
		return nil, toolCallErrorFromResult(resp)
	}
	return resp, nil
}

// captureServerStderr forwards the subprocess's stderr output to the client's
// logs, which helps troubleshooting a misbehaving server.
func captureServerStderr(c *mcpclient.Client) {
	stdioTransport, ok := c.GetTransport().(*transport.Stdio)
	if !ok {
		return
	}

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := stdioTransport.Stderr().Read(buf)
			if n > 0 {
				log.Printf("[refpin server stderr] %s", string(buf[:n]))
			}
			if err != nil {
				if err != io.EOF && !errors.Is(err, os.ErrClosed) {
					log.Printf("[refpin server stderr] read error: %v", err)
				}
				return
			}
		}
	}()
}

// decodeTextPayload unmarshals the concatenated text content of a tool
// result into v.
func decodeTextPayload(result *mcp.CallToolResult, v any) error {
	text := textContent(result)
	if text == "" {
		return fmt.Errorf("tool result contains no text content")
	}
	return json.Unmarshal([]byte(text), v)
}

// textContent concatenates all text content items of a tool result.
func textContent(result *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, item := range result.Content {
		if tc, ok := item.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

// toolCallErrorFromResult extracts the structured error object from an
// error result, falling back to the raw text.
func toolCallErrorFromResult(result *mcp.CallToolResult) *ToolCallError {
	text := textContent(result)

	var obj types.ToolError
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj.Code != "" {
		return &ToolCallError{Code: obj.Code, Message: obj.Message}
	}
	return &ToolCallError{Message: text}
}

// convertCallToolResult converts an SDK result to the wire type shared with
// the HTTP API.
func convertCallToolResult(resp *mcp.CallToolResult) (*types.ToolInvokeResult, error) {
	contentList := make([]map[string]any, 0, len(resp.Content))
	for i, item := range resp.Content {
		serialized, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal content item %d: %w", i, err)
		}
		var contentMap map[string]any
		if err := json.Unmarshal(serialized, &contentMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content item %d: %w", i, err)
		}
		contentList = append(contentList, contentMap)
	}

	return &types.ToolInvokeResult{
		IsError:           resp.IsError,
		Content:           contentList,
		StructuredContent: resp.StructuredContent,
	}, nil
}

// convertTools converts SDK tool descriptors to wire types.
func convertTools(tools []mcp.Tool) []types.Tool {
	out := make([]types.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, types.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: types.ToolInputSchema{
				Type:       t.InputSchema.Type,
				Properties: t.InputSchema.Properties,
				Required:   t.InputSchema.Required,
			},
		})
	}
	return out
}
