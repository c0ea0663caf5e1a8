// Package registry implements the refpin tool registry: a static mapping
// from tool name to input schema and handler function.
//
// The registry is built once at startup and is immutable afterwards. It is
// passed explicitly to whatever serves it (MCP server, HTTP API) instead of
// living in ambient global state.
package registry

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/refpin/refpin/pkg/types"
)

// HandlerFunc executes a tool call. The args map has already been validated
// and coerced against the tool's ParamSpecs when the handler is invoked.
// The returned value must be JSON-marshalable.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Tool pairs a tool descriptor with its handler.
type Tool struct {
	Spec    ToolSpec
	Handler HandlerFunc
}

// Registry holds all registered tools.
// Tools are stored in a slice to preserve registration order for discovery.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool
}

// New builds a registry from the given tools.
// It fails if a tool name is empty or registered twice.
func New(tools ...*Tool) (*Registry, error) {
	r := &Registry{
		tools:  make([]*Tool, 0, len(tools)),
		byName: make(map[string]*Tool, len(tools)),
	}
	for _, t := range tools {
		if t.Spec.Name == "" {
			return nil, fmt.Errorf("tool name must not be empty")
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %s has no handler", t.Spec.Name)
		}
		if _, exists := r.byName[t.Spec.Name]; exists {
			return nil, fmt.Errorf("tool %s is registered more than once", t.Spec.Name)
		}
		r.tools = append(r.tools, t)
		r.byName[t.Spec.Name] = t
	}
	return r, nil
}

// List returns all tool descriptors in registration order.
func (r *Registry) List() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.Spec)
	}
	return specs
}

// Get returns the descriptor for the given tool name.
func (r *Registry) Get(name string) (ToolSpec, error) {
	t, exists := r.byName[name]
	if !exists {
		return ToolSpec{}, newUnknownToolError(name)
	}
	return t.Spec, nil
}

// Invoke validates args against the named tool's parameter specs and, if they
// pass, dispatches to the tool's handler with the coerced argument set.
// Rejections are reported as *CallError; they never affect subsequent calls.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	t, exists := r.byName[name]
	if !exists {
		return nil, newUnknownToolError(name)
	}
	coerced, err := validateArgs(t.Spec.Params, args)
	if err != nil {
		return nil, err
	}
	return t.Handler(ctx, coerced)
}

// MCPTools converts all registered tool descriptors to mcp.Tool objects for
// registration with the MCP server.
func (r *Registry) MCPTools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t.Spec.toMCPTool())
	}
	return tools
}

// APITools converts all registered tool descriptors to their HTTP API form.
func (r *Registry) APITools() []types.Tool {
	tools := make([]types.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t.Spec.toAPITool())
	}
	return tools
}
