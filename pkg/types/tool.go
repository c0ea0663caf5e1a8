package types

// ToolInputSchema defines the schema for the input parameters of a tool.
type ToolInputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Required   []string       `json:"required,omitempty"`
}

// Tool describes a tool exposed by the refpin server for discovery.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"input_schema"`
}

// ToolInvokeRequest is the input for invoking a tool over the HTTP API.
type ToolInvokeRequest struct {
	Name      string         `json:"name" binding:"required"`
	Arguments map[string]any `json:"arguments"`
}

// ToolInvokeResult represents the result of a tool call.
// It is designed to be passed down to the end user.
type ToolInvokeResult struct {
	IsError bool `json:"isError,omitempty"`

	Content           []map[string]any `json:"content"`
	StructuredContent any              `json:"structuredContent,omitempty"`
}

// ToolError is the structured error object returned when a tool call is
// rejected before its handler runs.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServerMetadata contains basic information about a running refpin server.
type ServerMetadata struct {
	Version string `json:"version"`
}
