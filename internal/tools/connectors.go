package tools

import (
	"context"
	"fmt"
)

// MCPTool represents a tool exposed by an external MCP server. Calls are
// simulated: no network traffic is performed
type MCPTool struct {
	name      string
	serverURL string
}

// NewMCPTool creates a tool bound to an MCP server endpoint
func NewMCPTool(name string, serverURL string) *MCPTool {
	return &MCPTool{name: name, serverURL: serverURL}
}

// Name returns the namespaced tool name
func (t *MCPTool) Name() string { return "MCP_" + t.name }

// Description returns the tool description
func (t *MCPTool) Description() string {
	return fmt.Sprintf("Proxy for the '%s' tool on MCP server %s.", t.name, t.serverURL)
}

// Execute simulates a round trip to the MCP server
func (t *MCPTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	return map[string]any{
		"status": "success",
		"server": t.serverURL,
		"result": fmt.Sprintf("[MCP] Executed '%s' with %d parameter(s).", t.name, len(params)),
	}, nil
}

// OpenAPITool represents an operation imported from an OpenAPI document.
// Calls are simulated
type OpenAPITool struct {
	operationID string
	method      string
	path        string
}

// NewOpenAPITool creates a tool for a single OpenAPI operation
func NewOpenAPITool(operationID string, method string, path string) *OpenAPITool {
	return &OpenAPITool{operationID: operationID, method: method, path: path}
}

// Name returns the operation ID as the tool name
func (t *OpenAPITool) Name() string { return t.operationID }

// Description returns the tool description
func (t *OpenAPITool) Description() string {
	return fmt.Sprintf("Calls %s %s.", t.method, t.path)
}

// Execute simulates the HTTP call described by the operation
func (t *OpenAPITool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	return map[string]any{
		"status_code": 200,
		"result":      fmt.Sprintf("[OpenAPI] %s %s responded OK.", t.method, t.path),
	}, nil
}
