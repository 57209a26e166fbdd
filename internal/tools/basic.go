package tools

import (
	"context"
	"fmt"
)

// WebSearchTool simulates searching the web for information
type WebSearchTool struct{}

// NewWebSearchTool creates a new simulated web search tool
func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{}
}

// Name returns the tool name
func (t *WebSearchTool) Name() string { return "WebSearch" }

// Description returns the tool description
func (t *WebSearchTool) Description() string {
	return "Simulates searching the web for information."
}

// Execute returns a canned search result. Params: "query" (required).
func (t *WebSearchTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	return map[string]any{
		"result": fmt.Sprintf("[Search Result] Found 5 articles relevant to '%s'.", query),
	}, nil
}

// GoogleSearchTool simulates a search engine lookup returning structured
// results
type GoogleSearchTool struct{}

// NewGoogleSearchTool creates a new simulated search engine tool
func NewGoogleSearchTool() *GoogleSearchTool {
	return &GoogleSearchTool{}
}

// Name returns the tool name
func (t *GoogleSearchTool) Name() string { return "GoogleSearch" }

// Description returns the tool description
func (t *GoogleSearchTool) Description() string {
	return "Performs a simulated search engine lookup."
}

// Execute returns canned structured results. Params: "query" (required).
func (t *GoogleSearchTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	return map[string]any{
		"results": []map[string]string{
			{"title": "Cyber Crime Portal", "link": "http://cybercrime.gov.in"},
		},
	}, nil
}

// CodeExecutorTool simulates sandboxed code execution
type CodeExecutorTool struct{}

// NewCodeExecutorTool creates a new simulated code executor tool
func NewCodeExecutorTool() *CodeExecutorTool {
	return &CodeExecutorTool{}
}

// Name returns the tool name
func (t *CodeExecutorTool) Name() string { return "CodeExecutor" }

// Description returns the tool description
func (t *CodeExecutorTool) Description() string {
	return "Simulates executing code in a sandbox."
}

// Execute pretends to run the provided code. Params: "code" (required).
func (t *CodeExecutorTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	code, _ := params["code"].(string)
	if code == "" {
		return nil, fmt.Errorf("code parameter is required")
	}

	return map[string]any{
		"status": "success",
		"output": "Code executed successfully",
	}, nil
}
