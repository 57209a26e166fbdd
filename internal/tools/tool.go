// Package tools holds the auxiliary tools agents and the controller can
// invoke: the legal knowledge base, simulated media forensics, external
// connector stubs, and the long-running forensic scan operation.
package tools

import (
	"context"
	"fmt"
	"sync"
)

// Tool is a named capability that can be executed with loose parameters
type Tool interface {
	// Name returns the unique tool name
	Name() string

	// Description returns a human-readable summary of the tool
	Description() string

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, params map[string]any) (map[string]any, error)
}

// Registry holds registered tools by name
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry, replacing any previous tool with
// the same name
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool, nil
}

// Names returns the names of all registered tools
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}
