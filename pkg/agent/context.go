package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single entry in the run trace
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Message   string    `json:"message"`
	Data      Finding   `json:"data,omitempty"`
}

// RunContext carries session memory, trace logging, and state across a run.
// Agents may execute concurrently, so all access is mutex-guarded.
type RunContext struct {
	SessionID uuid.UUID

	mu     sync.Mutex
	memory map[string]any
	logs   []LogEntry
	start  time.Time
}

// NewRunContext creates a run context with a fresh session ID
func NewRunContext() *RunContext {
	return NewRunContextForSession(uuid.New())
}

// NewRunContextForSession creates a run context bound to an existing session
func NewRunContextForSession(sessionID uuid.UUID) *RunContext {
	return &RunContext{
		SessionID: sessionID,
		memory:    make(map[string]any),
		start:     time.Now(),
	}
}

// Log appends an entry to the run trace
func (rc *RunContext) Log(agent, message string, data Finding) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.logs = append(rc.logs, LogEntry{
		Timestamp: time.Now(),
		Agent:     agent,
		Message:   message,
		Data:      data,
	})
}

// GetMemory retrieves a value from session memory
func (rc *RunContext) GetMemory(key string) any {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.memory[key]
}

// SetMemory stores a value in session memory
func (rc *RunContext) SetMemory(key string, value any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.memory[key] = value
}

// Trace returns a copy of the run trace in insertion order
func (rc *RunContext) Trace() []LogEntry {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make([]LogEntry, len(rc.logs))
	copy(out, rc.logs)
	return out
}

// Elapsed returns the time since the run context was created
func (rc *RunContext) Elapsed() time.Duration {
	return time.Since(rc.start)
}

// Preview truncates input text for trace messages
func Preview(input string) string {
	if len(input) > 50 {
		return input[:50] + "..."
	}
	return input
}
