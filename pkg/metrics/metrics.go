// Package metrics collects in-memory operational counters for the
// analysis pipeline: request and error totals, tool usage, a threat
// category heatmap, per-agent latency, and lightweight traces.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Trace is one recorded pipeline run
type Trace struct {
	ID        uuid.UUID
	Name      string
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the trace ran, zero while still open
func (t Trace) Duration() time.Duration {
	if t.EndedAt.IsZero() {
		return 0
	}
	return t.EndedAt.Sub(t.StartedAt)
}

// Collector aggregates counters across the whole process. All methods
// are safe for concurrent use
type Collector struct {
	mu            sync.Mutex
	totalRequests int
	totalErrors   int
	toolUsage     map[string]int
	threatHeatmap map[string]int
	agentLatency  map[string][]time.Duration
	traces        map[uuid.UUID]*Trace
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{
		toolUsage:     map[string]int{},
		threatHeatmap: map[string]int{},
		agentLatency:  map[string][]time.Duration{},
		traces:        map[uuid.UUID]*Trace{},
	}
}

// RecordRequest counts one incoming analysis request
func (c *Collector) RecordRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalRequests++
}

// RecordError counts one failed request
func (c *Collector) RecordError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalErrors++
}

// RecordToolUsage counts one invocation of the named tool
func (c *Collector) RecordToolUsage(tool string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolUsage[tool]++
}

// RecordThreat bumps the heatmap for a detected threat category
func (c *Collector) RecordThreat(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threatHeatmap[category]++
}

// RecordLatency records how long an agent took to process an input
func (c *Collector) RecordLatency(agent string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agentLatency[agent] = append(c.agentLatency[agent], d)
}

// StartTrace opens a named trace and returns its ID
func (c *Collector) StartTrace(name string) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New()
	c.traces[id] = &Trace{ID: id, Name: name, StartedAt: time.Now()}
	return id
}

// EndTrace closes an open trace. Unknown IDs are ignored
func (c *Collector) EndTrace(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if trace, ok := c.traces[id]; ok && trace.EndedAt.IsZero() {
		trace.EndedAt = time.Now()
	}
}

// Totals returns the request and error counters
func (c *Collector) Totals() (requests int, errors int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRequests, c.totalErrors
}

// ToolUsage returns a copy of the tool usage counters
func (c *Collector) ToolUsage() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.toolUsage))
	for k, v := range c.toolUsage {
		out[k] = v
	}
	return out
}

// ThreatHeatmap returns a copy of the per-category threat counters
func (c *Collector) ThreatHeatmap() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.threatHeatmap))
	for k, v := range c.threatHeatmap {
		out[k] = v
	}
	return out
}

// AverageLatency returns the mean recorded latency for an agent, zero
// when none was recorded
func (c *Collector) AverageLatency(agent string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := c.agentLatency[agent]
	if len(samples) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

// Traces returns copies of all recorded traces, newest first
func (c *Collector) Traces() []Trace {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Trace, 0, len(c.traces))
	for _, trace := range c.traces {
		out = append(out, *trace)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}

// Dashboard renders the collector as a plain-text report
func (c *Collector) Dashboard() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("=== SYSTEM METRICS ===\n")
	fmt.Fprintf(&sb, "Total Requests: %d\n", c.totalRequests)
	fmt.Fprintf(&sb, "Total Errors: %d\n", c.totalErrors)

	sb.WriteString("\n--- Tool Usage ---\n")
	for _, name := range sortedKeys(c.toolUsage) {
		fmt.Fprintf(&sb, "%s: %d\n", name, c.toolUsage[name])
	}

	sb.WriteString("\n--- Threat Heatmap ---\n")
	for _, category := range sortedKeys(c.threatHeatmap) {
		fmt.Fprintf(&sb, "%s: %d\n", category, c.threatHeatmap[category])
	}

	sb.WriteString("\n--- Agent Latency (avg) ---\n")
	agents := make([]string, 0, len(c.agentLatency))
	for agent := range c.agentLatency {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	for _, agent := range agents {
		samples := c.agentLatency[agent]
		var total time.Duration
		for _, d := range samples {
			total += d
		}
		fmt.Fprintf(&sb, "%s: %s\n", agent, total/time.Duration(len(samples)))
	}

	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
