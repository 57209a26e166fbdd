// Package orchestrator sequences the analysis agents into pipelines and
// merges their findings into a single report.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/metrics"
)

// Registry holds the registered agents and runs them in chains or in
// parallel
type Registry struct {
	mu        sync.RWMutex
	agents    map[string]agent.Agent
	collector *metrics.Collector
}

// NewRegistry creates an empty agent registry. The collector is optional
// and records per-agent latency when present
func NewRegistry(collector *metrics.Collector) *Registry {
	return &Registry{
		agents:    map[string]agent.Agent{},
		collector: collector,
	}
}

// Register adds an agent to the registry, replacing any agent with the
// same ID
func (r *Registry) Register(a agent.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.agents[a.ID()] = a
}

// Get returns a registered agent by ID
func (r *Registry) Get(id string) (agent.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent not found: %s", id)
	}
	return a, nil
}

// IDs returns the IDs of all registered agents
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.agents))
	for id := range r.agents {
		ids = append(ids, id)
	}
	return ids
}

// Run executes one agent through the error-containing wrapper and
// records its latency
func (r *Registry) Run(ctx context.Context, a agent.Agent, input string, rc *agent.RunContext) agent.Finding {
	start := time.Now()
	finding := agent.Run(ctx, a, input, rc)

	if r.collector != nil {
		r.collector.RecordLatency(a.ID(), time.Since(start))
	}
	return finding
}

// RunChain runs the named agents sequentially against the same input.
// Results are keyed by agent ID
func (r *Registry) RunChain(ctx context.Context, input string, rc *agent.RunContext, ids ...string) (map[string]agent.Finding, error) {
	results := make(map[string]agent.Finding, len(ids))

	for _, id := range ids {
		a, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		results[id] = r.Run(ctx, a, input, rc)
	}

	return results, nil
}

// RunParallel runs the named agents concurrently against the same input.
// Results are keyed by agent ID
func (r *Registry) RunParallel(ctx context.Context, input string, rc *agent.RunContext, ids ...string) (map[string]agent.Finding, error) {
	// Resolve all agents up front so an unknown ID fails cleanly
	agents := make([]agent.Agent, 0, len(ids))
	for _, id := range ids {
		a, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]agent.Finding, len(agents))
	)

	for _, a := range agents {
		wg.Add(1)
		go func(a agent.Agent) {
			defer wg.Done()

			finding := r.Run(ctx, a, input, rc)

			mu.Lock()
			results[a.ID()] = finding
			mu.Unlock()
		}(a)
	}

	wg.Wait()
	return results, nil
}
