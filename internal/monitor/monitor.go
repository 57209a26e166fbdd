// Package monitor runs the continuous threat-monitoring loop. A source
// of incoming messages is polled on a schedule; each message gets a fast
// panic check, and an active emergency triggers the full pipeline.
package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ethanbaker/guardian/internal/agents/panicresponse"
	"github.com/ethanbaker/guardian/internal/orchestrator"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/robfig/cron/v3"
)

// panicAgentID is the agent used for the fast per-tick check
const panicAgentID = "panic-agent"

// Source yields the next message to inspect. An empty string means
// nothing new arrived
type Source func() string

// demoStream is the canned message stream used when no source is given
var demoStream = []string{
	"All quiet...",
	"Wait, someone is knocking...",
	"HELP ME!",
	"Just kidding.",
}

// Monitor watches a message source for emergencies
type Monitor struct {
	controller *orchestrator.Controller
	source     Source
	cron       *cron.Cron

	mu      sync.Mutex
	running bool
}

// New creates a monitor over the given controller. A nil source falls
// back to the built-in demo stream, replayed once
func New(controller *orchestrator.Controller, source Source) *Monitor {
	m := &Monitor{
		controller: controller,
		source:     source,
		cron:       cron.New(),
	}

	if m.source == nil {
		m.source = sliceSource(demoStream)
	}

	return m
}

// Start schedules the monitor with a cron expression and begins polling
func (m *Monitor) Start(schedule string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("monitor already running")
	}

	if _, err := m.cron.AddFunc(schedule, func() {
		if input := m.source(); input != "" {
			m.Tick(context.Background(), input)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule monitor: %w", err)
	}

	m.cron.Start()
	m.running = true

	log.Printf("[MONITOR]: started on schedule %q", schedule)
	return nil
}

// Stop halts the polling schedule
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.cron.Stop()
	m.running = false
	log.Printf("[MONITOR]: stopped")
}

// Tick inspects one message. The panic agent runs first; an active
// emergency escalates to the full pipeline immediately
func (m *Monitor) Tick(ctx context.Context, input string) map[string]agent.Finding {
	log.Printf("[MONITOR]: stream tick: %s", agent.Preview(input))

	rc := agent.NewRunContext()

	panicAgent, err := m.controller.Registry().Get(panicAgentID)
	if err != nil {
		log.Printf("[MONITOR]: %v", err)
		return nil
	}

	finding := m.controller.Registry().Run(ctx, panicAgent, input, rc)
	if !panicresponse.IsEmergency(finding) {
		log.Printf("[MONITOR]: status normal")
		return nil
	}

	log.Printf("[MONITOR]: EMERGENCY INTERCEPTED! Triggering full pipeline.")

	results, err := m.controller.PipelineV3(ctx, input, rc)
	if err != nil {
		log.Printf("[MONITOR]: pipeline failed: %v", err)
		return nil
	}
	return results
}

// RunStream drains the source synchronously, ticking once per message.
// Returns the pipeline results of every escalated message
func (m *Monitor) RunStream(ctx context.Context) []map[string]agent.Finding {
	log.Printf("[MONITOR]: starting monitoring stream")

	var escalations []map[string]agent.Finding
	for input := m.source(); input != ""; input = m.source() {
		if results := m.Tick(ctx, input); results != nil {
			escalations = append(escalations, results)
		}
	}

	log.Printf("[MONITOR]: monitoring stream ended")
	return escalations
}

// sliceSource yields each entry of a slice once, then empty strings
func sliceSource(entries []string) Source {
	i := 0
	return func() string {
		if i >= len(entries) {
			return ""
		}
		entry := entries[i]
		i++
		return entry
	}
}
