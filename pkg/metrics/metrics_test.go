package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()

	c.RecordRequest()
	c.RecordRequest()
	c.RecordError()
	c.RecordToolUsage("LegalDatabase")
	c.RecordToolUsage("LegalDatabase")
	c.RecordToolUsage("WebSearch")
	c.RecordThreat("Blackmail")

	requests, errors := c.Totals()
	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, errors)
	assert.Equal(t, 2, c.ToolUsage()["LegalDatabase"])
	assert.Equal(t, 1, c.ToolUsage()["WebSearch"])
	assert.Equal(t, 1, c.ThreatHeatmap()["Blackmail"])
}

func TestCollectorLatency(t *testing.T) {
	c := NewCollector()

	c.RecordLatency("threat_agent", 10*time.Millisecond)
	c.RecordLatency("threat_agent", 30*time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, c.AverageLatency("threat_agent"))
	assert.Equal(t, time.Duration(0), c.AverageLatency("unknown_agent"))
}

func TestCollectorTraces(t *testing.T) {
	c := NewCollector()

	id := c.StartTrace("analysis")
	c.EndTrace(id)

	traces := c.Traces()
	assert.Len(t, traces, 1)
	assert.Equal(t, "analysis", traces[0].Name)
	assert.False(t, traces[0].EndedAt.IsZero())
	assert.GreaterOrEqual(t, traces[0].Duration(), time.Duration(0))

	// Closing an unknown trace is a no-op
	c.EndTrace(id)
}

func TestCollectorDashboard(t *testing.T) {
	c := NewCollector()
	c.RecordRequest()
	c.RecordToolUsage("GoogleSearch")
	c.RecordThreat("Stalking")
	c.RecordLatency("redflag_agent", 5*time.Millisecond)

	dashboard := c.Dashboard()
	assert.Contains(t, dashboard, "Total Requests: 1")
	assert.Contains(t, dashboard, "GoogleSearch: 1")
	assert.Contains(t, dashboard, "Stalking: 1")
	assert.Contains(t, dashboard, "redflag_agent")
}
