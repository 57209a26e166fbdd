package orchestrator

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/redflag"
	"github.com/ethanbaker/guardian/internal/agents/threat"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(threat.NewAgent())

	t.Run("get registered agent", func(t *testing.T) {
		a, err := registry.Get("threat-agent")
		require.NoError(t, err)
		assert.Equal(t, "threat-agent", a.ID())
	})

	t.Run("get unknown agent", func(t *testing.T) {
		_, err := registry.Get("nonexistent-agent")
		assert.Error(t, err)
	})

	t.Run("ids", func(t *testing.T) {
		assert.Contains(t, registry.IDs(), "threat-agent")
	})
}

func TestRunChain(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(threat.NewAgent())
	registry.Register(redflag.NewAgent())

	rc := agent.NewRunContext()
	results, err := registry.RunChain(context.Background(), "I will kill you", rc, "threat-agent", "redflag-agent")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Violence / Physical Harm", results["threat-agent"]["exact_threat_category"])
	assert.NotNil(t, results["redflag-agent"])

	t.Run("unknown agent fails", func(t *testing.T) {
		_, err := registry.RunChain(context.Background(), "input", rc, "nonexistent-agent")
		assert.Error(t, err)
	})
}

func TestRunParallel(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(threat.NewAgent())
	registry.Register(redflag.NewAgent())

	rc := agent.NewRunContext()
	results, err := registry.RunParallel(context.Background(), "he said this is our secret", rc, "threat-agent", "redflag-agent")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.NotNil(t, results["threat-agent"])
	assert.Equal(t, redflag.LevelRedForest, results["redflag-agent"]["red_flag_level"])

	t.Run("unknown agent fails before any run", func(t *testing.T) {
		_, err := registry.RunParallel(context.Background(), "input", rc, "threat-agent", "nonexistent-agent")
		assert.Error(t, err)
	})
}

func TestA2ARouter(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(redflag.NewAgent())
	router := NewA2ARouter(registry)

	rc := agent.NewRunContext()
	finding, err := router.RouteMessage(context.Background(), "threat-agent", "redflag-agent", "Don't tell your mom", rc)
	require.NoError(t, err)
	assert.Equal(t, redflag.LevelRedForest, finding["red_flag_level"])

	t.Run("unknown target", func(t *testing.T) {
		_, err := router.RouteMessage(context.Background(), "threat-agent", "nonexistent-agent", "hello", rc)
		assert.Error(t, err)
	})
}
