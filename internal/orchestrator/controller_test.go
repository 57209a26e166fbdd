package orchestrator

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/panicresponse"
	"github.com/ethanbaker/guardian/internal/stores/session"
	"github.com/ethanbaker/guardian/internal/stores/threatlog"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/eventbus"
	"github.com/ethanbaker/guardian/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, opts Options) *Controller {
	t.Helper()

	controller, err := NewController(opts)
	require.NoError(t, err)
	return controller
}

func TestPipelineBlackmailScenario(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.Pipeline(context.Background(), "Send money or I will leak your photos on the internet.", rc)
	require.NoError(t, err)

	// Every stage reports
	for _, stage := range []string{"language", "panic", "threat", "manipulation", "redflag", "evidence", "legal", "reality"} {
		assert.NotNil(t, results[stage], "missing stage %s", stage)
	}

	assert.Equal(t, "Blackmail / Sextortion", results["threat"]["exact_threat_category"])
	assert.Equal(t, panicresponse.StatusStandby, results["panic"]["emergency_status"])
	assert.NotEqual(t, "Skipped due to emergency", results["reality"]["status"])
}

func TestPipelineEmergencySkipsRealityCheck(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.Pipeline(context.Background(), "Bachao! He is following me and said he will kill me.", rc)
	require.NoError(t, err)

	assert.Equal(t, panicresponse.StatusActive, results["panic"]["emergency_status"])
	assert.Equal(t, "Skipped due to emergency", results["reality"]["status"])
}

func TestPipelineEmptyInputCompletes(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.Pipeline(context.Background(), "", rc)
	require.NoError(t, err)

	assert.Equal(t, "None", results["threat"]["exact_threat_category"])
	assert.Equal(t, panicresponse.StatusStandby, results["panic"]["emergency_status"])
}

func TestPipelineV3HighThreat(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.PipelineV3(context.Background(), "I will kill you. I know where you live. (Location: India)", rc)
	require.NoError(t, err)

	// High severity triggers the forensic scan through to completion
	require.NotNil(t, results["forensic_scan"])
	assert.Equal(t, "COMPLETED", results["forensic_scan"]["status"])
	assert.Equal(t, "Operation Successful", results["forensic_scan"]["result"])

	// Legal lookup ran against the knowledge base
	assert.NotNil(t, results["legal"]["tool_lookup"])
}

func TestPipelineV3LowThreatSkipsScan(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.PipelineV3(context.Background(), "see you at lunch tomorrow", rc)
	require.NoError(t, err)

	assert.Nil(t, results["forensic_scan"])
}

func TestPipelineUltimate(t *testing.T) {
	bus := eventbus.New()
	collector := metrics.NewCollector()

	sessions, err := session.NewSqliteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	threats, err := threatlog.NewSqliteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { threats.Close() })

	controller := newTestController(t, Options{
		Bus:      bus,
		Metrics:  collector,
		Sessions: sessions,
		Threats:  threats,
	})

	var published []eventbus.Event
	bus.Subscribe(eventbus.TopicThreatDetected, func(e eventbus.Event) {
		published = append(published, e)
	})

	ctx := context.Background()
	rc := agent.NewRunContext()

	results, err := controller.PipelineUltimate(ctx, "I will kill you.", rc)
	require.NoError(t, err)

	t.Run("system context injected", func(t *testing.T) {
		require.NotNil(t, results["system_context"])
		assert.Contains(t, results["system_context"]["memory"], "No similar past cases")
		assert.Contains(t, results["system_context"]["internet"], "Internet Check")
	})

	t.Run("threat event published", func(t *testing.T) {
		require.Len(t, published, 1)
		assert.Equal(t, "I will kill you.", published[0].Payload["text"])
	})

	t.Run("metrics recorded", func(t *testing.T) {
		requests, _ := collector.Totals()
		assert.Equal(t, 1, requests)
		assert.Equal(t, 1, collector.ThreatHeatmap()["Violence / Physical Harm"])
		assert.NotZero(t, collector.ToolUsage()["GoogleSearch"])
	})

	t.Run("threat logged against session", func(t *testing.T) {
		profile, err := threats.GetRiskProfile(ctx, rc.SessionID.String())
		require.NoError(t, err)
		assert.Equal(t, threatlog.RiskHigh, profile)
	})

	t.Run("memory recall on repeat input", func(t *testing.T) {
		require.NoError(t, sessions.SaveMessage(ctx, session.NewMessage(rc.SessionID, session.RoleUser, "he is threatening to kill me again")))

		repeat, err := controller.PipelineUltimate(ctx, "someone threatening me", agent.NewRunContext())
		require.NoError(t, err)
		assert.Contains(t, repeat["system_context"]["memory"], "Memory Recall")
	})
}

func TestPipelinePublishesEmergencyEvent(t *testing.T) {
	bus := eventbus.New()
	controller := newTestController(t, Options{Bus: bus})

	var published []eventbus.Event
	bus.Subscribe(eventbus.TopicEmergency, func(e eventbus.Event) {
		published = append(published, e)
	})

	ctx := context.Background()

	t.Run("emergency input publishes", func(t *testing.T) {
		_, err := controller.Pipeline(ctx, "Bachao! He is following me and said he will kill me.", agent.NewRunContext())
		require.NoError(t, err)

		require.Len(t, published, 1)
		assert.Equal(t, "Help me / Save me", published[0].Payload["text"])

		status, ok := published[0].Payload["status"].(agent.Finding)
		require.True(t, ok)
		assert.Equal(t, panicresponse.StatusActive, status["emergency_status"])
	})

	t.Run("standby input stays silent", func(t *testing.T) {
		_, err := controller.Pipeline(ctx, "see you at lunch tomorrow", agent.NewRunContext())
		require.NoError(t, err)

		assert.Len(t, published, 1)
	})
}

func TestPipelineV3PublishesScanCompleted(t *testing.T) {
	bus := eventbus.New()
	controller := newTestController(t, Options{Bus: bus})

	var published []eventbus.Event
	bus.Subscribe(eventbus.TopicScanCompleted, func(e eventbus.Event) {
		published = append(published, e)
	})

	input := "I will kill you. I know where you live. (Location: India)"
	_, err := controller.PipelineV3(context.Background(), input, agent.NewRunContext())
	require.NoError(t, err)

	require.Len(t, published, 1)
	assert.Equal(t, input, published[0].Payload["target"])
	assert.Equal(t, "Operation Successful", published[0].Payload["result"])
}

func TestAnalyzeIncludesEvaluation(t *testing.T) {
	controller := newTestController(t, Options{})
	rc := agent.NewRunContext()

	results, err := controller.Analyze(context.Background(), "I will kill you.", rc)
	require.NoError(t, err)

	require.NotNil(t, results["_evaluation"])
	assert.NotNil(t, results["_evaluation"]["quality_score"])
}
