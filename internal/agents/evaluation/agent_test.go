package evaluation_test

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/evaluation"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	a := evaluation.NewAgent()

	t.Run("good analysis", func(t *testing.T) {
		result := a.Evaluate(map[string]agent.Finding{
			"threat": {"severity": 1, "exact_threat_category": "None"},
			"legal":  {"applicable_laws": []string{"Some Act"}},
		})

		assert.Equal(t, 8, result["quality_score"])
		assert.Equal(t, "Pass", result["consistency_check"])
	})

	t.Run("high threat without legal guidance", func(t *testing.T) {
		result := a.Evaluate(map[string]agent.Finding{
			"threat": {"severity": 5},
			"legal":  {"applicable_laws": []string{}},
		})

		assert.Equal(t, 4, result["quality_score"])
		assert.Equal(t, "Fail", result["consistency_check"])
	})

	t.Run("missed death threat", func(t *testing.T) {
		result := a.Evaluate(map[string]agent.Finding{
			"threat":   {"severity": 1},
			"evidence": {"summary_evidence_pack": "threat to kill"},
			"legal":    {"applicable_laws": []string{"Some Act"}},
		})

		assert.Equal(t, 2, result["quality_score"])
		assert.Equal(t, "Fail", result["consistency_check"])
	})

	t.Run("high threat identified with laws", func(t *testing.T) {
		result := a.Evaluate(map[string]agent.Finding{
			"threat": {"severity": 5},
			"legal":  {"applicable_laws": []string{"Section 506 IPC"}},
		})

		assert.Equal(t, 8, result["quality_score"])
		assert.Equal(t, "High threat correctly identified.", result["critique"])
	})
}

func TestProcessParsesJSONReport(t *testing.T) {
	a := evaluation.NewAgent()
	rc := agent.NewRunContext()

	report := `{"threat": {"severity": 5}, "legal": {"applicable_laws": ["Some Act"]}}`
	finding, err := a.Process(context.Background(), report, rc)
	require.NoError(t, err)

	assert.Equal(t, 8, finding["quality_score"])
	assert.Equal(t, "Pass", finding["safety_check"])
}

func TestProcessMalformedInput(t *testing.T) {
	a := evaluation.NewAgent()
	rc := agent.NewRunContext()

	finding, err := a.Process(context.Background(), "not json at all", rc)
	require.NoError(t, err)

	assert.Equal(t, 0, finding["quality_score"])
	assert.Equal(t, "Failed to parse input data.", finding["critique"])
}
