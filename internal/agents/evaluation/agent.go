// Package evaluation implements the evaluation agent, which reviews the
// merged output of the other agents for quality, consistency, and safety.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent reviews the output of other agents
type Agent struct{}

// NewAgent creates a new evaluation agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "evaluation-agent"
}

// Description returns what the agent reviews
func (a *Agent) Description() string {
	return "Evaluates the output of other agents for quality, consistency, and safety."
}

// Process parses the input as a JSON report of agent findings and reviews
// it. Findings carry quality_score (0-10), consistency_check, safety_check,
// and critique.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), "Evaluating system performance...", nil)

	var report map[string]agent.Finding
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return agent.Finding{
			"quality_score":     0,
			"consistency_check": "Error",
			"safety_check":      "Unknown",
			"critique":          "Failed to parse input data.",
		}, nil
	}

	result := a.Evaluate(report)
	rc.Log(a.ID(), "Evaluation complete", result)
	return result, nil
}

// Evaluate reviews a merged report of agent findings directly
func (a *Agent) Evaluate(report map[string]agent.Finding) agent.Finding {
	severity := findingSeverity(report["threat"])
	laws := findingLaws(report["legal"])

	score := 8
	critique := "Good analysis."

	raw, _ := json.Marshal(report)
	switch {
	case severity >= 4 && len(laws) == 0:
		score = 4
		critique = "Critical Issue: High threat detected but no legal laws found."
	case severity <= 1 && strings.Contains(strings.ToLower(string(raw)), "kill"):
		score = 2
		critique = "Critical Error: Threat agent missed a death threat."
	case severity >= 4:
		critique = "High threat correctly identified."
	}

	consistency := "Pass"
	if score <= 5 {
		consistency = "Fail"
	}

	return agent.Finding{
		"quality_score":     score,
		"consistency_check": consistency,
		"safety_check":      "Pass",
		"critique":          critique,
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"quality_score":     0,
		"consistency_check": "Error",
		"safety_check":      "Unknown",
		"critique":          fmt.Sprintf("System error: %s", err.Error()),
	}
}

// findingSeverity pulls an integer severity out of a threat finding
func findingSeverity(finding agent.Finding) int {
	if finding == nil {
		return 0
	}

	switch v := finding["severity"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// findingLaws pulls the applicable laws out of a legal finding
func findingLaws(finding agent.Finding) []string {
	if finding == nil {
		return nil
	}

	switch v := finding["applicable_laws"].(type) {
	case []string:
		return v
	case []any:
		laws := make([]string, 0, len(v))
		for _, law := range v {
			if s, ok := law.(string); ok {
				laws = append(laws, s)
			}
		}
		return laws
	default:
		return nil
	}
}
