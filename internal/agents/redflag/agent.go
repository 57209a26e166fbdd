// Package redflag implements the red-flag detection agent, which grades
// sexual coercion, grooming patterns, and explicit requests on a
// Green/Yellow/Red/Red Forest scale.
package redflag

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Red flag levels, from safe to severe grooming
const (
	LevelGreen     = "Green"
	LevelYellow    = "Yellow"
	LevelRed       = "Red"
	LevelRedForest = "Red Forest"
)

// Agent detects sexual coercion and grooming cues
type Agent struct{}

// NewAgent creates a new red-flag detection agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "redflag-agent"
}

// Description returns what the agent detects
func (a *Agent) Description() string {
	return "Detects sexual coercion, grooming, fetish cues, and explicit requests."
}

// Process grades the input. Secrecy cues rank above explicit requests
// because they signal grooming, the most severe level.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Analyzing text: %s", agent.Preview(input)), nil)

	result := a.grade(input)
	rc.Log(a.ID(), "Analysis complete", result)
	return result, nil
}

func (a *Agent) grade(input string) agent.Finding {
	switch {
	case agent.ContainsAny(input, "secret", "don't tell", "special"):
		return agent.Finding{
			"lust_intent_score": 85,
			"red_flag_level":    LevelRedForest,
			"example_lines":     []string{"Let's keep this our little secret", "You are special to me"},
		}

	case agent.ContainsAny(input, "touch", "kiss", "body", "nude", "naked", "send me"):
		return agent.Finding{
			"lust_intent_score": 75,
			"red_flag_level":    LevelRed,
			"example_lines":     []string{"I want to touch you", "Your body is amazing", "Send me photos"},
		}

	case agent.ContainsAny(input, "lonely", "understand you"):
		return agent.Finding{
			"lust_intent_score": 40,
			"red_flag_level":    LevelYellow,
			"example_lines":     []string{"I know you're lonely", "Only I understand you"},
		}
	}

	return agent.Finding{
		"lust_intent_score": 5,
		"red_flag_level":    LevelGreen,
		"example_lines":     []string{},
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"lust_intent_score": 0,
		"red_flag_level":    "Error",
		"example_lines":     []string{fmt.Sprintf("System error: %s", err.Error())},
	}
}
