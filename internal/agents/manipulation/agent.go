// Package manipulation implements the manipulation detection agent, which
// flags love bombing, gaslighting, guilt-tripping, and controlling tone.
package manipulation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent detects emotional manipulation tactics
type Agent struct{}

// NewAgent creates a new manipulation detection agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "manipulation-agent"
}

// Description returns what the agent detects
func (a *Agent) Description() string {
	return "Detects love bombing, gaslighting, and emotional manipulation."
}

// Process checks the input against ordered tactic patterns; the first
// matching tactic wins. Findings carry manipulation_flags, an explanation,
// a trust_score (0-100, 100 fully trustworthy), and a recommended action.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Analyzing text: %s", agent.Preview(input)), nil)

	result := a.analyze(input)
	rc.Log(a.ID(), "Analysis complete", result)
	return result, nil
}

func (a *Agent) analyze(input string) agent.Finding {
	lower := strings.ToLower(input)

	switch {
	case agent.ContainsAny(lower, "soulmate", "destiny", "perfect", "love you", "only me"):
		return agent.Finding{
			"manipulation_flags": []string{"Love Bombing", "Validation Farming"},
			"explanation":        "Excessive flattery and intensity early in interaction.",
			"trust_score":        30,
			"recommended_action": "Proceed with caution. Verify if actions match words.",
		}

	case agent.ContainsAny(lower, "crazy", "imagining", "sensitive", "overreacting", "your fault"):
		return agent.Finding{
			"manipulation_flags": []string{"Gaslighting"},
			"explanation":        "Attempting to make the user question their reality or feelings.",
			"trust_score":        10,
			"recommended_action": "Trust your instincts. Document interactions. Disengage if pattern continues.",
		}

	case agent.ContainsAny(lower, "after all i did", "hurt me", "blame", "sorry", "promise"):
		return agent.Finding{
			"manipulation_flags": []string{"Guilt-Tripping", "Emotional Manipulation"},
			"explanation":        "Using guilt to control the user's actions.",
			"trust_score":        20,
			"recommended_action": "Set boundaries. Do not give in to guilt.",
		}

	case agent.ContainsAny(lower, "leak", "expose", "viral") ||
		(strings.Contains(lower, "share") && agent.ContainsAny(lower, "nude", "private", "photo")):
		return agent.Finding{
			"manipulation_flags": []string{"Blackmail", "Coercion"},
			"explanation":        "Threatening to expose private information to control behavior.",
			"trust_score":        5,
			"recommended_action": "This is blackmail. Do not comply. Report immediately.",
		}

	case agent.ContainsAny(lower, "allow", "forbid", "wear", "talk to", "password", "if you don't", "or else"):
		return agent.Finding{
			"manipulation_flags": []string{"Controlling Tone", "Coercion"},
			"explanation":        "Attempting to dictate user's behavior or choices.",
			"trust_score":        15,
			"recommended_action": "Assert independence. Recognize this as a red flag.",
		}

	case agent.ContainsAny(lower, "trust me", "believe me", "secret", "between us", "don't tell"):
		return agent.Finding{
			"manipulation_flags": []string{"Isolation/Secrecy"},
			"explanation":        "Attempting to isolate the user or keep interactions secret.",
			"trust_score":        25,
			"recommended_action": "Do not keep secrets that make you uncomfortable. Talk to a trusted adult/friend.",
		}
	}

	return agent.Finding{
		"manipulation_flags": []string{},
		"explanation":        "No obvious manipulation detected.",
		"trust_score":        90,
		"recommended_action": "Continue interaction normally.",
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"manipulation_flags": []string{"Error"},
		"explanation":        fmt.Sprintf("System error: %s", err.Error()),
		"trust_score":        0,
		"recommended_action": "Debug system.",
	}
}
