// Package realitycheck implements the reality-check generator agent, which
// suggests bait messages that reveal the other party's real intentions.
package realitycheck

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent generates bait messages with predicted responses
type Agent struct{}

// NewAgent creates a new reality-check agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "realitycheck-agent"
}

// Description returns what the agent generates
func (a *Agent) Description() string {
	return "Generates bait messages to reveal real intentions and predicts responses."
}

// Process suggests bait messages for the suspicious statement. Findings
// carry bait_messages, predicted_responses (malicious vs safe), and a
// confidence_score.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Generating reality checks for: %s", agent.Preview(input)), nil)

	result := a.generate(input)
	rc.Log(a.ID(), "Reality checks generated", result)
	return result, nil
}

func (a *Agent) generate(input string) agent.Finding {
	switch {
	case agent.ContainsAny(input, "money", "financial"):
		return agent.Finding{
			"bait_messages": []string{
				"I can't send money right now, but I can help you find a job.",
				"My bank account is frozen, can we meet in person instead?",
			},
			"predicted_responses": map[string]string{
				"malicious": "They will get angry, guilt-trip you, or refuse to meet.",
				"safe":      "They will be understanding and open to other forms of help.",
			},
			"confidence_score": 90,
		}

	case agent.ContainsAny(input, "secret", "don't tell"):
		return agent.Finding{
			"bait_messages": []string{
				"I tell my mom everything, I'm going to ask her advice.",
				"Why does it have to be a secret? That makes me uncomfortable.",
			},
			"predicted_responses": map[string]string{
				"malicious": "They will panic, threaten you, or try to isolate you further.",
				"safe":      "They will respect your boundary and agree to be open.",
			},
			"confidence_score": 85,
		}

	case agent.ContainsAny(input, "love", "soulmate"):
		return agent.Finding{
			"bait_messages": []string{
				"This is moving too fast for me, I need some space.",
				"I want to take things slow and get to know you as a friend first.",
			},
			"predicted_responses": map[string]string{
				"malicious": "They will accuse you of not loving them or try to rush you again (Love Bombing).",
				"safe":      "They will respect your pace and back off.",
			},
			"confidence_score": 80,
		}
	}

	return agent.Finding{
		"bait_messages": []string{"Can we talk about this later?", "I'm not comfortable with this topic."},
		"predicted_responses": map[string]string{
			"malicious": "Pushy or dismissive behavior.",
			"safe":      "Respectful agreement.",
		},
		"confidence_score": 50,
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(_ error) agent.Finding {
	return agent.Finding{
		"bait_messages":       []string{"Error generating bait"},
		"predicted_responses": map[string]string{},
		"confidence_score":    0,
	}
}
