// Package language implements the multilingual agent: canned language
// detection, English translation, and speech command recognition.
package language

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent translates text and recognizes speech intents
type Agent struct{}

// NewAgent creates a new multilingual agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "language-agent"
}

// Description returns what the agent does
func (a *Agent) Description() string {
	return "Translates text, detects language, and recognizes speech intent."
}

// Process detects the language and translates the input. Findings carry
// input_language, output_translation, and speech_command.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Processing language for: %s", agent.Preview(input)), nil)

	result := a.detect(input)
	rc.Log(a.ID(), "Language processing complete", result)
	return result, nil
}

func (a *Agent) detect(input string) agent.Finding {
	switch {
	case agent.ContainsAny(input, "help", "bachao"):
		return agent.Finding{
			"input_language":     "hi",
			"output_translation": "Help me / Save me",
			"speech_command":     "emergency_help",
		}

	case agent.ContainsAny(input, "maar", "kill", "khatam"):
		return agent.Finding{
			"input_language":     "hi",
			"output_translation": "I will kill you / finish you (Death Threat)",
			"speech_command":     "none",
		}

	case agent.ContainsAny(input, "paisa", "rupaye"):
		return agent.Finding{
			"input_language":     "hi",
			"output_translation": "Give money (Financial Demand)",
			"speech_command":     "none",
		}

	case agent.ContainsAny(input, "ayuda", "peligro"):
		return agent.Finding{
			"input_language":     "es",
			"output_translation": "Help / Danger",
			"speech_command":     "emergency_help",
		}

	case agent.ContainsAny(input, "record", "grabar"):
		return agent.Finding{
			"input_language":     "auto",
			"output_translation": "Record this",
			"speech_command":     "start_recording",
		}
	}

	return agent.Finding{
		"input_language":     "en",
		"output_translation": input,
		"speech_command":     "none",
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(_ error) agent.Finding {
	return agent.Finding{
		"input_language":     "unknown",
		"output_translation": "Error",
		"speech_command":     "error",
	}
}
