package agent

import (
	"context"
	"fmt"
)

// Finding is the result record an agent produces for a single input.
// Agents share no schema; every agent documents its own fields.
type Finding = map[string]any

// Agent defines the interface for all analysis agents in the system
type Agent interface {
	// ID returns the unique identifier for this agent
	ID() string

	// Description returns a human-readable summary of what the agent detects
	Description() string

	// Process analyzes the input text and returns a finding
	Process(ctx context.Context, input string, rc *RunContext) (Finding, error)

	// ErrorFinding returns the agent's fixed error-shaped finding
	ErrorFinding(err error) Finding
}

// Run executes an agent and guarantees a finding comes back. Any error or
// panic from the agent is converted into its error-shaped finding, so a
// single misbehaving agent never takes down the pipeline.
func Run(ctx context.Context, a Agent, input string, rc *RunContext) (finding Finding) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("agent %s panicked: %v", a.ID(), r)
			rc.Log(a.ID(), "Error during analysis", Finding{"error": err.Error()})
			finding = a.ErrorFinding(err)
		}
	}()

	finding, err := a.Process(ctx, input, rc)
	if err != nil {
		rc.Log(a.ID(), "Error during analysis", Finding{"error": err.Error()})
		return a.ErrorFinding(err)
	}

	return finding
}

// ClampSeverity bounds a severity value to the 0-5 range
func ClampSeverity(severity int) int {
	if severity < 0 {
		return 0
	}
	if severity > 5 {
		return 5
	}
	return severity
}

// ClampScore bounds a score value to the 0-100 range
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
