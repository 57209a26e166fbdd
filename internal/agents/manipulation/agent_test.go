package manipulation_test

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/manipulation"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	a := manipulation.NewAgent()

	tests := []struct {
		name       string
		input      string
		flags      []string
		trustScore int
	}{
		{"love bombing", "you are my soulmate, you are perfect", []string{"Love Bombing", "Validation Farming"}, 30},
		{"gaslighting", "you're crazy, you're imagining things", []string{"Gaslighting"}, 10},
		{"guilt tripping", "after all i did for you, you blame me", []string{"Guilt-Tripping", "Emotional Manipulation"}, 20},
		{"blackmail", "I will leak everything and make it viral", []string{"Blackmail", "Coercion"}, 5},
		{"share compound", "I will share your private photo", []string{"Blackmail", "Coercion"}, 5},
		{"controlling", "I forbid you to wear that", []string{"Controlling Tone", "Coercion"}, 15},
		{"secrecy", "this stays between us, don't tell anyone", []string{"Isolation/Secrecy"}, 25},
		{"clean", "see you at lunch tomorrow", []string{}, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := agent.NewRunContext()
			finding, err := a.Process(context.Background(), tt.input, rc)
			require.NoError(t, err)

			assert.Equal(t, tt.flags, finding["manipulation_flags"])
			assert.Equal(t, tt.trustScore, finding["trust_score"])
			assert.NotEmpty(t, finding["recommended_action"])
		})
	}
}

func TestFirstTacticWins(t *testing.T) {
	a := manipulation.NewAgent()
	rc := agent.NewRunContext()

	// Love bombing cues rank before secrecy cues
	finding, err := a.Process(context.Background(), "you are my soulmate, don't tell your parents", rc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Love Bombing", "Validation Farming"}, finding["manipulation_flags"])
}

func TestErrorFinding(t *testing.T) {
	a := manipulation.NewAgent()
	finding := a.ErrorFinding(assert.AnError)

	assert.Equal(t, []string{"Error"}, finding["manipulation_flags"])
	assert.Equal(t, 0, finding["trust_score"])
}
