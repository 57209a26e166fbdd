package evidence_test

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/evidence"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	a := evidence.NewAgent()

	tests := []struct {
		name         string
		input        string
		evidenceType string
		crime        string
	}{
		{"death threat", "he said he would kill me", "Death Threat", "Criminal Threat / Assault"},
		{"extortion", "he wants money or he posts the photos", "Blackmail / Extortion", "Extortion"},
		{"grooming", "he told me it's our secret", "Grooming", "Child Endangerment / Grooming"},
		{"nothing found", "we talked about the weather", "None", "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := agent.NewRunContext()
			finding, err := a.Process(context.Background(), tt.input, rc)
			require.NoError(t, err)

			assert.Equal(t, tt.evidenceType, finding["classified_evidence_type"])
			assert.Equal(t, tt.crime, finding["crime_category"])
			assert.NotEmpty(t, finding["summary_evidence_pack"])
		})
	}
}

func TestMatchedEvidenceCarriesTimestamps(t *testing.T) {
	a := evidence.NewAgent()
	rc := agent.NewRunContext()

	finding, err := a.Process(context.Background(), "I will kill you", rc)
	require.NoError(t, err)
	assert.NotEmpty(t, finding["timestamps"])
}

func TestErrorFinding(t *testing.T) {
	a := evidence.NewAgent()
	finding := a.ErrorFinding(assert.AnError)

	assert.Equal(t, "Error", finding["classified_evidence_type"])
	assert.Equal(t, "System Error", finding["crime_category"])
}
