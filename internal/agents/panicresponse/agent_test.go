package panicresponse_test

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/panicresponse"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessStandby(t *testing.T) {
	a := panicresponse.NewAgent()
	rc := agent.NewRunContext()

	finding, err := a.Process(context.Background(), "all quiet today", rc)
	require.NoError(t, err)

	assert.Equal(t, panicresponse.StatusStandby, finding["emergency_status"])
	assert.Equal(t, false, finding["location_request"])
	assert.Equal(t, false, finding["auto_recording_signal"])
	assert.NotContains(t, finding, "hardware_actions")
	assert.False(t, panicresponse.IsEmergency(finding))
}

func TestProcessEmergency(t *testing.T) {
	a := panicresponse.NewAgent()
	rc := agent.NewRunContext()

	finding, err := a.Process(context.Background(), "HELP, he is following me", rc)
	require.NoError(t, err)

	assert.Equal(t, panicresponse.StatusActive, finding["emergency_status"])
	assert.Equal(t, true, finding["location_request"])
	assert.Equal(t, true, finding["auto_recording_signal"])
	assert.True(t, panicresponse.IsEmergency(finding))

	// Simulated hardware actions fire on an active emergency
	hardware, ok := finding["hardware_actions"].(agent.Finding)
	require.True(t, ok)
	assert.NotNil(t, hardware["gps_location"])
	assert.NotEmpty(t, hardware["audio_recording"])
	assert.NotEmpty(t, hardware["sos_broadcast"])
}

func TestTriggerWords(t *testing.T) {
	a := panicresponse.NewAgent()

	for _, word := range []string{"danger", "panic", "emergency", "scared", "unsafe", "kill"} {
		t.Run(word, func(t *testing.T) {
			rc := agent.NewRunContext()
			finding, err := a.Process(context.Background(), "there is "+word+" here", rc)
			require.NoError(t, err)
			assert.Equal(t, panicresponse.StatusActive, finding["emergency_status"])
		})
	}
}

func TestIsEmergencyNilFinding(t *testing.T) {
	assert.False(t, panicresponse.IsEmergency(nil))
}
