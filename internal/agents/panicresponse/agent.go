// Package panicresponse implements the panic response agent, which watches
// for emergency triggers and simulates the safety protocols that would fire
// on real hardware.
package panicresponse

import (
	"context"
	"fmt"
	"time"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Emergency status values
const (
	StatusActive  = "Active"
	StatusStandby = "Standby"
)

// Words that trip the emergency protocol
var triggers = []string{"help", "danger", "panic", "emergency", "follow", "scared", "unsafe", "kill"}

// Agent handles emergency triggers
type Agent struct{}

// NewAgent creates a new panic response agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "panic-agent"
}

// Description returns what the agent handles
func (a *Agent) Description() string {
	return "Handles emergency triggers by requesting location, signaling recording, and preparing messages."
}

// Process checks for panic triggers. On an active emergency the simulated
// hardware actions (GPS fix, silent recording, SOS broadcast) are attached
// under hardware_actions.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Checking for panic triggers: %s", agent.Preview(input)), nil)

	if !agent.ContainsAny(input, triggers...) {
		result := agent.Finding{
			"location_request":              false,
			"auto_recording_signal":         false,
			"message_template_for_contacts": "",
			"emergency_status":              StatusStandby,
		}
		rc.Log(a.ID(), "Status: Standby", result)
		return result, nil
	}

	result := agent.Finding{
		"location_request":              true,
		"auto_recording_signal":         true,
		"message_template_for_contacts": "SOS! I am in danger. Here is my location. Audio recording started.",
		"emergency_status":              StatusActive,
	}
	rc.Log(a.ID(), "!!! EMERGENCY TRIGGERED !!! Initiating Hardware Protocols...", result)

	hardware := agent.Finding{
		"gps_location":    a.liveGPSLocation(),
		"audio_recording": a.triggerSilentRecording(),
		"sos_broadcast":   a.broadcastSOSSignal(),
	}
	result["hardware_actions"] = hardware
	rc.Log(a.ID(), "Hardware Actions Completed", hardware)

	return result, nil
}

// liveGPSLocation simulates a GPS fix
func (a *Agent) liveGPSLocation() agent.Finding {
	return agent.Finding{
		"lat":       28.7041,
		"long":      77.1025,
		"precision": "10m",
		"timestamp": time.Now().Unix(),
	}
}

// triggerSilentRecording simulates starting an audio recording
func (a *Agent) triggerSilentRecording() string {
	return "/data/secure_storage/panic_rec_001.aac"
}

// broadcastSOSSignal simulates an SOS broadcast
func (a *Agent) broadcastSOSSignal() string {
	return "Encrypted Signal Sent to Nearest Police Node (ID: POL-55)"
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"location_request":              false,
		"auto_recording_signal":         false,
		"message_template_for_contacts": fmt.Sprintf("Error: %s", err.Error()),
		"emergency_status":              "Error",
	}
}

// IsEmergency reports whether a finding signals an active emergency
func IsEmergency(finding agent.Finding) bool {
	return finding != nil && finding["emergency_status"] == StatusActive
}
