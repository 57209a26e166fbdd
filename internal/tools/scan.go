package tools

import (
	"fmt"
	"log"
	"sync"
)

// ScanState represents the lifecycle state of a ForensicScan
type ScanState string

// Valid scan states
const (
	ScanIdle      ScanState = "IDLE"
	ScanRunning   ScanState = "RUNNING"
	ScanPaused    ScanState = "PAUSED"
	ScanCompleted ScanState = "COMPLETED"
)

// scanStepSize is how much progress a single Step adds
const scanStepSize = 20

// ForensicScan is a long-running deep scan over a session's data. It is a
// simulated state machine: callers drive it with Start/Step/Pause/Resume
// and read Progress/Result
type ForensicScan struct {
	mu       sync.Mutex
	target   string
	state    ScanState
	progress int
	result   string
}

// NewForensicScan creates an idle scan over the given target
func NewForensicScan(target string) *ForensicScan {
	return &ForensicScan{target: target, state: ScanIdle}
}

// Target returns what the scan is inspecting
func (s *ForensicScan) Target() string { return s.target }

// State returns the current state
func (s *ForensicScan) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns completion as a percentage
func (s *ForensicScan) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Result returns the scan result, empty until the scan completes
func (s *ForensicScan) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Start moves the scan from IDLE to RUNNING
func (s *ForensicScan) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != ScanIdle {
		return fmt.Errorf("cannot start scan in state %s", s.state)
	}

	log.Printf("[FORENSIC_SCAN]: starting deep scan of '%s'", s.target)
	s.state = ScanRunning
	return nil
}

// Step advances a running scan by one increment. When progress reaches
// 100 the scan completes
func (s *ForensicScan) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != ScanRunning {
		return fmt.Errorf("cannot step scan in state %s", s.state)
	}

	s.progress += scanStepSize
	log.Printf("[FORENSIC_SCAN]: scanning '%s' (%d%%)", s.target, s.progress)

	if s.progress >= 100 {
		s.progress = 100
		s.state = ScanCompleted
		s.result = "Operation Successful"
	}
	return nil
}

// Pause suspends a running scan
func (s *ForensicScan) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != ScanRunning {
		return fmt.Errorf("cannot pause scan in state %s", s.state)
	}

	s.state = ScanPaused
	return nil
}

// Resume continues a paused scan
func (s *ForensicScan) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != ScanPaused {
		return fmt.Errorf("cannot resume scan in state %s", s.state)
	}

	s.state = ScanRunning
	return nil
}

// RunToCompletion drives the scan from IDLE through to COMPLETED. Used
// when no interactive pausing is needed
func (s *ForensicScan) RunToCompletion() error {
	if err := s.Start(); err != nil {
		return err
	}
	for s.State() == ScanRunning {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
