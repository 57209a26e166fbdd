package orchestrator

import (
	"context"
	"fmt"
	"log"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// A2ARouter lets agents talk directly to each other without going
// through the user-facing pipeline
type A2ARouter struct {
	registry *Registry
}

// NewA2ARouter creates a router over the given registry
func NewA2ARouter(registry *Registry) *A2ARouter {
	return &A2ARouter{registry: registry}
}

// RouteMessage delivers a message from one agent straight to another and
// returns the target's finding
func (r *A2ARouter) RouteMessage(ctx context.Context, sender string, targetID string, message string, rc *agent.RunContext) (agent.Finding, error) {
	log.Printf("[A2A]: %s --> %s: %s", sender, targetID, agent.Preview(message))

	target, err := r.registry.Get(targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to route message: %w", err)
	}

	return r.registry.Run(ctx, target, message, rc), nil
}
