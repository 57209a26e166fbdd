// Package threat implements the threat detection agent. It scans input for
// harassment, threats, coercion, and unsafe requests against a canned
// knowledge base.
package threat

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent detects threats using a keyword knowledge base
type Agent struct {
	knowledgeBase *agent.Ruleset
}

// NewAgent creates a new threat detection agent
func NewAgent() *Agent {
	return &Agent{
		knowledgeBase: agent.NewRuleset(
			agent.Rule{
				Name:     "deepfake",
				Keywords: []string{"fake images", "ai generated", "deepfake", "face swap", "nude", "morph", "inappropriate images", "fake photos", "created fake"},
				Record: agent.Finding{
					"category": "Deepfake / Image Abuse",
					"severity": 5,
					"action":   "Report to platform immediately. File complaint at Cyber Crime portal. Do not delete evidence.",
				},
			},
			agent.Rule{
				Name:     "domestic_abuse",
				Keywords: []string{"husband", "wife", "partner", "beat", "hit", "slap", "control", "money", "salary", "passport", "prisoner", "allow", "forbid"},
				Record: agent.Finding{
					"category": "Domestic Abuse / Coercive Control",
					"severity": 4,
					"action":   "Contact domestic abuse helpline. Secure documents. Plan exit strategy.",
				},
			},
			agent.Rule{
				Name:     "blackmail",
				Keywords: []string{"photos", "video", "leak", "viral", "expose", "internet", "send money", "pay me", "release"},
				Record: agent.Finding{
					"category": "Blackmail / Sextortion",
					"severity": 4,
					"action":   "Do not pay. Do not delete chats. Report to Cyber Crime.",
				},
			},
			agent.Rule{
				Name:     "stalking",
				Keywords: []string{"follow", "watch", "outside", "track", "everywhere", "saw you", "know where you live"},
				Record: agent.Finding{
					"category": "Stalking / Surveillance",
					"severity": 4,
					"action":   "Vary routines. Document evidence. Contact police.",
				},
			},
			agent.Rule{
				Name:     "sexual_harassment",
				Keywords: []string{"touch", "kiss", "body", "sexy", "hot", "nude", "naked", "send pics", "rape", "force", "molest"},
				Record: agent.Finding{
					"category": "Sexual Harassment / Assault",
					"severity": 5,
					"action":   "Go to safe place. Call emergency services.",
				},
			},
			agent.Rule{
				Name:     "violence",
				Keywords: []string{"kill", "die", "murder", "shoot", "stab", "burn", "acid", "hurt", "attack", "destroy"},
				Record: agent.Finding{
					"category": "Violence / Physical Harm",
					"severity": 5,
					"action":   "Contact law enforcement immediately. Ensure physical safety.",
				},
			},
		),
	}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "threat-agent"
}

// Description returns what the agent detects
func (a *Agent) Description() string {
	return "Detects harassment, threats, coercion, and unsafe requests."
}

// Process scans the input against the knowledge base. When no category
// matches, a heuristic pass over generic distress words produces an
// unclassified-suspicious finding; otherwise the default safe record comes
// back.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Analyzing text: %s", agent.Preview(input)), nil)

	result := a.search(input)
	rc.Log(a.ID(), "Analysis complete", result)
	return result, nil
}

// search scans the knowledge base and falls back to heuristic analysis
func (a *Agent) search(input string) agent.Finding {
	if rule, score := a.knowledgeBase.Match(input); score > 0 {
		return agent.Finding{
			"exact_threat_category": rule.Record["category"],
			"severity":              agent.ClampSeverity(rule.Record["severity"].(int)),
			"explanation":           fmt.Sprintf("Detected via Knowledge Base Match: Found patterns matching '%s'.", rule.Record["category"]),
			"recommended_action":    rule.Record["action"],
		}
	}

	// Fallback heuristic for unknown but suspicious inputs
	if agent.ContainsAny(input, "danger", "scared", "help", "police", "emergency", "threat") {
		return agent.Finding{
			"exact_threat_category": "Unclassified Suspicious Activity",
			"severity":              3,
			"explanation":           "Detected via Heuristic Analysis: Found patterns matching 'Unclassified Suspicious Activity'.",
			"recommended_action":    "Situation unclear but suspicious. Proceed with caution.",
		}
	}

	return agent.Finding{
		"exact_threat_category": "None",
		"severity":              1,
		"explanation":           "No clear threat detected in the text after scanning databases.",
		"recommended_action":    "No action needed.",
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"exact_threat_category": "Error",
		"severity":              0,
		"explanation":           err.Error(),
		"recommended_action":    "Debug system.",
	}
}
