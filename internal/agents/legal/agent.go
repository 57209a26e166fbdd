// Package legal implements the legal support agent, which returns canned
// legal guidance keyed on the user's country and situation.
package legal

import (
	"context"
	"fmt"

	"github.com/ethanbaker/guardian/pkg/agent"
)

// Agent provides canned legal guidance
type Agent struct{}

// NewAgent creates a new legal support agent
func NewAgent() *Agent {
	return &Agent{}
}

// ID returns the agent identifier
func (a *Agent) ID() string {
	return "legal-agent"
}

// Description returns what the agent provides
func (a *Agent) Description() string {
	return "Provides legal information, complaint steps, and rights based on location and situation."
}

// Process returns guidance for the country and situation described in the
// input. Findings carry applicable_laws, complaint_steps,
// police_contact_structure, and rights_of_the_victim.
func (a *Agent) Process(_ context.Context, input string, rc *agent.RunContext) (agent.Finding, error) {
	rc.Log(a.ID(), fmt.Sprintf("Providing legal support for: %s", agent.Preview(input)), nil)

	result := a.lookup(input)
	rc.Log(a.ID(), "Legal guidance generated", result)
	return result, nil
}

func (a *Agent) lookup(input string) agent.Finding {
	if agent.ContainsAny(input, "india", "delhi") {
		return a.lookupIndia(input)
	}

	if agent.ContainsAny(input, "usa", "united states", "america") {
		return agent.Finding{
			"applicable_laws":          []string{"18 U.S. Code § 2261A (Stalking)", "State-specific Cyber Harassment Laws"},
			"complaint_steps":          []string{"Preserve evidence", "Contact IC3 (FBI)", "File police report"},
			"police_contact_structure": "Local Police Department or FBI Field Office.",
			"rights_of_the_victim":     []string{"Right to restraining order", "Victim compensation"},
		}
	}

	return agent.Finding{
		"applicable_laws":          []string{"Check local penal code for Harassment/Cyberbullying"},
		"complaint_steps":          []string{"Block user", "Report to platform", "Consult local lawyer"},
		"police_contact_structure": "Local Law Enforcement Agency.",
		"rights_of_the_victim":     []string{"Right to report", "Right to safety"},
	}
}

func (a *Agent) lookupIndia(input string) agent.Finding {
	switch {
	case agent.ContainsAny(input, "blackmail", "photos"):
		return agent.Finding{
			"applicable_laws":          []string{"Section 354C IPC (Voyeurism)", "Section 66E IT Act (Privacy Violation)", "Section 384 IPC (Extortion)"},
			"complaint_steps":          []string{"Take screenshots of threats", "Do not delete messages", "File complaint at cybercrime.gov.in", "Visit nearest Cyber Cell"},
			"police_contact_structure": "National Cyber Crime Reporting Portal (1930) or local Cyber Cell Station.",
			"rights_of_the_victim":     []string{"Right to anonymity", "Right to free legal aid", "Right to zero FIR (file complaint anywhere)"},
		}

	case agent.ContainsAny(input, "stalking"):
		return agent.Finding{
			"applicable_laws":          []string{"Section 354D IPC (Stalking)"},
			"complaint_steps":          []string{"Document all contact attempts", "Block user", "File FIR at local station"},
			"police_contact_structure": "Local Police Station (Women's Help Desk).",
			"rights_of_the_victim":     []string{"Right to protection order", "Right to privacy"},
		}

	case agent.ContainsAny(input, "rape", "sexual assault", "forced"):
		return agent.Finding{
			"applicable_laws":          []string{"Section 375/376 IPC (Rape)", "Section 354 IPC (Assault on woman with intent to outrage modesty)"},
			"complaint_steps":          []string{"Go to a safe place immediately", "Call 100 or 1091", "Do not wash evidence (clothes/body)", "Go to hospital for medical exam"},
			"police_contact_structure": "Nearest Police Station (SHOs are mandated to register FIR).",
			"rights_of_the_victim":     []string{"Right to free medical aid", "Right to statement in private", "Right to free legal counsel"},
		}

	case agent.ContainsAny(input, "domestic", "husband", "beat", "dowry"):
		return agent.Finding{
			"applicable_laws":          []string{"Protection of Women from Domestic Violence Act, 2005", "Section 498A IPC (Cruelty by husband/relatives)"},
			"complaint_steps":          []string{"Call 181 (Domestic Abuse Helpline)", "Contact a Protection Officer", "File DIR (Domestic Incident Report)"},
			"police_contact_structure": "Women's Cell or Local Magistrate.",
			"rights_of_the_victim":     []string{"Right to residence", "Right to protection order", "Right to monetary relief"},
		}
	}

	// Generic India fallback
	return agent.Finding{
		"applicable_laws":          []string{"Indian Penal Code (IPC) General Provisions", "Information Technology Act, 2000"},
		"complaint_steps":          []string{"Dial 100 (Police) or 1091 (Women Helpline)", "Visit nearest Police Station", "File online at cybercrime.gov.in"},
		"police_contact_structure": "Local Police Station or Women's Cell.",
		"rights_of_the_victim":     []string{"Right to Zero FIR", "Right to be attended by a female officer"},
	}
}

// ErrorFinding returns the fixed error-shaped record for this agent
func (a *Agent) ErrorFinding(err error) agent.Finding {
	return agent.Finding{
		"applicable_laws":          []string{"Error"},
		"complaint_steps":          []string{},
		"police_contact_structure": "Error",
		"rights_of_the_victim":     []string{fmt.Sprintf("System error: %s", err.Error())},
	}
}
