package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/ethanbaker/guardian/internal/agents/evaluation"
	"github.com/ethanbaker/guardian/internal/agents/evidence"
	"github.com/ethanbaker/guardian/internal/agents/language"
	"github.com/ethanbaker/guardian/internal/agents/legal"
	"github.com/ethanbaker/guardian/internal/agents/manipulation"
	"github.com/ethanbaker/guardian/internal/agents/panicresponse"
	"github.com/ethanbaker/guardian/internal/agents/realitycheck"
	"github.com/ethanbaker/guardian/internal/agents/redflag"
	"github.com/ethanbaker/guardian/internal/agents/threat"
	"github.com/ethanbaker/guardian/internal/stores/session"
	"github.com/ethanbaker/guardian/internal/stores/threatlog"
	"github.com/ethanbaker/guardian/internal/tools"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/eventbus"
	"github.com/ethanbaker/guardian/pkg/metrics"
)

// Agent IDs used by the pipeline
const (
	languageAgentID     = "language-agent"
	panicAgentID        = "panic-agent"
	threatAgentID       = "threat-agent"
	manipulationAgentID = "manipulation-agent"
	redflagAgentID      = "redflag-agent"
	evidenceAgentID     = "evidence-agent"
	legalAgentID        = "legal-agent"
	realityAgentID      = "realitycheck-agent"
)

// sectionPattern extracts a statute section number out of a law citation
var sectionPattern = regexp.MustCompile(`(?i)(?:Section|Sec)?\s*(\d+[A-Z]?)`)

// Options configures a Controller. All fields are optional: a zero
// Options gives a controller with no persistence or observability
type Options struct {
	Bus      *eventbus.Bus
	Metrics  *metrics.Collector
	Sessions session.Store
	Threats  threatlog.Store
}

// Controller owns the agents and tools and drives the full analysis
// pipeline over an input
type Controller struct {
	registry  *Registry
	evaluator *evaluation.Agent
	tools     *tools.Registry

	bus       *eventbus.Bus
	collector *metrics.Collector
	sessions  session.Store
	threats   threatlog.Store
}

// NewController creates a controller with all agents and tools registered
func NewController(opts Options) (*Controller, error) {
	registry := NewRegistry(opts.Metrics)
	registry.Register(language.NewAgent())
	registry.Register(panicresponse.NewAgent())
	registry.Register(threat.NewAgent())
	registry.Register(manipulation.NewAgent())
	registry.Register(redflag.NewAgent())
	registry.Register(evidence.NewAgent())
	registry.Register(legal.NewAgent())
	registry.Register(realitycheck.NewAgent())

	legalTool, err := tools.NewLegalLookupTool()
	if err != nil {
		return nil, fmt.Errorf("failed to create legal lookup tool: %w", err)
	}

	toolRegistry := tools.NewRegistry()
	toolRegistry.Register(tools.NewWebSearchTool())
	toolRegistry.Register(legalTool)
	toolRegistry.Register(tools.NewGoogleSearchTool())
	toolRegistry.Register(tools.NewCodeExecutorTool())
	toolRegistry.Register(tools.NewDeepfakeDetectionTool())
	toolRegistry.Register(tools.NewAudioForensicsTool())
	toolRegistry.Register(tools.NewImageSafetyTool())
	toolRegistry.Register(tools.NewMCPTool("filesystem", "http://localhost:8000"))
	toolRegistry.Register(tools.NewOpenAPITool("getWeather", "GET", "/v1/weather"))

	c := &Controller{
		registry:  registry,
		evaluator: evaluation.NewAgent(),
		tools:     toolRegistry,
		bus:       opts.Bus,
		collector: opts.Metrics,
		sessions:  opts.Sessions,
		threats:   opts.Threats,
	}

	// Detected threats auto-trigger a fresh evidence pass
	if c.bus != nil {
		c.bus.Subscribe(eventbus.TopicThreatDetected, c.onThreatDetected)
	}

	return c, nil
}

// Registry returns the agent registry, for direct access and A2A routing
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Tools returns the tool registry
func (c *Controller) Tools() *tools.Registry {
	return c.tools
}

// onThreatDetected reacts to a published threat event by collecting
// evidence for it
func (c *Controller) onThreatDetected(event eventbus.Event) {
	log.Printf("[CONTROLLER]: reacting to %s event", event.Topic)

	text, _ := event.Payload["text"].(string)
	rc := agent.NewRunContext()

	evidenceAgent, err := c.registry.Get(evidenceAgentID)
	if err != nil {
		log.Printf("[CONTROLLER]: %v", err)
		return
	}
	c.registry.Run(context.Background(), evidenceAgent, text, rc)
}

// Pipeline runs the base analysis flow: language, panic check, the three
// core analysis agents in parallel, then evidence, legal, and reality
// check. Returns one finding per stage
func (c *Controller) Pipeline(ctx context.Context, input string, rc *agent.RunContext) (map[string]agent.Finding, error) {
	rc.Log("controller", "Starting Pipeline", agent.Finding{"input": agent.Preview(input)})
	results := map[string]agent.Finding{}

	// Step 1: language processing; translated text feeds everything after
	languageAgent, err := c.registry.Get(languageAgentID)
	if err != nil {
		return nil, err
	}
	results["language"] = c.registry.Run(ctx, languageAgent, input, rc)

	analysisText := input
	if translation, ok := results["language"]["output_translation"].(string); ok && translation != "" {
		analysisText = translation
	}

	// Step 2: panic check takes priority over everything else
	panicAgent, err := c.registry.Get(panicAgentID)
	if err != nil {
		return nil, err
	}
	results["panic"] = c.registry.Run(ctx, panicAgent, analysisText, rc)

	emergency := panicresponse.IsEmergency(results["panic"])
	if emergency {
		rc.Log("controller", "EMERGENCY DETECTED - Prioritizing Safety", nil)

		if c.bus != nil {
			c.bus.Publish(eventbus.TopicEmergency, map[string]any{
				"text":   analysisText,
				"status": results["panic"],
			})
		}
	}

	// Step 3: core analysis agents run concurrently
	core, err := c.registry.RunParallel(ctx, analysisText, rc, threatAgentID, manipulationAgentID, redflagAgentID)
	if err != nil {
		return nil, err
	}
	results["threat"] = core[threatAgentID]
	results["manipulation"] = core[manipulationAgentID]
	results["redflag"] = core[redflagAgentID]

	// Step 4: evidence collection over the merged analyses
	evidenceInput, err := json.Marshal(map[string]any{
		"text":                  analysisText,
		"threat_analysis":       results["threat"],
		"manipulation_analysis": results["manipulation"],
		"redflag_analysis":      results["redflag"],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal evidence input: %w", err)
	}

	evidenceAgent, err := c.registry.Get(evidenceAgentID)
	if err != nil {
		return nil, err
	}
	results["evidence"] = c.registry.Run(ctx, evidenceAgent, string(evidenceInput), rc)

	// Step 5: legal support over the evidence summary and original text
	summary, _ := results["evidence"]["summary_evidence_pack"].(string)
	crimeCategory, _ := results["evidence"]["crime_category"].(string)
	legalInput := fmt.Sprintf("%s | %s | %s", summary, crimeCategory, analysisText)

	legalAgent, err := c.registry.Get(legalAgentID)
	if err != nil {
		return nil, err
	}
	results["legal"] = c.registry.Run(ctx, legalAgent, legalInput, rc)

	// Step 6: reality check only runs outside of emergencies
	if emergency {
		results["reality"] = agent.Finding{"status": "Skipped due to emergency"}
	} else {
		realityAgent, err := c.registry.Get(realityAgentID)
		if err != nil {
			return nil, err
		}
		results["reality"] = c.registry.Run(ctx, realityAgent, analysisText, rc)
	}

	rc.Log("controller", "Pipeline Complete", nil)
	return results, nil
}

// PipelineV3 extends Pipeline with the legal knowledge base lookup and a
// deep forensic scan on high-severity threats
func (c *Controller) PipelineV3(ctx context.Context, input string, rc *agent.RunContext) (map[string]agent.Finding, error) {
	results, err := c.Pipeline(ctx, input, rc)
	if err != nil {
		return nil, err
	}

	// Look up the first suggested law in the knowledge base
	if laws := findingLaws(results["legal"]); len(laws) > 0 {
		lawSuggestion := laws[0]
		country := lawCountry(lawSuggestion, input)

		searchQuery := lawSuggestion
		if match := sectionPattern.FindStringSubmatch(lawSuggestion); match != nil {
			searchQuery = match[1]
		}

		lookup, err := c.executeTool(ctx, "LegalDatabase", map[string]any{"query": searchQuery, "country": country})
		if err != nil {
			log.Printf("[CONTROLLER]: legal lookup failed: %v", err)
		} else {
			results["legal"]["tool_lookup"] = lookup
			rc.Log("controller", fmt.Sprintf("Tool Used: LegalDatabase search for '%s' in %s", searchQuery, country), lookup)
		}
	}

	// High-severity threats trigger the deep forensic scan
	if findingSeverity(results["threat"]) >= 4 {
		rc.Log("controller", "High Threat Detected! Initiating Deep Forensic Scan.", nil)

		scan := tools.NewForensicScan(input)
		if err := runForensicScan(scan); err != nil {
			log.Printf("[CONTROLLER]: forensic scan failed: %v", err)
		} else {
			results["forensic_scan"] = agent.Finding{
				"status": string(scan.State()),
				"result": scan.Result(),
			}

			if c.bus != nil {
				c.bus.Publish(eventbus.TopicScanCompleted, map[string]any{
					"target": input,
					"result": scan.Result(),
				})
			}
		}
	}

	return results, nil
}

// PipelineUltimate extends PipelineV3 with memory recall, a simulated
// internet check, event publishing, and metrics
func (c *Controller) PipelineUltimate(ctx context.Context, input string, rc *agent.RunContext) (map[string]agent.Finding, error) {
	if c.collector != nil {
		trace := c.collector.StartTrace("MasterPipeline")
		defer c.collector.EndTrace(trace)
		c.collector.RecordRequest()
	}

	// Memory recall: look for similar past cases
	memoryStatus := "No similar past cases found."
	if c.sessions != nil {
		cases, err := c.sessions.FindSimilarCases(ctx, input)
		if err != nil {
			log.Printf("[CONTROLLER]: memory recall failed: %v", err)
		} else if len(cases) > 0 {
			rc.Log("controller", "MEMORY RECALL: Found similar past case.", agent.Finding{"past_content": agent.Preview(cases[0].Content)})
			memoryStatus = "Memory Recall: Similar pattern recognized from past incidents."
		}
	}

	// Simulated internet check against global scam databases
	internetStatus := "Checked global databases."
	webQuery := fmt.Sprintf("Is '%s' a known scam?", agent.Preview(input))
	if webResults, err := c.executeTool(ctx, "GoogleSearch", map[string]any{"query": webQuery}); err == nil {
		rc.Log("controller", "INTERNET CHECK: Verified against global databases.", webResults)
		internetStatus = "Internet Check: Verified against global scam databases."
	}

	results, err := c.PipelineV3(ctx, input, rc)
	if err != nil {
		if c.collector != nil {
			c.collector.RecordError()
		}
		return nil, err
	}

	results["system_context"] = agent.Finding{
		"memory":   memoryStatus,
		"internet": internetStatus,
	}

	// Publish high-severity threats for reactive subscribers
	severity := findingSeverity(results["threat"])
	if severity >= 4 {
		category, _ := results["threat"]["exact_threat_category"].(string)

		if c.bus != nil {
			c.bus.Publish(eventbus.TopicThreatDetected, map[string]any{
				"text":     input,
				"analysis": results["threat"],
			})
		}
		if c.collector != nil {
			c.collector.RecordThreat(category)
		}
		if c.threats != nil {
			if err := c.threats.LogThreat(ctx, rc.SessionID.String(), severityLabel(severity), category); err != nil {
				log.Printf("[CONTROLLER]: failed to log threat: %v", err)
			}
		}
	}

	return results, nil
}

// Analyze runs the full pipeline plus the evaluation pass. This is the
// entry point the API and commandline layers use
func (c *Controller) Analyze(ctx context.Context, input string, rc *agent.RunContext) (map[string]agent.Finding, error) {
	results, err := c.PipelineUltimate(ctx, input, rc)
	if err != nil {
		return nil, err
	}

	results["_evaluation"] = c.evaluator.Evaluate(results)
	return results, nil
}

// executeTool runs a registered tool and records its usage
func (c *Controller) executeTool(ctx context.Context, name string, params map[string]any) (map[string]any, error) {
	tool, err := c.tools.Get(name)
	if err != nil {
		return nil, err
	}

	result, err := tool.Execute(ctx, params)
	if err != nil {
		return nil, err
	}

	if c.collector != nil {
		c.collector.RecordToolUsage(name)
	}
	return result, nil
}

// runForensicScan drives a scan through its full lifecycle, including a
// pause/resume cycle after the first step
func runForensicScan(scan *tools.ForensicScan) error {
	if err := scan.Start(); err != nil {
		return err
	}
	if err := scan.Step(); err != nil {
		return err
	}
	if err := scan.Pause(); err != nil {
		return err
	}
	if err := scan.Resume(); err != nil {
		return err
	}

	for scan.State() == tools.ScanRunning {
		if err := scan.Step(); err != nil {
			return err
		}
	}
	return nil
}

// lawCountry guesses the country context of a law citation
func lawCountry(lawSuggestion string, input string) string {
	country := ""
	if strings.Contains(lawSuggestion, "IPC") || strings.Contains(strings.ToLower(input), "india") {
		country = "India"
	}
	if strings.Contains(lawSuggestion, "US") {
		country = "USA"
	}
	if strings.Contains(lawSuggestion, "UK") {
		country = "UK"
	}
	return country
}

// findingSeverity extracts an integer severity from a finding
func findingSeverity(finding agent.Finding) int {
	if finding == nil {
		return 0
	}

	switch v := finding["severity"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// findingLaws extracts the applicable laws list from a legal finding
func findingLaws(finding agent.Finding) []string {
	if finding == nil {
		return nil
	}

	switch v := finding["applicable_laws"].(type) {
	case []string:
		return v
	case []any:
		laws := make([]string, 0, len(v))
		for _, law := range v {
			if s, ok := law.(string); ok {
				laws = append(laws, s)
			}
		}
		return laws
	default:
		return nil
	}
}

// severityLabel maps a numeric severity onto the threat log's labels
func severityLabel(severity int) string {
	switch {
	case severity >= 5:
		return threatlog.SeverityCritical
	case severity == 4:
		return threatlog.SeverityHigh
	case severity >= 2:
		return threatlog.SeverityMedium
	default:
		return threatlog.SeverityLow
	}
}
