// Package web serves the minimal HTML report page.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sort"

	"github.com/ethanbaker/guardian/internal/api/modules/guardian"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML embed.FS

var page = template.Must(template.ParseFS(indexHTML, "index.html"))

// stageOrder fixes how the pipeline stages appear on the page
var stageOrder = []string{
	"panic", "threat", "manipulation", "redflag", "evidence",
	"legal", "reality", "language", "forensic_scan", "system_context", "_evaluation",
}

// reportBlock is one rendered stage of the report
type reportBlock struct {
	Stage string
	Class string
	Body  string
}

// pageData feeds the index template
type pageData struct {
	Input  string
	Blocks []reportBlock
}

// RegisterRoutes registers the report page at the engine root
func RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", getIndex)
	engine.POST("/", postIndex)
}

// getIndex renders the empty analysis form
func getIndex(c *gin.Context) {
	render(c, pageData{})
}

// postIndex runs the pipeline over the submitted text and renders the
// report
func postIndex(c *gin.Context) {
	input := c.PostForm("text")
	if input == "" {
		render(c, pageData{})
		return
	}

	report, err := guardian.GetService().QuickAnalyze(c.Request.Context(), input)
	if err != nil {
		c.String(http.StatusInternalServerError, "analysis failed: %v", err)
		return
	}

	render(c, pageData{
		Input:  input,
		Blocks: toBlocks(report),
	})
}

func render(c *gin.Context, data pageData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(c.Writer, data); err != nil {
		c.String(http.StatusInternalServerError, "failed to render page: %v", err)
	}
}

// toBlocks flattens a report into ordered, severity-colored blocks
func toBlocks(report map[string]agent.Finding) []reportBlock {
	seen := map[string]bool{}
	var blocks []reportBlock

	appendBlock := func(stage string) {
		finding, ok := report[stage]
		if !ok || finding == nil {
			return
		}
		seen[stage] = true

		body, err := json.MarshalIndent(finding, "", "  ")
		if err != nil {
			body = []byte("{}")
		}

		blocks = append(blocks, reportBlock{
			Stage: stage,
			Class: severityClass(finding),
			Body:  string(body),
		})
	}

	for _, stage := range stageOrder {
		appendBlock(stage)
	}

	// Any stages not covered by the fixed ordering go last
	var rest []string
	for stage := range report {
		if !seen[stage] {
			rest = append(rest, stage)
		}
	}
	sort.Strings(rest)
	for _, stage := range rest {
		appendBlock(stage)
	}

	return blocks
}

// severityClass colors a block by its severity, when it reports one
func severityClass(finding agent.Finding) string {
	severity := 0
	switch v := finding["severity"].(type) {
	case int:
		severity = v
	case float64:
		severity = int(v)
	}

	switch {
	case severity >= 4:
		return "severity-high"
	case severity >= 2:
		return "severity-medium"
	default:
		return ""
	}
}
