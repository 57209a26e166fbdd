package tools

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lawbook.yml
var lawbookYAML []byte

// Law is a single entry in the law book
type Law struct {
	Country string `yaml:"country" json:"country"`
	Section string `yaml:"section" json:"section"`
	Act     string `yaml:"act" json:"act"`
	Title   string `yaml:"title" json:"title"`
	Desc    string `yaml:"desc" json:"desc"`
}

// LawBook is the internal legal knowledge base
type LawBook struct {
	laws []Law
}

// NewLawBook loads the embedded law book
func NewLawBook() (*LawBook, error) {
	var doc struct {
		Laws []Law `yaml:"laws"`
	}
	if err := yaml.Unmarshal(lawbookYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse law book: %w", err)
	}

	return &LawBook{laws: doc.Laws}, nil
}

// Search scans the law book for entries whose section, title, or
// description contains the query, optionally filtered by country.
// At most three formatted results come back; an empty string means no
// match.
func (lb *LawBook) Search(query, countryFilter string) string {
	query = strings.ToLower(query)

	var results []string
	for _, law := range lb.laws {
		if countryFilter != "" && !strings.Contains(strings.ToLower(law.Country), strings.ToLower(countryFilter)) {
			continue
		}

		if strings.Contains(strings.ToLower(law.Section), query) ||
			strings.Contains(strings.ToLower(law.Title), query) ||
			strings.Contains(strings.ToLower(law.Desc), query) {
			results = append(results, fmt.Sprintf("[%s] %s Section %s - %s: %s", law.Country, law.Act, law.Section, law.Title, law.Desc))
		}

		if len(results) == 3 {
			break
		}
	}

	return strings.Join(results, "\n")
}

// LegalLookupTool searches the internal law book, falling back to the
// simulated web search when nothing matches
type LegalLookupTool struct {
	book *LawBook
	web  *WebSearchTool
}

// NewLegalLookupTool creates the legal lookup tool over the embedded law
// book
func NewLegalLookupTool() (*LegalLookupTool, error) {
	book, err := NewLawBook()
	if err != nil {
		return nil, err
	}

	return &LegalLookupTool{
		book: book,
		web:  NewWebSearchTool(),
	}, nil
}

// Name returns the tool name
func (t *LegalLookupTool) Name() string { return "LegalDatabase" }

// Description returns the tool description
func (t *LegalLookupTool) Description() string {
	return "Searches the internal Law Book for legal sections."
}

// Execute searches the law book. Params: "query" (required), "country"
// (optional filter).
func (t *LegalLookupTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	country, _ := params["country"].(string)

	if result := t.book.Search(query, country); result != "" {
		return map[string]any{
			"source": "Internal Database",
			"result": result,
		}, nil
	}

	// Internal DB missed; fall back to the simulated web search
	log.Printf("[TOOLS]: LegalDatabase missed for %q, falling back to web search", query)

	webQuery := fmt.Sprintf("legal section for %s in %s", query, countryOrGeneral(country))
	webResult, err := t.web.Execute(ctx, map[string]any{"query": webQuery})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"source": "Live Web Search",
		"result": webResult["result"],
	}, nil
}

func countryOrGeneral(country string) string {
	if country == "" {
		return "general"
	}
	return country
}
