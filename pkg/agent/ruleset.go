package agent

import "strings"

// Rule couples a keyword list with the canned record returned when the
// keywords match
type Rule struct {
	Name     string
	Keywords []string
	Record   Finding
}

// Ruleset is an ordered collection of rules matched by keyword membership.
// Order matters: when two rules score the same, the first one registered
// wins.
type Ruleset struct {
	rules []Rule
}

// NewRuleset creates a ruleset from the given rules
func NewRuleset(rules ...Rule) *Ruleset {
	return &Ruleset{rules: rules}
}

// Add appends a rule to the ruleset
func (rs *Ruleset) Add(rule Rule) {
	rs.rules = append(rs.rules, rule)
}

// Match scores every rule against the lower-cased input by counting how many
// of its keywords appear as substrings. The highest-scoring rule wins; a
// score of zero means no match.
func (rs *Ruleset) Match(input string) (Rule, int) {
	query := strings.ToLower(input)

	var best Rule
	maxScore := 0
	for _, rule := range rs.rules {
		score := 0
		for _, word := range rule.Keywords {
			if strings.Contains(query, word) {
				score++
			}
		}

		if score > maxScore {
			maxScore = score
			best = rule
		}
	}

	return best, maxScore
}

// ContainsAny reports whether any of the words appear in the lower-cased
// input
func ContainsAny(input string, words ...string) bool {
	query := strings.ToLower(input)
	for _, word := range words {
		if strings.Contains(query, word) {
			return true
		}
	}
	return false
}
