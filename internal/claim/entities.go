package claim

import (
	"regexp"
	"strings"
)

// Entity detection is heuristic: capitalized spans, years and monetary
// amounts. It feeds the verdict's entity list and cross-checks what the
// reasoning capability reports.

var (
	// Runs of capitalized words, allowing connectives press-release names
	// use ("Ministry of Rural Development", "Nilgiri Mountain Railways").
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s+(?:of|for|and|the)\s+[A-Z][a-zA-Z]+|\s+[A-Z][a-zA-Z]+)*\b`)

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// Indian-budget amounts: "Rs. 70.90 lakh", "Rs 500 crore".
	amountPattern = regexp.MustCompile(`\bRs\.?\s?\d[\d,.]*\s?(?:lakh|crore)?\b`)
)

// Words that start sentences and look like proper nouns but carry no
// entity meaning on their own.
var entityStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true,
	"It": true, "This": true, "That": true, "According": true,
}

// ExtractEntities returns the named entities, years and amounts detected in
// text, deduplicated in order of first appearance.
func ExtractEntities(text string) []string {
	seen := make(map[string]bool)
	var entities []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || entityStopwords[s] || seen[s] {
			return
		}
		seen[s] = true
		entities = append(entities, s)
	}

	for _, m := range amountPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range properNounPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range yearPattern.FindAllString(text, -1) {
		add(m)
	}

	return entities
}
