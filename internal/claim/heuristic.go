package claim

import (
	"context"
	"regexp"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// HeuristicNormalizer extracts a checkable statement with lightweight
// sentence splitting and pattern matching, no model calls.
type HeuristicNormalizer struct {
	factual    []*regexp.Regexp
	nonFactual []*regexp.Regexp
}

// Patterns that mark a sentence as a verifiable factual statement, tuned to
// government press-release language.
var factualPatterns = []string{
	`(?i)\b(announced|declared|stated|confirmed|revealed|launched|introduced|released|sanctioned|approved)\b`,
	`(?i)\b(will|shall|going to)\b`,
	`(?i)\b(government|ministry|minister|official|department|railways?)\b`,
	`\b\d{4}\b`,
	`(?i)\b(scheme|policy|program|programme|initiative|project|fund)\b`,
	`(?i)\b(is|are|was|were|has|have|fell|rose|increased|decreased)\b`,
}

// Patterns that disqualify a sentence: questions, opinions, commands.
var nonFactualPatterns = []string{
	`\?\s*$`,
	`(?i)^\s*(what|who|when|where|why|how|is|are|was|were|did|does|do|can|could|should|would)\b.*\?`,
	`(?i)\b(i think|i believe|in my opinion|probably|maybe|perhaps)\b`,
	`(?i)^\s*(please|tell me|show me|give me|find|list|explain)\b`,
	`!\s*$`,
}

// NewHeuristicNormalizer compiles the pattern sets.
func NewHeuristicNormalizer() *HeuristicNormalizer {
	n := &HeuristicNormalizer{}
	for _, p := range factualPatterns {
		n.factual = append(n.factual, regexp.MustCompile(p))
	}
	for _, p := range nonFactualPatterns {
		n.nonFactual = append(n.nonFactual, regexp.MustCompile(p))
	}
	return n
}

// Normalize isolates the first declarative factual sentence in the input.
// Input that already reduces to exactly one such sentence is used
// unchanged.
func (n *HeuristicNormalizer) Normalize(_ context.Context, raw string) (model.Claim, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.Claim{}, &model.ClaimExtractionError{Input: raw, Reason: "empty input"}
	}

	for _, sentence := range splitSentences(trimmed) {
		if n.isFactual(sentence) {
			return model.Claim{
				Text:     sentence,
				Strategy: "heuristic",
				Entities: ExtractEntities(sentence),
			}, nil
		}
	}

	return model.Claim{}, &model.ClaimExtractionError{
		Input:  raw,
		Reason: "no declarative factual sentence found (questions and commands cannot be checked)",
	}
}

func (n *HeuristicNormalizer) isFactual(sentence string) bool {
	if len(strings.Fields(sentence)) < 4 {
		return false
	}
	for _, p := range n.nonFactual {
		if p.MatchString(sentence) {
			return false
		}
	}
	for _, p := range n.factual {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

// splitSentences splits text on sentence terminators followed by
// whitespace. Kept deliberately simple; the factual filter does the real
// work.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder
	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// "Rs." marks an amount, not a sentence end.
			if r == '.' && endsAbbreviation(text, i) {
				continue
			}
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// endsAbbreviation reports whether the period at byte i terminates an
// abbreviation rather than a sentence.
func endsAbbreviation(text string, i int) bool {
	start := i
	for start > 0 && isLetterByte(text[start-1]) {
		start--
	}
	return text[start:i] == "Rs"
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
