package llm

import (
	"fmt"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// VerdictSystem sets the assistant role for verdict synthesis.
const VerdictSystem = "You are a fact-checker for official government press releases. " +
	"You judge claims strictly against the supplied documents and respond only with JSON."

// StrictRetryInstruction is appended to the prompt on the single retry after
// a malformed response.
const StrictRetryInstruction = "\n\nYour previous response was not valid JSON. " +
	"Respond with ONLY a single JSON object matching the schema above. " +
	"No prose, no markdown fences, no explanation outside the JSON."

// BuildVerdictPrompt renders the claim and each retrieved chunk with its
// similarity score into the structured fact-checking prompt.
func BuildVerdictPrompt(claim model.Claim, evidence []model.ScoredChunk) string {
	var b strings.Builder

	b.WriteString("# FACT-CHECKING TASK\n\n")
	b.WriteString("## CLAIM TO VERIFY:\n")
	fmt.Fprintf(&b, "%q\n\n", claim.Text)

	b.WriteString("## RELEVANT PRESS RELEASES:\n\n")
	for i, ev := range evidence {
		fmt.Fprintf(&b, "**Document %d** (Similarity: %.3f)\n", i+1, ev.Similarity)
		fmt.Fprintf(&b, "**Source**: %s\n", source(ev.Meta))
		fmt.Fprintf(&b, "**Content**: %s\n\n", ev.Chunk.Text)
	}

	b.WriteString(`## INSTRUCTIONS:

Judge whether the claim is supported by the documents. Focus on semantic
meaning, not exact wording: press releases use formal language while claims
use everyday terms. Matching entities (ministries, locations, schemes,
amounts) and matching core actions count as support; a direct contradiction
counts against; no relevant evidence means the claim cannot be verified.

Return ONLY JSON:

{
    "label": "TRUE|FALSE|UNVERIFIABLE",
    "confidence": 0.0,
    "reasoning": "Which entities and actions match or conflict, and why.",
    "entities": ["named entities found in the claim"]
}

"confidence" must be a number between 0 and 1.`)

	return b.String()
}

// NormalizeSystem sets the assistant role for claim normalization.
const NormalizeSystem = "You rewrite user input into a single checkable factual statement. " +
	"You never add facts, entities or numbers that are not in the input."

// BuildNormalizePrompt asks the reasoning capability to reduce raw input to
// one declarative factual sentence, preserving entities and numbers
// verbatim.
func BuildNormalizePrompt(raw string) string {
	return fmt.Sprintf(`Rewrite the following input as exactly one declarative factual sentence
that could be checked against official press releases. Preserve every named
entity, date and numeric value verbatim. Do not introduce any fact that is
absent from the input. Reply with only the sentence, no quotes.

Input:
%s`, raw)
}

func source(meta model.DocumentMeta) string {
	switch {
	case meta.IssuedBy != "" && meta.Title != "":
		return meta.IssuedBy + " - " + meta.Title
	case meta.Title != "":
		return meta.Title
	case meta.IssuedBy != "":
		return meta.IssuedBy
	default:
		return meta.ID
	}
}
