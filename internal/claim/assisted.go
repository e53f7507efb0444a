package claim

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

// AssistedNormalizer refines multi-clause or ambiguous input into one
// checkable statement using the reasoning capability. The heuristic runs
// first; the model is only consulted when the input is not already a single
// factual sentence, and its rewrite is rejected if it introduces numbers
// absent from the input.
type AssistedNormalizer struct {
	heuristic *HeuristicNormalizer
	reasoner  llm.Reasoner
	log       zerolog.Logger
}

// NewAssistedNormalizer creates the model-assisted strategy.
func NewAssistedNormalizer(reasoner llm.Reasoner, log zerolog.Logger) *AssistedNormalizer {
	return &AssistedNormalizer{
		heuristic: NewHeuristicNormalizer(),
		reasoner:  reasoner,
		log:       log,
	}
}

// Normalize extracts a claim, rewriting complex input through the model
// when needed. Model failures fall back to the heuristic result; the
// normalizer never fails because the refinement did.
func (n *AssistedNormalizer) Normalize(ctx context.Context, raw string) (model.Claim, error) {
	trimmed := strings.TrimSpace(raw)
	sentences := splitSentences(trimmed)

	// A single factual sentence is used unchanged; rewriting it could only
	// lose information.
	if len(sentences) == 1 && n.heuristic.isFactual(sentences[0]) {
		return model.Claim{
			Text:     sentences[0],
			Strategy: "assisted",
			Entities: ExtractEntities(sentences[0]),
		}, nil
	}

	base, baseErr := n.heuristic.Normalize(ctx, raw)

	rewritten, err := n.reasoner.Complete(ctx, llm.Request{
		System: llm.NormalizeSystem,
		Prompt: llm.BuildNormalizePrompt(trimmed),
	})
	if err != nil {
		if baseErr != nil {
			return model.Claim{}, baseErr
		}
		n.log.Warn().Err(err).Msg("claim refinement failed, using heuristic result")
		return base, nil
	}

	rewritten = strings.TrimSpace(strings.Trim(strings.TrimSpace(rewritten), `"`))
	if rewritten == "" || !introducesNoNumbers(trimmed, rewritten) {
		if baseErr != nil {
			return model.Claim{}, &model.ClaimExtractionError{
				Input:  raw,
				Reason: "model rewrite rejected and no factual sentence found heuristically",
			}
		}
		n.log.Warn().Msg("model rewrite introduced numbers absent from input, using heuristic result")
		return base, nil
	}

	return model.Claim{
		Text:     rewritten,
		Strategy: "assisted",
		Entities: ExtractEntities(rewritten),
	}, nil
}

var numberPattern = regexp.MustCompile(`\d[\d,.]*`)

// introducesNoNumbers verifies every numeric value in the rewrite already
// appears in the input. Numbers are the easiest hallucination to detect
// mechanically, and the most damaging for fact-checking.
func introducesNoNumbers(input, rewrite string) bool {
	have := make(map[string]bool)
	for _, num := range numberPattern.FindAllString(input, -1) {
		have[strings.Trim(num, ",.")] = true
	}
	for _, num := range numberPattern.FindAllString(rewrite, -1) {
		if !have[strings.Trim(num, ",.")] {
			return false
		}
	}
	return true
}
