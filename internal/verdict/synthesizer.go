// Package verdict reduces a claim and its retrieved evidence to a
// structured judgment via the reasoning capability.
package verdict

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

const noEvidenceReasoning = "No press release in the corpus is sufficiently " +
	"similar to the claim. Claims outside the indexed corpus resolve to " +
	"UNVERIFIABLE by design."

// Synthesizer combines a normalized claim and retrieved evidence into a
// Verdict.
type Synthesizer struct {
	reasoner llm.Reasoner
	log      zerolog.Logger
}

// New creates a synthesizer. A nil reasoner is allowed; every claim then
// resolves to UNVERIFIABLE with an explanatory reasoning.
func New(reasoner llm.Reasoner, log zerolog.Logger) *Synthesizer {
	return &Synthesizer{reasoner: reasoner, log: log}
}

// Synthesize produces a verdict for the claim given the retrieval result.
//
// With empty evidence it short-circuits to UNVERIFIABLE without invoking
// the reasoning capability: the outcome is deterministic and costs no call.
// A malformed model response triggers exactly one retry with a stricter
// instruction; a second malformed response is downgraded to an UNVERIFIABLE
// verdict carrying the failure explanation. The pipeline never crashes on a
// malformed model reply. Upstream failures (timeouts, transport or auth
// errors) are returned to the caller; there was no response to re-ask for.
func (s *Synthesizer) Synthesize(ctx context.Context, claim model.Claim, evidence []model.ScoredChunk) (model.Verdict, error) {
	if len(evidence) == 0 {
		return model.Unverifiable(claim, noEvidenceReasoning), nil
	}

	if s.reasoner == nil {
		return model.Unverifiable(claim,
			"No reasoning capability is configured; evidence was found but cannot be judged."), nil
	}

	prompt := llm.BuildVerdictPrompt(claim, evidence)

	parsed, err := s.attempt(ctx, prompt)
	if err != nil {
		// Only malformed output is retried; timeouts and every other
		// upstream or transport failure are fatal to the request.
		if !errors.Is(err, errMalformedResponse) {
			return model.Verdict{}, err
		}

		s.log.Warn().Err(err).Msg("malformed verdict response, retrying with strict instruction")
		parsed, err = s.attempt(ctx, prompt+llm.StrictRetryInstruction)
		if err != nil {
			if !errors.Is(err, errMalformedResponse) {
				return model.Verdict{}, err
			}
			formatErr := &model.VerdictFormatError{Attempts: 2, Err: err}
			s.log.Error().Err(formatErr).Msg("verdict synthesis failed, downgrading to UNVERIFIABLE")
			v := model.Unverifiable(claim,
				"The reasoning capability returned a malformed response twice; "+
					"the claim could not be judged: "+err.Error())
			v.Evidence = evidence
			return v, nil
		}
	}

	return s.build(claim, evidence, parsed), nil
}

// errMalformedResponse marks a completion that arrived but failed the
// strict parse. It separates retryable format defects from upstream
// failures, which never produced a response to re-ask for.
var errMalformedResponse = errors.New("malformed verdict response")

// attempt performs one completion call and one strict parse.
func (s *Synthesizer) attempt(ctx context.Context, prompt string) (*parsedVerdict, error) {
	raw, err := s.reasoner.Complete(ctx, llm.Request{
		System: llm.VerdictSystem,
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := parseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedResponse, err)
	}
	return parsed, nil
}

func (s *Synthesizer) build(claim model.Claim, evidence []model.ScoredChunk, parsed *parsedVerdict) model.Verdict {
	confidence := parsed.Confidence
	if confidence < 0 || confidence > 1 {
		// Out-of-range confidence is a data-quality signal, not an error.
		s.log.Warn().
			Float64("confidence", confidence).
			Msg("confidence out of [0,1], clamping")
		confidence = clamp01(confidence)
	}

	entities := claim.Entities
	if len(parsed.Entities) > 0 {
		entities = mergeEntities(claim.Entities, parsed.Entities)
	}

	return model.Verdict{
		Claim:      claim.Text,
		Label:      parsed.Label,
		Confidence: confidence,
		Reasoning:  parsed.Reasoning,
		Evidence:   evidence,
		Entities:   entities,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mergeEntities(detected, reported []string) []string {
	seen := make(map[string]bool, len(detected))
	merged := make([]string, 0, len(detected)+len(reported))
	for _, e := range detected {
		if !seen[e] {
			seen[e] = true
			merged = append(merged, e)
		}
	}
	for _, e := range reported {
		if e != "" && !seen[e] {
			seen[e] = true
			merged = append(merged, e)
		}
	}
	return merged
}
