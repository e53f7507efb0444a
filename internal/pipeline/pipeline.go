// Package pipeline orchestrates the retrieval-and-verdict flow: normalize,
// embed, retrieve, synthesize.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/claim"
	"github.com/veridex/veridex/internal/embed"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/retrieve"
	"github.com/veridex/veridex/internal/verdict"
)

// Pipeline is the fact-checking entry point. All dependencies are passed in
// explicitly; there is no ambient state, so tests can run it with fake
// embedders and reasoners. The index behind the retriever is immutable, so
// concurrent Check calls are safe.
type Pipeline struct {
	normalizer  claim.Normalizer
	embedder    embed.Embedder
	retriever   *retrieve.Retriever
	synthesizer *verdict.Synthesizer

	topK          int
	minSimilarity float64
	log           zerolog.Logger
}

// New wires the pipeline stages together.
func New(
	normalizer claim.Normalizer,
	embedder embed.Embedder,
	retriever *retrieve.Retriever,
	synthesizer *verdict.Synthesizer,
	retrieval model.RetrievalConfig,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		normalizer:    normalizer,
		embedder:      embedder,
		retriever:     retriever,
		synthesizer:   synthesizer,
		topK:          retrieval.TopK,
		minSimilarity: retrieval.MinSimilarity,
		log:           log,
	}
}

// Check verifies a raw claim against the corpus and returns a structured
// verdict. Every invocation gets a request ID carried on the verdict and on
// every log line and error for the request. Cancelling ctx abandons the
// in-flight upstream call; no partial state survives.
func (p *Pipeline) Check(ctx context.Context, rawClaim string) (model.Verdict, error) {
	requestID := uuid.NewString()
	log := p.log.With().Str("request_id", requestID).Logger()

	normalized, err := p.normalizer.Normalize(ctx, rawClaim)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("request %s: %w", requestID, err)
	}
	log.Debug().Str("claim", normalized.Text).Str("strategy", normalized.Strategy).Msg("claim normalized")

	vector, err := p.embedder.Embed(ctx, normalized.Text)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("request %s: %w", requestID, err)
	}

	evidence, err := p.retriever.Retrieve(vector, p.topK, p.minSimilarity)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("request %s: %w", requestID, err)
	}
	log.Debug().Int("evidence", len(evidence)).Msg("retrieval complete")

	result, err := p.synthesizer.Synthesize(ctx, normalized, evidence)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("request %s: %w", requestID, err)
	}

	result.RequestID = requestID
	log.Info().
		Str("label", string(result.Label)).
		Float64("confidence", result.Confidence).
		Msg("verdict")
	return result, nil
}
