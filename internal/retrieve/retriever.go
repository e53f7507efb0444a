// Package retrieve performs top-K evidence retrieval with a minimum
// relevance cutoff.
package retrieve

import (
	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/index"
	"github.com/veridex/veridex/internal/model"
)

// Retriever queries a built index for the chunks most similar to a claim
// vector. The index is immutable post-build, so retrieval is read-only and
// safe under concurrent requests.
type Retriever struct {
	index *index.Index
	log   zerolog.Logger
}

// New creates a retriever over ix.
func New(ix *index.Index, log zerolog.Logger) *Retriever {
	return &Retriever{index: ix, log: log}
}

// Retrieve returns up to k chunks with similarity >= minSimilarity, sorted
// descending by score with deterministic tie-breaks. An empty result is a
// valid outcome, not an error: it signals that no relevant evidence exists
// and is the designed trigger for an UNVERIFIABLE verdict.
func (r *Retriever) Retrieve(vector []float32, k int, minSimilarity float64) ([]model.ScoredChunk, error) {
	candidates, err := r.index.Query(vector, k)
	if err != nil {
		return nil, err
	}

	results := make([]model.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity >= minSimilarity {
			results = append(results, c)
		}
	}

	if len(results) == 0 && len(candidates) > 0 {
		r.log.Debug().
			Float64("best_similarity", candidates[0].Similarity).
			Float64("min_similarity", minSimilarity).
			Msg("all candidates below relevance cutoff")
	}

	return results, nil
}
