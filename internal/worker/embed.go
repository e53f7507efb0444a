package worker

import (
	"context"

	"github.com/veridex/veridex/internal/embed"
)

// EmbedJob embeds one batch of chunk texts. Batch is the index of the batch
// within the build, so results can be reassembled regardless of completion
// order.
type EmbedJob struct {
	Batch    int
	Texts    []string
	Embedder embed.Embedder
	Limiter  *Limiter
}

// Execute waits for rate-limit clearance, then embeds the batch.
func (j *EmbedJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &EmbedResult{Batch: j.Batch, Error: err}
		}
	}

	vectors, err := j.Embedder.EmbedBatch(ctx, j.Texts)
	return &EmbedResult{Batch: j.Batch, Vectors: vectors, Error: err}
}

// EmbedResult carries the vectors for one batch, keyed by batch index.
type EmbedResult struct {
	Batch   int
	Vectors [][]float32
	Error   error
}

// Err returns the job error, if any.
func (r *EmbedResult) Err() error { return r.Error }
