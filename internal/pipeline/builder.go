package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/chunk"
	"github.com/veridex/veridex/internal/embed"
	"github.com/veridex/veridex/internal/index"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/worker"
)

// Builder turns a document corpus into a persisted similarity index:
// chunk, embed in parallel batches, build, save. Chunk embedding has no
// cross-chunk dependency, so batches run across workers; results are keyed
// by batch index and reassembled in order, making completion order
// irrelevant.
type Builder struct {
	chunker   *chunk.Chunker
	embedder  embed.Embedder
	batchSize int
	workers   int
	limiter   *worker.Limiter
	log       zerolog.Logger
}

// NewBuilder creates an index builder.
func NewBuilder(chunker *chunk.Chunker, embedder embed.Embedder, cfg *model.Config, log zerolog.Logger) *Builder {
	return &Builder{
		chunker:   chunker,
		embedder:  embedder,
		batchSize: cfg.Embedding.BatchSize,
		workers:   cfg.Concurrency.EmbedWorkers,
		limiter:   worker.NewLimiter(cfg.Embedding.RatePerSecond, cfg.Embedding.RateBurst),
		log:       log,
	}
}

// Build chunks and embeds the documents and constructs the index in one
// shot. The index is rebuilt from scratch on corpus change; there is no
// incremental update path.
func (b *Builder) Build(ctx context.Context, docs []model.Document) (*index.Index, error) {
	if len(docs) == 0 {
		return nil, &model.IndexError{Reason: "empty corpus"}
	}

	var chunks []model.Chunk
	metaByDoc := make(map[string]model.DocumentMeta, len(docs))
	for _, doc := range docs {
		metaByDoc[doc.ID] = doc.Meta()
		chunks = append(chunks, b.chunker.Chunk(doc)...)
	}
	b.log.Info().Int("documents", len(docs)).Int("chunks", len(chunks)).Msg("corpus chunked")

	vectors, err := b.embedAll(ctx, chunks)
	if err != nil {
		return nil, err
	}

	entries := make([]index.Entry, len(chunks))
	for i, c := range chunks {
		entries[i] = index.Entry{
			Vector: vectors[i],
			Chunk:  c,
			Meta:   metaByDoc[c.DocumentID],
		}
	}

	ix, err := index.Build(b.embedder.Model(), entries)
	if err != nil {
		return nil, err
	}
	b.log.Info().
		Int("entries", ix.Len()).
		Int("dimension", ix.Dimension()).
		Str("model", ix.Model()).
		Msg("index built")
	return ix, nil
}

// embedAll embeds chunk texts in parallel batches and reassembles the
// vectors in chunk order.
func (b *Builder) embedAll(ctx context.Context, chunks []model.Chunk) ([][]float32, error) {
	batchSize := b.batchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	pool := worker.NewPool(ctx, b.workers)
	pool.Start()

	batches := 0
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}
		pool.Submit(&worker.EmbedJob{
			Batch:    batches,
			Texts:    texts,
			Embedder: b.embedder,
			Limiter:  b.limiter,
		})
		batches++
	}

	results := pool.Wait()
	embedResults := make([]*worker.EmbedResult, 0, len(results))
	for _, r := range results {
		er := r.(*worker.EmbedResult)
		if er.Error != nil {
			return nil, fmt.Errorf("embed batch %d: %w", er.Batch, er.Error)
		}
		embedResults = append(embedResults, er)
	}
	sort.Slice(embedResults, func(i, j int) bool {
		return embedResults[i].Batch < embedResults[j].Batch
	})

	vectors := make([][]float32, 0, len(chunks))
	for _, er := range embedResults {
		vectors = append(vectors, er.Vectors...)
	}
	if len(vectors) != len(chunks) {
		return nil, &model.IndexError{
			Reason: fmt.Sprintf("embedded %d vectors for %d chunks", len(vectors), len(chunks)),
		}
	}
	return vectors, nil
}
