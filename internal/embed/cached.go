package embed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/cache"
)

// CachedEmbedder wraps an Embedder with a vector cache. Cache keys include
// the model identity, so swapping models never serves stale vectors.
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
	log   zerolog.Logger
}

// NewCachedEmbedder wraps inner with c.
func NewCachedEmbedder(inner Embedder, c cache.Cache, log zerolog.Logger) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: c, log: log}
}

// Model returns the wrapped embedder's model identity.
func (e *CachedEmbedder) Model() string {
	return e.inner.Model()
}

// Embed returns a cached vector when available.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(e.inner.Model(), text)
	if vec, found := e.cache.Get(key); found {
		return vec, nil
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(key, vec, 0); err != nil {
		e.log.Warn().Err(err).Msg("embedding cache write failed")
	}
	return vec, nil
}

// EmbedBatch serves what it can from the cache and embeds only the misses,
// preserving input order.
func (e *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missPos []int

	for i, text := range texts {
		if vec, found := e.cache.Get(cache.Key(e.inner.Model(), text)); found {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missPos = append(missPos, i)
	}

	if len(missTexts) > 0 {
		fresh, err := e.inner.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, vec := range fresh {
			i := missPos[j]
			vectors[i] = vec
			if err := e.cache.Set(cache.Key(e.inner.Model(), texts[i]), vec, 0); err != nil {
				e.log.Warn().Err(err).Msg("embedding cache write failed")
			}
		}
	}

	return vectors, nil
}
