// Package index implements a flat similarity index over embedded chunks.
// Vectors are L2-normalized at build time, so cosine similarity reduces to
// an inner product at query time. The index is built once, is immutable
// afterwards, and is safe for concurrent queries without locking.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/veridex/veridex/internal/model"
)

// Entry is the unit stored in the index: a vector, the chunk it embeds and
// the metadata of the chunk's document.
type Entry struct {
	Vector []float32
	Chunk  model.Chunk
	Meta   model.DocumentMeta
}

// Index is a read-only similarity-searchable store of entries. All vectors
// share one dimensionality and one embedding-model identity.
type Index struct {
	modelID string
	dim     int
	entries []Entry // vectors normalized
}

// Build constructs an index from entries in one shot. It fails with an
// IndexError if entries have inconsistent vector dimensionality or if the
// model identity is missing. Incremental update is deliberately not
// supported; the corpus is rebuilt on change.
func Build(modelID string, entries []Entry) (*Index, error) {
	if modelID == "" {
		return nil, &model.IndexError{Reason: "embedding-model identity is required"}
	}
	if len(entries) == 0 {
		return nil, &model.IndexError{Reason: "no entries to index"}
	}

	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, &model.IndexError{Reason: "zero-dimension vector"}
	}

	stored := make([]Entry, len(entries))
	for i, e := range entries {
		if len(e.Vector) != dim {
			return nil, &model.IndexError{
				Reason: fmt.Sprintf("inconsistent dimensionality: entry %d has %d, expected %d", i, len(e.Vector), dim),
			}
		}
		stored[i] = Entry{
			Vector: normalize(e.Vector),
			Chunk:  e.Chunk,
			Meta:   e.Meta,
		}
	}

	return &Index{modelID: modelID, dim: dim, entries: stored}, nil
}

// Query returns the k entries most similar to the query vector by cosine
// similarity, sorted descending. Equal scores are broken by ascending chunk
// ordinal, then document ID, so results are fully deterministic. k <= 0
// fails with ErrInvalidArgument.
func (ix *Index) Query(vector []float32, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", model.ErrInvalidArgument, k)
	}
	if len(vector) != ix.dim {
		return nil, &model.IndexError{
			Reason: fmt.Sprintf("query dimension %d does not match index dimension %d", len(vector), ix.dim),
		}
	}

	q := normalize(vector)
	scored := make([]model.ScoredChunk, len(ix.entries))
	for i, e := range ix.entries {
		scored[i] = model.ScoredChunk{
			Chunk:      e.Chunk,
			Meta:       e.Meta,
			Similarity: dot(q, e.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Chunk.Ordinal != b.Chunk.Ordinal {
			return a.Chunk.Ordinal < b.Chunk.Ordinal
		}
		return a.Chunk.DocumentID < b.Chunk.DocumentID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Model returns the embedding-model identity the index was built with.
func (ix *Index) Model() string { return ix.modelID }

// Dimension returns the shared vector dimensionality.
func (ix *Index) Dimension() int { return ix.dim }

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.entries) }

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
