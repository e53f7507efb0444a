// Package embed maps text to fixed-dimension dense vectors under a single
// consistent model identity.
package embed

import (
	"context"

	"github.com/veridex/veridex/internal/model"
)

// Embedder generates vector embeddings from text. The same instance (and
// model identity) must be used for corpus chunks and runtime claims;
// mismatched models are rejected at index construction, not at query time.
type Embedder interface {
	// Embed returns the vector for a single text. Empty text and text
	// exceeding the model's input limit fail with an EmbeddingError.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, preserving input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding-model identity recorded alongside the index.
	Model() string
}

func validateInput(text string, maxChars int) error {
	if text == "" {
		return &model.EmbeddingError{Reason: "empty text"}
	}
	if maxChars > 0 && len(text) > maxChars {
		return &model.EmbeddingError{Reason: "text exceeds model input limit"}
	}
	return nil
}
