package embed

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veridex/veridex/internal/model"
)

// OpenAIEmbedder implements Embedder against the OpenAI embeddings API or
// any OpenAI-compatible endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	cfg    model.EmbeddingConfig
}

// NewOpenAIEmbedder creates an embedder from configuration.
func NewOpenAIEmbedder(cfg model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Model returns the embedding-model identity.
func (e *OpenAIEmbedder) Model() string {
	return e.cfg.Model
}

// Embed returns the vector for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one API call, preserving input order. A timed
// out call is retried once before being surfaced as UpstreamTimeout.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for _, text := range texts {
		if err := validateInput(text, e.cfg.MaxInputChars); err != nil {
			return nil, err
		}
	}

	resp, err := e.request(ctx, texts)
	if err != nil && isTimeout(err) {
		// Single bounded retry on timeout.
		resp, err = e.request(ctx, texts)
		if err != nil && isTimeout(err) {
			return nil, &model.UpstreamTimeout{Upstream: "embedding", Err: err}
		}
	}
	if err != nil {
		return nil, &model.EmbeddingError{Reason: "upstream call failed", Err: err}
	}

	if len(resp.Data) != len(texts) {
		return nil, &model.EmbeddingError{
			Reason: fmt.Sprintf("expected %d vectors, got %d", len(texts), len(resp.Data)),
		}
	}

	// The API reports the index of each vector; key results by it rather
	// than trusting response order.
	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, &model.EmbeddingError{Reason: "vector index out of range"}
		}
		vectors[item.Index] = item.Embedding
	}
	for i, vec := range vectors {
		if vec == nil {
			return nil, &model.EmbeddingError{Reason: fmt.Sprintf("missing vector for input %d", i)}
		}
	}

	return vectors, nil
}

func (e *OpenAIEmbedder) request(ctx context.Context, texts []string) (openai.EmbeddingResponse, error) {
	callCtx := ctx
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	return e.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.cfg.Model),
	})
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
