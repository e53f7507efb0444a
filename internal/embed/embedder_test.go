package embed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/cache"
	"github.com/veridex/veridex/internal/model"
)

// fakeEmbedder returns length-derived vectors and counts upstream calls.
type fakeEmbedder struct {
	embedCalls int
	batchCalls int
	failNext   error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := f.Embed(ctx, text)
		f.embedCalls--
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		wantErr  bool
	}{
		{"valid text", "Retail inflation fell to 4.7 percent.", 100, false},
		{"empty text", "", 100, true},
		{"exceeds limit", "aaaaaa", 5, true},
		{"at limit", "aaaaa", 5, false},
		{"no limit", "any length goes", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.text, tt.maxChars)
			if tt.wantErr {
				var embErr *model.EmbeddingError
				if !errors.As(err, &embErr) {
					t.Errorf("Expected EmbeddingError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCachedEmbedder_SkipsUpstreamOnHit(t *testing.T) {
	inner := &fakeEmbedder{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewCachedEmbedder(inner, c, zerolog.Nop())

	ctx := context.Background()
	text := "The GDP grew by 7.2 percent."

	first, err := e.Embed(ctx, text)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if inner.embedCalls != 1 {
		t.Fatalf("Expected 1 upstream call, got %d", inner.embedCalls)
	}

	second, err := e.Embed(ctx, text)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if inner.embedCalls != 1 {
		t.Errorf("Expected cached result, got %d upstream calls", inner.embedCalls)
	}
	if first[0] != second[0] {
		t.Error("Cached vector differs from the original")
	}
}

func TestCachedEmbedder_BatchEmbedsOnlyMisses(t *testing.T) {
	inner := &fakeEmbedder{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewCachedEmbedder(inner, c, zerolog.Nop())

	ctx := context.Background()

	// Warm the cache with one of the three texts.
	if _, err := e.Embed(ctx, "bb"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	texts := []string{"a", "bb", "ccc"}
	vectors, err := e.EmbedBatch(ctx, texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if len(vectors) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(vectors))
	}
	// Vectors must line up with their input positions.
	for i, text := range texts {
		if vectors[i][0] != float32(len(text)) {
			t.Errorf("Position %d: vector does not match input %q", i, text)
		}
	}
	if inner.batchCalls != 1 {
		t.Errorf("Expected 1 batch call for the misses, got %d", inner.batchCalls)
	}
}

func TestCachedEmbedder_AllHitsSkipBatch(t *testing.T) {
	inner := &fakeEmbedder{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewCachedEmbedder(inner, c, zerolog.Nop())

	ctx := context.Background()
	texts := []string{"x", "yy"}
	if _, err := e.EmbedBatch(ctx, texts); err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	batchBefore := inner.batchCalls
	if _, err := e.EmbedBatch(ctx, texts); err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if inner.batchCalls != batchBefore {
		t.Errorf("Expected fully cached batch to skip upstream, got %d extra calls", inner.batchCalls-batchBefore)
	}
}

func TestCachedEmbedder_PropagatesUpstreamError(t *testing.T) {
	inner := &fakeEmbedder{failNext: &model.EmbeddingError{Reason: "upstream down"}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewCachedEmbedder(inner, c, zerolog.Nop())

	_, err := e.Embed(context.Background(), "uncached text")
	var embErr *model.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("Expected EmbeddingError, got %v", err)
	}
}
