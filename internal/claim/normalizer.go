// Package claim reduces raw user input to a single checkable factual
// statement.
package claim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

// Normalizer turns raw input into a normalized claim. It fails with a
// ClaimExtractionError when no declarative sentence can be isolated.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) (model.Claim, error)
}

// NewNormalizer selects a normalization strategy by configuration. The
// assisted strategy needs a reasoner; selecting it without one is a
// configuration error.
func NewNormalizer(strategy string, reasoner llm.Reasoner, log zerolog.Logger) (Normalizer, error) {
	switch strategy {
	case "", "heuristic":
		return NewHeuristicNormalizer(), nil
	case "assisted":
		if reasoner == nil {
			return nil, fmt.Errorf("assisted claim normalization requires an LLM provider")
		}
		return NewAssistedNormalizer(reasoner, log), nil
	default:
		return nil, fmt.Errorf("unknown claim strategy: %s (supported: heuristic, assisted)", strategy)
	}
}
