package llm

import (
	"fmt"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// NewReasoner creates a reasoning provider from configuration. An empty
// provider string disables the reasoning capability and returns nil; the
// pipeline then only produces heuristic normalization and short-circuit
// verdicts.
func NewReasoner(cfg model.LLMConfig) (Reasoner, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIReasoner(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}
