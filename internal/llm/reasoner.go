// Package llm abstracts the reasoning capability behind a small interface.
// Responses are treated as untrusted text; callers parse and validate them
// before anything crosses a component boundary.
package llm

import "context"

// Reasoner defines the interface to a reasoning capability.
type Reasoner interface {
	// Name returns the provider name.
	Name() string

	// Complete sends a prompt and returns the raw response text.
	Complete(ctx context.Context, req Request) (string, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Request is one completion call.
type Request struct {
	// System sets the assistant role for the call.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens limits the response length; 0 uses the configured default.
	MaxTokens int
}
