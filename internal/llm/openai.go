package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veridex/veridex/internal/model"
)

// OpenAIReasoner implements Reasoner using the Chat Completions API. A
// custom BaseURL points it at any OpenAI-compatible endpoint, including
// local servers.
type OpenAIReasoner struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIReasoner creates a reasoner from configuration.
func NewOpenAIReasoner(cfg model.LLMConfig) (*OpenAIReasoner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIReasoner{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (r *OpenAIReasoner) Name() string {
	return "openai"
}

// IsAvailable checks that the endpoint answers a lightweight call.
func (r *OpenAIReasoner) IsAvailable(ctx context.Context) bool {
	_, err := r.client.ListModels(ctx)
	return err == nil
}

// Complete sends the prompt and returns the raw response text. A timed out
// call is retried once, then surfaced as UpstreamTimeout.
func (r *OpenAIReasoner) Complete(ctx context.Context, req Request) (string, error) {
	text, err := r.request(ctx, req)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		text, err = r.request(ctx, req)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return "", &model.UpstreamTimeout{Upstream: "reasoning", Err: err}
		}
	}
	return text, err
}

func (r *OpenAIReasoner) request(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = r.cfg.MaxTokens
	}

	callCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: r.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: r.cfg.Temperature,
	}
	if r.cfg.Seed != 0 {
		seed := r.cfg.Seed
		chatReq.Seed = &seed
	}

	resp, err := r.client.CreateChatCompletion(callCtx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
