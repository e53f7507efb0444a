package claim

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
)

type mockReasoner struct {
	response string
	err      error
	calls    int
}

func (m *mockReasoner) Name() string { return "mock" }

func (m *mockReasoner) Complete(_ context.Context, _ llm.Request) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockReasoner) IsAvailable(_ context.Context) bool { return true }

func TestHeuristicNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "declarative factual statement",
			input: "Retail inflation fell to 4.7 percent in April.",
			want:  "Retail inflation fell to 4.7 percent in April.",
		},
		{
			name:  "factual sentence after a question",
			input: "What do you think? The government launched a new scheme in 2023.",
			want:  "The government launched a new scheme in 2023.",
		},
		{
			name:    "question rejected",
			input:   "What is the current inflation rate?",
			wantErr: true,
		},
		{
			name:    "command rejected",
			input:   "Please list all the railway schemes.",
			wantErr: true,
		},
		{
			name:    "opinion rejected",
			input:   "I think the scheme is probably good for farmers.",
			wantErr: true,
		},
		{
			name:    "too short rejected",
			input:   "Scheme was launched.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   \n\t  ",
			wantErr: true,
		},
	}

	n := NewHeuristicNormalizer()
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := n.Normalize(ctx, tt.input)
			if tt.wantErr {
				var extErr *model.ClaimExtractionError
				if !errors.As(err, &extErr) {
					t.Errorf("Expected ClaimExtractionError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if claim.Text != tt.want {
				t.Errorf("Expected claim %q, got %q", tt.want, claim.Text)
			}
			if claim.Strategy != "heuristic" {
				t.Errorf("Expected heuristic strategy, got %s", claim.Strategy)
			}
		})
	}
}

func TestSplitSentences_AmountAbbreviationStaysWhole(t *testing.T) {
	sentences := splitSentences("The project cost Rs. 590 crore was sanctioned. It covers two districts.")

	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if !strings.Contains(sentences[0], "Rs. 590 crore") {
		t.Errorf("Amount severed across a sentence boundary: %q", sentences[0])
	}
}

func TestAssistedNormalize_SingleFactualSentenceSkipsModel(t *testing.T) {
	reasoner := &mockReasoner{response: "should not be used"}
	n := NewAssistedNormalizer(reasoner, zerolog.Nop())

	input := "The government launched a new scheme in 2023."
	claim, err := n.Normalize(context.Background(), input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if claim.Text != input {
		t.Errorf("Single factual sentence must be used unchanged, got %q", claim.Text)
	}
	if claim.Strategy != "assisted" {
		t.Errorf("Expected assisted strategy, got %s", claim.Strategy)
	}
	if reasoner.calls != 0 {
		t.Errorf("Expected no model calls, got %d", reasoner.calls)
	}
}

func TestAssistedNormalize_UsesRewrite(t *testing.T) {
	rewrite := "The government launched the scheme in 2023."
	reasoner := &mockReasoner{response: rewrite}
	n := NewAssistedNormalizer(reasoner, zerolog.Nop())

	input := "There were several announcements yesterday. The government launched the scheme in 2023."
	claim, err := n.Normalize(context.Background(), input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if claim.Text != rewrite {
		t.Errorf("Expected model rewrite, got %q", claim.Text)
	}
	if reasoner.calls != 1 {
		t.Errorf("Expected 1 model call, got %d", reasoner.calls)
	}
}

func TestAssistedNormalize_RejectsRewriteWithNewNumbers(t *testing.T) {
	// The rewrite invents "4.7", absent from the input.
	reasoner := &mockReasoner{response: "Inflation fell to 4.7 percent under the new policy."}
	n := NewAssistedNormalizer(reasoner, zerolog.Nop())

	input := "There were several announcements yesterday. The ministry announced a new inflation policy today."
	claim, err := n.Normalize(context.Background(), input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Falls back to the heuristic extraction.
	if claim.Strategy != "heuristic" {
		t.Errorf("Expected heuristic fallback, got strategy %s", claim.Strategy)
	}
	if claim.Text == reasoner.response {
		t.Error("Rewrite with invented numbers must not be used")
	}
}

func TestAssistedNormalize_ModelFailureFallsBack(t *testing.T) {
	reasoner := &mockReasoner{err: errors.New("provider unreachable")}
	n := NewAssistedNormalizer(reasoner, zerolog.Nop())

	input := "There were several announcements yesterday. The government launched the scheme in 2023."
	claim, err := n.Normalize(context.Background(), input)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if claim.Strategy != "heuristic" {
		t.Errorf("Expected heuristic fallback on model failure, got %s", claim.Strategy)
	}
}

func TestAssistedNormalize_NothingExtractable(t *testing.T) {
	reasoner := &mockReasoner{err: errors.New("provider unreachable")}
	n := NewAssistedNormalizer(reasoner, zerolog.Nop())

	_, err := n.Normalize(context.Background(), "What is this? Who knows?")
	var extErr *model.ClaimExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("Expected ClaimExtractionError, got %v", err)
	}
}

func TestNewNormalizer(t *testing.T) {
	log := zerolog.Nop()

	if _, err := NewNormalizer("heuristic", nil, log); err != nil {
		t.Errorf("heuristic strategy should not need a reasoner: %v", err)
	}
	if _, err := NewNormalizer("", nil, log); err != nil {
		t.Errorf("empty strategy should default to heuristic: %v", err)
	}
	if _, err := NewNormalizer("assisted", nil, log); err == nil {
		t.Error("assisted strategy without a reasoner must fail")
	}
	if _, err := NewNormalizer("assisted", &mockReasoner{}, log); err != nil {
		t.Errorf("assisted strategy with a reasoner should work: %v", err)
	}
	if _, err := NewNormalizer("quantum", nil, log); err == nil {
		t.Error("unknown strategy must fail")
	}
}

func TestExtractEntities(t *testing.T) {
	text := "Ministry of Finance allocated Rs. 500 crore for the scheme in 2023."
	entities := ExtractEntities(text)

	want := []string{"Rs. 500 crore", "Ministry of Finance", "2023"}
	for _, w := range want {
		found := false
		for _, e := range entities {
			if e == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected entity %q in %v", w, entities)
		}
	}
}

func TestExtractEntities_Deduplicates(t *testing.T) {
	text := "Indian Railways expanded in 2023. Indian Railways also electrified lines in 2023."
	entities := ExtractEntities(text)

	counts := make(map[string]int)
	for _, e := range entities {
		counts[e]++
	}
	for e, c := range counts {
		if c > 1 {
			t.Errorf("Entity %q appears %d times", e, c)
		}
	}
}
