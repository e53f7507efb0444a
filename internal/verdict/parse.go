package verdict

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// parsedVerdict is the validated shape of a reasoning-capability response.
// Nothing unparsed crosses this boundary.
type parsedVerdict struct {
	Label      model.Label
	Confidence float64
	Reasoning  string
	Entities   []string
}

type rawResponse struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Entities   []string `json:"entities"`
}

// parseResponse extracts and validates the JSON object in a model reply.
// Free-form prose around the object is tolerated (models wrap JSON in
// fences or commentary); a missing object, unparseable JSON, an unknown
// label or a missing confidence are not.
func parseResponse(raw string) (*parsedVerdict, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var resp rawResponse
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	label := model.Label(strings.ToUpper(strings.TrimSpace(resp.Label)))
	// Models sometimes hedge with the original system's extended labels;
	// fold them onto the strict three.
	switch label {
	case "LIKELY TRUE":
		label = model.LabelTrue
	case "LIKELY FALSE":
		label = model.LabelFalse
	}
	if !label.Valid() {
		return nil, fmt.Errorf("unknown label %q", resp.Label)
	}

	if resp.Confidence == nil {
		return nil, fmt.Errorf("missing confidence")
	}
	if resp.Reasoning == "" {
		return nil, fmt.Errorf("missing reasoning")
	}

	return &parsedVerdict{
		Label:      label,
		Confidence: *resp.Confidence,
		Reasoning:  resp.Reasoning,
		Entities:   resp.Entities,
	}, nil
}
