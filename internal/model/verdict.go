package model

// Label is the verdict classification for a checked claim.
type Label string

const (
	LabelTrue         Label = "TRUE"
	LabelFalse        Label = "FALSE"
	LabelUnverifiable Label = "UNVERIFIABLE"
)

// Valid reports whether l is one of the three recognized labels.
func (l Label) Valid() bool {
	switch l {
	case LabelTrue, LabelFalse, LabelUnverifiable:
		return true
	}
	return false
}

// Verdict is the final structured judgment for a claim. It is produced once
// per pipeline invocation and immutable once returned.
type Verdict struct {
	RequestID  string        `json:"request_id"`
	Claim      string        `json:"claim"`              // The normalized claim that was checked
	Label      Label         `json:"label"`              // TRUE, FALSE or UNVERIFIABLE
	Confidence float64       `json:"confidence"`         // Always within [0,1]
	Reasoning  string        `json:"reasoning"`          // Model-provided or short-circuit explanation
	Evidence   []ScoredChunk `json:"evidence"`           // The retrieval result the verdict rests on
	Entities   []string      `json:"entities,omitempty"` // Entities detected in the claim
}

// Unverifiable builds the designed verdict for claims with no supporting
// evidence in the corpus. This is the normal out-of-corpus outcome, not a
// failure.
func Unverifiable(claim Claim, reasoning string) Verdict {
	return Verdict{
		Claim:      claim.Text,
		Label:      LabelUnverifiable,
		Confidence: 0,
		Reasoning:  reasoning,
		Evidence:   []ScoredChunk{},
		Entities:   claim.Entities,
	}
}
