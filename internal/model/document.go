package model

import "time"

// Document represents a source press release. Documents are created during
// corpus build and never mutated afterwards.
type Document struct {
	ID       string    `json:"id"`                  // Unique identifier (pr_id in the source dataset)
	Title    string    `json:"title"`               // Press release title
	Text     string    `json:"text"`                // Raw text, title prepended for context
	IssuedBy string    `json:"issued_by,omitempty"` // Issuing ministry or department
	Date     time.Time `json:"date,omitempty"`      // Publication date
}

// DocumentMeta is the slice of document attributes carried alongside each
// indexed chunk so retrieval results can cite their source.
type DocumentMeta struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	IssuedBy string    `json:"issued_by,omitempty"`
	Date     time.Time `json:"date,omitempty"`
}

// Meta returns the metadata view of a document.
func (d Document) Meta() DocumentMeta {
	return DocumentMeta{
		ID:       d.ID,
		Title:    d.Title,
		IssuedBy: d.IssuedBy,
		Date:     d.Date,
	}
}

// Chunk is a contiguous text span derived from one document, the unit of
// retrieval. Chunks are created once at index-build time and are immutable.
// Invariants: Text == parent.Text[Start:End], chunks of a document are
// ordered by Ordinal, and the union of non-overlapping spans covers the
// full document.
type Chunk struct {
	ID         string `json:"id"`          // Deterministic: "<doc id>-<ordinal>"
	DocumentID string `json:"document_id"` // Parent document
	Text       string `json:"text"`        // The span text
	Start      int    `json:"start"`       // Byte offset into the document text
	End        int    `json:"end"`         // Exclusive end offset
	Ordinal    int    `json:"ordinal"`     // Position within the document (0-based)
}

// ScoredChunk pairs a chunk with its cosine similarity against a query
// vector, plus the metadata of the document it came from.
type ScoredChunk struct {
	Chunk      Chunk        `json:"chunk"`
	Meta       DocumentMeta `json:"meta"`
	Similarity float64      `json:"similarity"`
}

// Claim is a normalized, checkable factual statement derived from raw user
// input. It is transient: it exists only within one pipeline invocation.
type Claim struct {
	Text     string   `json:"text"`                // The normalized statement
	Strategy string   `json:"strategy,omitempty"`  // Which normalizer produced it (heuristic, assisted)
	Entities []string `json:"entities,omitempty"`  // Named entities and amounts detected in the input
}
