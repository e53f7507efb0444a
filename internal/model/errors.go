package model

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks configuration or input defects such as a
// non-positive k passed to a query. Fatal to the request, never retried.
var ErrInvalidArgument = errors.New("invalid argument")

// ClaimExtractionError indicates no checkable factual statement could be
// isolated from the raw input. The pipeline halts before retrieval.
type ClaimExtractionError struct {
	Input  string
	Reason string
}

func (e *ClaimExtractionError) Error() string {
	return fmt.Sprintf("claim extraction: %s", e.Reason)
}

// EmbeddingError indicates the embedding capability rejected its input or
// failed in a non-transient way.
type EmbeddingError struct {
	Reason string
	Err    error
}

func (e *EmbeddingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embedding: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("embedding: %s", e.Reason)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexError indicates a defect while building, persisting or loading the
// similarity index, such as inconsistent vector dimensionality or an
// embedding-model identity mismatch on reload.
type IndexError struct {
	Reason string
	Err    error
}

func (e *IndexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("index: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("index: %s", e.Reason)
}

func (e *IndexError) Unwrap() error { return e.Err }

// UpstreamTimeout indicates a blocking call to the embedding or reasoning
// capability exceeded its request-scoped deadline. Transient: callers retry
// at most once before surfacing it.
type UpstreamTimeout struct {
	Upstream string // "embedding" or "reasoning"
	Err      error
}

func (e *UpstreamTimeout) Error() string {
	return fmt.Sprintf("%s upstream timed out: %v", e.Upstream, e.Err)
}

func (e *UpstreamTimeout) Unwrap() error { return e.Err }

// VerdictFormatError indicates the reasoning capability returned a malformed
// response on both the initial attempt and the single stricter retry. The
// synthesizer downgrades it to an UNVERIFIABLE verdict rather than failing
// the pipeline.
type VerdictFormatError struct {
	Attempts int
	Err      error
}

func (e *VerdictFormatError) Error() string {
	return fmt.Sprintf("verdict format invalid after %d attempts: %v", e.Attempts, e.Err)
}

func (e *VerdictFormatError) Unwrap() error { return e.Err }
