// Package chunk splits documents into overlapping, embeddable text spans.
package chunk

import (
	"fmt"

	"github.com/veridex/veridex/internal/model"
)

// Chunker accumulates sentences into chunks bounded by a character budget,
// with a configurable sentence overlap between adjacent chunks.
type Chunker struct {
	maxChars         int
	overlapSentences int
}

// New creates a chunker. maxChars bounds chunk length; overlapSentences is
// the number of trailing sentences of chunk i repeated at the start of
// chunk i+1.
func New(maxChars, overlapSentences int) *Chunker {
	if maxChars <= 0 {
		maxChars = 1500
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	return &Chunker{maxChars: maxChars, overlapSentences: overlapSentences}
}

// span is a half-open [start, end) byte range into the document text.
type span struct {
	start, end int
}

// Chunk splits a document into ordered chunks. Sentences are accumulated
// until adding the next one would exceed the character budget; the final
// chunk may be shorter. A single sentence longer than the budget becomes
// its own chunk unmodified. The union of non-overlapping spans covers the
// full document text.
func (c *Chunker) Chunk(doc model.Document) []model.Chunk {
	sentences := splitSpans(doc.Text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []model.Chunk
	ordinal := 0
	next := 0 // first sentence not yet covered by any chunk
	for next < len(sentences) {
		// Begin with the overlap: trailing sentences of the previous chunk,
		// shrunk when the budget cannot fit them plus the next new sentence.
		first := next - c.overlapSentences
		if first < 0 {
			first = 0
		}
		for first < next && sentences[next].end-sentences[first].start > c.maxChars {
			first++
		}

		// Always cover at least one new sentence, even a single one over
		// budget; then extend while the budget allows.
		last := next
		for last+1 < len(sentences) && sentences[last+1].end-sentences[first].start <= c.maxChars {
			last++
		}

		start := sentences[first].start
		end := sentences[last].end
		chunks = append(chunks, model.Chunk{
			ID:         fmt.Sprintf("%s-%04d", doc.ID, ordinal),
			DocumentID: doc.ID,
			Text:       doc.Text[start:end],
			Start:      start,
			End:        end,
			Ordinal:    ordinal,
		})
		ordinal++
		next = last + 1
	}

	return chunks
}

// splitSpans splits text into contiguous sentence spans. Spans tile the
// whole text: each span begins where the previous one ended, so leading
// whitespace belongs to the following sentence and concatenating all spans
// reconstructs the input exactly.
func splitSpans(text string) []span {
	if len(text) == 0 {
		return nil
	}

	var spans []span
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// A period closing the currency marker "Rs." is part of an
			// amount, never a sentence boundary.
			if text[i] == '.' && endsAbbreviation(text, i) {
				break
			}
			// Terminator followed by whitespace or end of text closes a sentence.
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' || text[i+1] == '\n' {
				spans = append(spans, span{start: start, end: i + 1})
				start = i + 1
			}
		}
	}
	if start < len(text) {
		spans = append(spans, span{start: start, end: len(text)})
	}

	// Drop spans that contain no non-whitespace at all by merging them into
	// their neighbor; a trailing whitespace-only span folds backwards.
	return mergeBlank(text, spans)
}

func mergeBlank(text string, spans []span) []span {
	out := spans[:0]
	for _, s := range spans {
		if isBlank(text[s.start:s.end]) && len(out) > 0 {
			out[len(out)-1].end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

// endsAbbreviation reports whether the period at i terminates an
// abbreviation rather than a sentence.
func endsAbbreviation(text string, i int) bool {
	start := i
	for start > 0 && isLetterByte(text[start-1]) {
		start--
	}
	return text[start:i] == "Rs"
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
