package chunk

import (
	"strings"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func doc(id, text string) model.Document {
	return model.Document{ID: id, Text: text}
}

func TestChunker_SingleShortDocument(t *testing.T) {
	c := New(1500, 2)

	chunks := c.Chunk(doc("pr1", "Inflation decreased to 5% in March 2003. The Ministry of Finance confirmed the figure."))

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 0 {
		t.Errorf("Expected chunk to start at 0, got %d", chunks[0].Start)
	}
	if chunks[0].ID != "pr1-0000" {
		t.Errorf("Expected deterministic chunk id, got %q", chunks[0].ID)
	}
	if chunks[0].Ordinal != 0 {
		t.Errorf("Expected ordinal 0, got %d", chunks[0].Ordinal)
	}
}

func TestChunker_SpansMatchText(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one closes it."
	c := New(45, 1)

	chunks := c.Chunk(doc("pr2", text))

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks for a small budget, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if ch.Text != text[ch.Start:ch.End] {
			t.Errorf("Chunk %s text does not match its span: %q vs %q", ch.ID, ch.Text, text[ch.Start:ch.End])
		}
	}
}

func TestChunker_CoverageAndOrdering(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The Ministry of Railways announced a new heritage tourism initiative in the year 2003. ")
	}
	text := strings.TrimRight(b.String(), " ")

	c := New(300, 2)
	chunks := c.Chunk(doc("pr3", text))

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	// Ordinals ascend and starts never go backwards.
	for i, ch := range chunks {
		if ch.Ordinal != i {
			t.Errorf("Chunk %d has ordinal %d", i, ch.Ordinal)
		}
		if ch.Start >= ch.End {
			t.Errorf("Chunk %d has inverted span [%d,%d)", i, ch.Start, ch.End)
		}
	}

	// Union of spans covers the document: every adjacent pair overlaps or
	// touches, the first starts at 0 and the last ends at len(text).
	if chunks[0].Start != 0 {
		t.Errorf("First chunk starts at %d, want 0", chunks[0].Start)
	}
	if got := chunks[len(chunks)-1].End; got != len(text) {
		t.Errorf("Last chunk ends at %d, want %d", got, len(text))
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start > chunks[i-1].End {
			t.Errorf("Gap between chunk %d (end %d) and chunk %d (start %d)",
				i-1, chunks[i-1].End, i, chunks[i].Start)
		}
	}
}

func TestChunker_OverlapRepeatsSentences(t *testing.T) {
	text := "Alpha statement one. Beta statement two. Gamma statement three. Delta statement four. Epsilon statement five."
	c := New(65, 1)

	chunks := c.Chunk(doc("pr4", text))
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	// With a one-sentence stride, each chunk must start inside its
	// predecessor's span.
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start >= chunks[i-1].End {
			t.Errorf("Chunk %d does not overlap chunk %d", i, i-1)
		}
	}
}

func TestChunker_BudgetRespected(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Short sentence number one. ")
	}
	c := New(100, 0)

	for _, ch := range c.Chunk(doc("pr5", strings.TrimSpace(b.String()))) {
		if len(ch.Text) > 100 {
			t.Errorf("Chunk %s exceeds budget: %d chars", ch.ID, len(ch.Text))
		}
	}
}

func TestChunker_OverlongSentenceKeptWhole(t *testing.T) {
	long := "The Ministry of Rural Development together with several state governments and a number of district administrations released a very substantial allocation for drinking water supply schemes across the region."
	c := New(50, 1)

	chunks := c.Chunk(doc("pr6", long))

	if len(chunks) != 1 {
		t.Fatalf("Expected a single over-length chunk, got %d", len(chunks))
	}
	if chunks[0].Text != long {
		t.Error("Expected the over-length sentence unmodified")
	}
}

func TestChunker_EmptyDocument(t *testing.T) {
	c := New(1500, 2)
	if chunks := c.Chunk(doc("pr7", "")); chunks != nil {
		t.Errorf("Expected no chunks for empty document, got %d", len(chunks))
	}
}

func TestSplitSpans_AmountAbbreviationStaysWhole(t *testing.T) {
	text := "The project cost Rs. 70.90 lakh in total. Work on the line began in 2003."
	spans := splitSpans(text)

	if len(spans) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(spans))
	}
	first := text[spans[0].start:spans[0].end]
	if !strings.Contains(first, "Rs. 70.90 lakh") {
		t.Errorf("Amount severed across a sentence boundary: %q", first)
	}
}

func TestSplitSpans_TilesText(t *testing.T) {
	cases := []string{
		"One. Two. Three.",
		"No terminator at all",
		"Rs. 70.90 lakh was released. A second sentence.",
		"Trailing spaces. ",
	}
	for _, text := range cases {
		spans := splitSpans(text)
		var rebuilt strings.Builder
		prev := 0
		for _, s := range spans {
			if s.start != prev {
				t.Errorf("%q: span starts at %d, previous ended at %d", text, s.start, prev)
			}
			rebuilt.WriteString(text[s.start:s.end])
			prev = s.end
		}
		if rebuilt.String() != text {
			t.Errorf("%q: concatenated spans rebuild %q", text, rebuilt.String())
		}
	}
}
