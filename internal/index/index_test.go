package index

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func entry(docID string, ordinal int, vector []float32) Entry {
	return Entry{
		Vector: vector,
		Chunk: model.Chunk{
			ID:         docID + "-0",
			DocumentID: docID,
			Text:       "chunk text",
			Ordinal:    ordinal,
		},
		Meta: model.DocumentMeta{ID: docID, Title: "Title " + docID},
	}
}

func TestBuild_RejectsInconsistentDimensions(t *testing.T) {
	entries := []Entry{
		entry("a", 0, []float32{1, 0, 0}),
		entry("b", 0, []float32{1, 0}),
	}

	_, err := Build("test-model", entries)

	var idxErr *model.IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("Expected IndexError, got %v", err)
	}
}

func TestBuild_RequiresModelIdentity(t *testing.T) {
	_, err := Build("", []Entry{entry("a", 0, []float32{1, 0})})

	var idxErr *model.IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("Expected IndexError for missing model identity, got %v", err)
	}
}

func TestQuery_InvalidK(t *testing.T) {
	ix, err := Build("test-model", []Entry{entry("a", 0, []float32{1, 0})})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, k := range []int{0, -1} {
		_, err := ix.Query([]float32{1, 0}, k)
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("k=%d: expected ErrInvalidArgument, got %v", k, err)
		}
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	ix, err := Build("test-model", []Entry{entry("a", 0, []float32{1, 0})})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	_, err = ix.Query([]float32{1, 0, 0}, 1)
	var idxErr *model.IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("Expected IndexError, got %v", err)
	}
}

func TestQuery_CosineOrdering(t *testing.T) {
	// Three vectors at decreasing angles to the query (1,0).
	entries := []Entry{
		entry("far", 0, []float32{0, 1}),
		entry("near", 0, []float32{1, 0.1}),
		entry("exact", 0, []float32{2, 0}), // magnitude must not matter
	}
	ix, err := Build("test-model", entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Query([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	want := []string{"exact", "near", "far"}
	for i, docID := range want {
		if results[i].Chunk.DocumentID != docID {
			t.Errorf("Position %d: expected %s, got %s", i, docID, results[i].Chunk.DocumentID)
		}
	}
	if math.Abs(results[0].Similarity-1.0) > 1e-6 {
		t.Errorf("Expected similarity 1.0 for the aligned vector, got %f", results[0].Similarity)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("Results not sorted descending at position %d", i)
		}
	}
}

func TestQuery_TieBreakByOrdinal(t *testing.T) {
	// Identical vectors: the earlier ordinal must win.
	same := []float32{1, 1}
	entries := []Entry{
		entry("doc", 3, same),
		entry("doc", 1, same),
		entry("doc", 2, same),
	}
	ix, err := Build("test-model", entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Query([]float32{1, 1}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	for i, want := range []int{1, 2, 3} {
		if results[i].Chunk.Ordinal != want {
			t.Errorf("Position %d: expected ordinal %d, got %d", i, want, results[i].Chunk.Ordinal)
		}
	}
}

func TestQuery_KLargerThanIndex(t *testing.T) {
	ix, err := Build("test-model", []Entry{entry("a", 0, []float32{1, 0})})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := ix.Query([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestQuery_Deterministic(t *testing.T) {
	entries := []Entry{
		entry("a", 0, []float32{0.3, 0.7, 0.1}),
		entry("b", 1, []float32{0.5, 0.5, 0.5}),
		entry("c", 2, []float32{0.9, 0.1, 0.2}),
	}
	ix, err := Build("test-model", entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	query := []float32{0.4, 0.4, 0.4}
	first, err := ix.Query(query, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	second, err := ix.Query(query, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	for i := range first {
		if first[i].Chunk.ID != second[i].Chunk.ID || first[i].Similarity != second[i].Similarity {
			t.Errorf("Repeated query diverged at position %d", i)
		}
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	entries := []Entry{
		entry("a", 0, []float32{0.3, 0.7}),
		entry("b", 1, []float32{0.9, 0.1}),
		entry("c", 2, []float32{0.5, 0.5}),
	}
	ix, err := Build("test-model", entries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.veridex")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path, "test-model")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Len() != ix.Len() || loaded.Dimension() != ix.Dimension() || loaded.Model() != ix.Model() {
		t.Fatal("Loaded index metadata differs from the saved index")
	}

	// Reload must answer queries identically.
	query := []float32{0.6, 0.4}
	want, err := ix.Query(query, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	got, err := loaded.Query(query, 3)
	if err != nil {
		t.Fatalf("Query on loaded index failed: %v", err)
	}
	for i := range want {
		if want[i].Chunk.ID != got[i].Chunk.ID || want[i].Similarity != got[i].Similarity {
			t.Errorf("Loaded index diverged at position %d", i)
		}
	}
}

func TestLoad_RejectsModelMismatch(t *testing.T) {
	ix, err := Build("model-a", []Entry{entry("a", 0, []float32{1, 0})})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.veridex")
	if err := ix.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err = Load(path, "model-b")
	var idxErr *model.IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("Expected IndexError for model mismatch, got %v", err)
	}
}
