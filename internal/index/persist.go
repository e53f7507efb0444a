package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veridex/veridex/internal/model"
)

// formatVersion guards the on-disk layout. Bump when the persisted shape
// changes; old files are rejected rather than misread.
const formatVersion = 1

type indexFile struct {
	Version   int
	Model     string
	Dimension int
	Entries   []Entry
}

// Save serializes the index to path. The file records the embedding-model
// identity so a reload with a different embedder is rejected. Entry order
// is preserved exactly.
func (ix *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &model.IndexError{Reason: "create index directory", Err: err}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return &model.IndexError{Reason: "create index file", Err: err}
	}

	file := indexFile{
		Version:   formatVersion,
		Model:     ix.modelID,
		Dimension: ix.dim,
		Entries:   ix.entries,
	}
	if err := gob.NewEncoder(f).Encode(file); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &model.IndexError{Reason: "encode index", Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &model.IndexError{Reason: "close index file", Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		return &model.IndexError{Reason: "replace index file", Err: err}
	}
	return nil
}

// Load reads an index from path and verifies it was built with the expected
// embedding model. Reload never reorders or drops entries, so a loaded
// index answers queries identically to the one that was saved.
func Load(path, expectedModel string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.IndexError{Reason: "open index file", Err: err}
	}
	defer func() { _ = f.Close() }()

	var file indexFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, &model.IndexError{Reason: "decode index", Err: err}
	}

	if file.Version != formatVersion {
		return nil, &model.IndexError{
			Reason: fmt.Sprintf("unsupported index format version %d (expected %d)", file.Version, formatVersion),
		}
	}
	if expectedModel != "" && file.Model != expectedModel {
		return nil, &model.IndexError{
			Reason: fmt.Sprintf("index built with model %q, configured embedder is %q", file.Model, expectedModel),
		}
	}
	if len(file.Entries) == 0 {
		return nil, &model.IndexError{Reason: "index file contains no entries"}
	}
	for i, e := range file.Entries {
		if len(e.Vector) != file.Dimension {
			return nil, &model.IndexError{
				Reason: fmt.Sprintf("entry %d has dimension %d, file declares %d", i, len(e.Vector), file.Dimension),
			}
		}
	}

	return &Index{
		modelID: file.Model,
		dim:     file.Dimension,
		entries: file.Entries,
	}, nil
}
