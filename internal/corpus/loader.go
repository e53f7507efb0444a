// Package corpus loads press-release documents from the processed dataset.
// It is the ingestion boundary: nothing else in the system parses source
// file formats.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/veridex/veridex/internal/model"
)

// Expected CSV columns, matching the processed press-release dataset.
const (
	colID       = "pr_id"
	colDatetime = "pr_datetime"
	colIssuedBy = "pr_issued_by"
	colTitle    = "pr_title"
	colContent  = "pr_content"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	time.RFC3339,
}

// LoadCSV reads the press-release CSV and returns one Document per row.
// The title is prepended to the content so chunks near the top of a release
// keep their subject context.
func LoadCSV(path string) ([]model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read parses CSV press-release records from r.
func Read(r io.Reader) ([]model.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colID, colTitle, colContent} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("corpus missing column %q", required)
		}
	}

	var docs []model.Document
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		title := field(colTitle)
		content := field(colContent)
		if content == "" {
			continue
		}

		text := content
		if title != "" {
			text = title + ". " + content
		}

		docs = append(docs, model.Document{
			ID:       field(colID),
			Title:    title,
			Text:     text,
			IssuedBy: field(colIssuedBy),
			Date:     parseDate(field(colDatetime)),
		})
	}

	return docs, nil
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
