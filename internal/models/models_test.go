package models

import (
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		wantLen  int
	}{
		{
			name:     "nil metadata is allocated",
			metadata: nil,
			wantLen:  0,
		},
		{
			name:     "existing metadata is kept",
			metadata: map[string]any{"title": "Report"},
			wantLen:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument("body", tt.metadata)
			if doc.Metadata == nil {
				t.Fatal("NewDocument() returned nil metadata")
			}
			if len(doc.Metadata) != tt.wantLen {
				t.Errorf("len(Metadata) = %d, want %d", len(doc.Metadata), tt.wantLen)
			}
			if doc.Content != "body" {
				t.Errorf("Content = %q, want %q", doc.Content, "body")
			}
		})
	}
}

func TestDocumentSetSource(t *testing.T) {
	doc := Document{
		Content: "text",
		Metadata: map[string]any{
			"source": "/tmp/original.docx",
			"title":  "Quarterly",
		},
	}

	doc.SetSource("docs/a.docx")

	if got := doc.Source(); got != "docs/a.docx" {
		t.Errorf("Source() = %q, want %q", got, "docs/a.docx")
	}
	if doc.Metadata["title"] != "Quarterly" {
		t.Errorf("title metadata changed: %v", doc.Metadata["title"])
	}
}

func TestDocumentSetSource_NilMetadata(t *testing.T) {
	var doc Document
	doc.SetSource("a.docx")

	if doc.Source() != "a.docx" {
		t.Errorf("Source() = %q, want %q", doc.Source(), "a.docx")
	}
}

func TestDocumentSource_NonString(t *testing.T) {
	doc := Document{Metadata: map[string]any{"source": 42}}
	if doc.Source() != "" {
		t.Errorf("Source() = %q, want empty string for non-string value", doc.Source())
	}
}

func TestLoadResultSkipped(t *testing.T) {
	result := LoadResult{
		RunID:     "run-1",
		StartedAt: time.Now(),
		Skipped: []SkippedFile{
			{Path: "b.docx", Error: "zip: not a valid zip file"},
			{Path: "d.docx", Error: "missing body"},
		},
	}

	if !result.HasSkipped() {
		t.Error("HasSkipped() = false, want true")
	}
	if result.SkippedCount() != 2 {
		t.Errorf("SkippedCount() = %d, want 2", result.SkippedCount())
	}

	if (LoadResult{}).HasSkipped() {
		t.Error("empty result should not report skipped files")
	}
}
