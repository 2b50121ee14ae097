package models

// MetadataSource is the metadata key holding the path a document was loaded from
const MetadataSource = "source"

// Document is one unit of text extracted from a file.
// Metadata is free-form; extractors may set any keys, but the loader owns
// the "source" key and overwrites it with the path the file was discovered under.
type Document struct {
	Content  string         `json:"content" yaml:"content"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// NewDocument creates a Document with a non-nil metadata map
func NewDocument(content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		Content:  content,
		Metadata: metadata,
	}
}

// Source returns the "source" metadata value, or "" if unset or not a string
func (d Document) Source() string {
	src, _ := d.Metadata[MetadataSource].(string)
	return src
}

// SetSource overwrites the "source" metadata key, leaving all other keys untouched
func (d *Document) SetSource(path string) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[MetadataSource] = path
}
