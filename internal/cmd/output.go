package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/dirloader/internal/filelock"
	"github.com/harrison/dirloader/internal/models"
)

// encodeDocuments renders documents as an indented JSON or YAML list
func encodeDocuments(docs []models.Document, format string) ([]byte, error) {
	if docs == nil {
		docs = []models.Document{}
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// writeDocuments writes encoded documents to path, or to w when path is empty.
// File output is written atomically under a lock, waiting at most lockTimeout
// for another writer.
func writeDocuments(w io.Writer, path string, data []byte, lockTimeout time.Duration) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := filelock.LockAndWriteTimeout(path, data, lockTimeout); err != nil {
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}
	return nil
}
