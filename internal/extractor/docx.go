package extractor

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/dirloader/internal/models"
)

const (
	docxBodyPart       = "word/document.xml"
	docxCorePropsPart  = "docProps/core.xml"
	docxMetadataTitle  = "title"
	docxMetadataAuthor = "author"
)

// errMissingBody is returned for archives without a word/document.xml part
var errMissingBody = errors.New("missing " + docxBodyPart)

// DocxExtractor extracts paragraph text from Word documents.
// A document yields exactly one models.Document; paragraphs are separated by
// newlines and tab/break runs are kept as whitespace.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DOCX extractor
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

// coreProperties is the subset of docProps/core.xml copied into metadata
type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
}

// Extract reads the archive at path and returns its body text
func (e *DocxExtractor) Extract(path string) ([]models.Document, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, NewExtractionError(path, FormatDocx, fmt.Errorf("failed to open archive: %w", err))
	}
	defer archive.Close()

	var body, core *zip.File
	for _, f := range archive.File {
		switch f.Name {
		case docxBodyPart:
			body = f
		case docxCorePropsPart:
			core = f
		}
	}
	if body == nil {
		return nil, NewExtractionError(path, FormatDocx, errMissingBody)
	}

	content, err := readZipPart(body, readDocxBody)
	if err != nil {
		return nil, NewExtractionError(path, FormatDocx, fmt.Errorf("failed to read body: %w", err))
	}

	metadata := sourceMetadata(path)
	if core != nil {
		// Core properties are optional; a malformed part does not fail the document
		if props, err := readZipPart(core, readCoreProperties); err == nil {
			if props.Title != "" {
				metadata[docxMetadataTitle] = props.Title
			}
			if props.Creator != "" {
				metadata[docxMetadataAuthor] = props.Creator
			}
		}
	}

	return []models.Document{models.NewDocument(content, metadata)}, nil
}

// readZipPart opens one archive member and closes it after read returns
func readZipPart[T any](f *zip.File, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := f.Open()
	if err != nil {
		return zero, err
	}
	defer rc.Close()
	return read(rc)
}

// readDocxBody walks word/document.xml collecting w:t runs per paragraph
func readDocxBody(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// readCoreProperties decodes docProps/core.xml
func readCoreProperties(r io.Reader) (coreProperties, error) {
	var props coreProperties
	if err := xml.NewDecoder(r).Decode(&props); err != nil {
		return coreProperties{}, err
	}
	props.Title = strings.TrimSpace(props.Title)
	props.Creator = strings.TrimSpace(props.Creator)
	return props, nil
}
