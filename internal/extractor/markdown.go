package extractor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/dirloader/internal/models"
)

// MarkdownExtractor renders Markdown to plain text.
// YAML frontmatter delimited by "---" lines is decoded into document metadata.
type MarkdownExtractor struct {
	markdown goldmark.Markdown
}

// NewMarkdownExtractor creates a new Markdown extractor
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		markdown: goldmark.New(),
	}
}

// Extract reads the file and returns a single document with its plain text
func (e *MarkdownExtractor) Extract(path string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewExtractionError(path, FormatMarkdown, fmt.Errorf("failed to read file: %w", err))
	}

	metadata := sourceMetadata(path)

	body, frontmatter := extractFrontmatter(data)
	if frontmatter != nil {
		var fields map[string]any
		if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
			return nil, NewExtractionError(path, FormatMarkdown, fmt.Errorf("failed to parse frontmatter: %w", err))
		}
		for k, v := range fields {
			metadata[k] = normalizeYAMLValue(v)
		}
	}

	content, err := e.plainText(body)
	if err != nil {
		return nil, NewExtractionError(path, FormatMarkdown, err)
	}

	return []models.Document{models.NewDocument(content, metadata)}, nil
}

// plainText walks the Markdown AST and writes the text of each block on its own line
func (e *MarkdownExtractor) plainText(source []byte) (string, error) {
	doc := e.markdown.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.Kind() {
			case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock, ast.KindCodeBlock, ast.KindFencedCodeBlock:
				if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
					buf.WriteByte('\n')
				}
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(source))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(buf.Bytes())), nil
}

// normalizeYAMLValue rewrites nested map[any]any values from yaml.v3 into
// map[string]any so metadata always encodes as JSON. Keys are formatted with fmt.Sprint.
func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAMLValue(item)
		}
		return out
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAMLValue(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeYAMLValue(item)
		}
		return val
	default:
		return v
	}
}

// extractFrontmatter splits a leading "---" fenced YAML block from the body.
// Content without a closed frontmatter block is returned unchanged.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}

	return content, nil
}
