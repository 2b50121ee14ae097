package cmd

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// executeCommand runs the root command with args and captures both streams
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// isolateHome points the config lookup at an empty temp directory
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DIRLOADER_HOME", home)
	return home
}

// writeDocx creates a minimal Word archive whose body holds one paragraph
func writeDocx(t *testing.T, path, text string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	part, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprintf(part, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body>
</w:document>`, text)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

// writeText creates path with content, including parent directories
func writeText(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// docsTree builds:
//
//	a.docx, b.docx, .hidden.docx, notes.txt, sub/c.docx
func docsTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDocx(t, filepath.Join(root, "a.docx"), "alpha")
	writeDocx(t, filepath.Join(root, "b.docx"), "bravo")
	writeDocx(t, filepath.Join(root, ".hidden.docx"), "hidden")
	writeDocx(t, filepath.Join(root, "sub", "c.docx"), "charlie")
	writeText(t, filepath.Join(root, "notes.txt"), "not a docx")
	return root
}
