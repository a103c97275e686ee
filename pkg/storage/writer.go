package storage

import (
	"fmt"
	"os"
	"strings"
)

// DocumentExtension is appended to output paths that lack it.
const DocumentExtension = ".html"

// DocumentWriter writes rendered documents to disk.
type DocumentWriter struct{}

// NewDocumentWriter creates a document writer.
func NewDocumentWriter() *DocumentWriter {
	return &DocumentWriter{}
}

// WriteDocument writes the document to path, appending the .html extension
// when missing, and returns the path actually written.
func (w *DocumentWriter) WriteDocument(path, content string) (string, error) {
	if !strings.HasSuffix(path, DocumentExtension) {
		path += DocumentExtension
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return path, nil
}
