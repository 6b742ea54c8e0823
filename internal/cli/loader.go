package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/markdown"
	"github.com/docfold/docfold/internal/schema"
)

// loadDocument reads a document from disk. Markdown files are parsed into a
// tree with source locations; JSON files are schema-validated first.
func loadDocument(path string) (*doctree.Document, error) {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		doc, err := markdown.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return doc, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := schema.ValidateDocument(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc, err := doctree.UnmarshalDocument(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return doc, nil
	}
}

// writeJSON writes bytes to path, or to the formatter's writer when path is
// empty or "-".
func writeJSON(f *OutputFormatter, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := f.Writer.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
