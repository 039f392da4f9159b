// Package pipeline runs the per-document conversion and recognition steps
// over a directory tree, redoing only what is out of date.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const (
	textExt   = ".txt"
	recordExt = ".yml"
)

// ErrOutsideInput is returned for documents that are not below the input
// directory.
var ErrOutsideInput = errors.New("document outside input directory")

// Document names the files belonging to one source PDF.
type Document struct {
	PDFPath    string
	TextPath   string
	RecordPath string
}

// Layout mirrors the input tree into the output tree.
type Layout struct {
	InputDir  string
	OutputDir string
}

// Document maps a PDF below InputDir to its text and record files.
func (l Layout) Document(pdfPath string) (Document, error) {
	rel, err := filepath.Rel(l.InputDir, pdfPath)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrOutsideInput, pdfPath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Document{}, fmt.Errorf("%w: %s", ErrOutsideInput, pdfPath)
	}
	base := filepath.Join(l.OutputDir, strings.TrimSuffix(rel, filepath.Ext(rel)))
	return Document{
		PDFPath:    pdfPath,
		TextPath:   base + textExt,
		RecordPath: base + recordExt,
	}, nil
}

// Documents maps every PDF path.
func (l Layout) Documents(pdfPaths []string) ([]Document, error) {
	docs := make([]Document, 0, len(pdfPaths))
	for _, p := range pdfPaths {
		d, err := l.Document(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Discover returns the PDF files below dir, matched case-insensitively and
// sorted by path.
func Discover(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// RecordPaths returns the record path of every document.
func RecordPaths(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.RecordPath
	}
	return out
}
