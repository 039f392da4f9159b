// Package pdftext turns PDF documents into plain text files for recognition.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backends accepted by New.
const (
	BackendPdftotext = "pdftotext"
	BackendNative    = "native"
)

// ErrNoText is returned by ReadText when a document yields no extractable
// text, usually a scanned page without an OCR layer.
var ErrNoText = errors.New("pdftext: no text extracted")

// Converter writes the text of the PDF at src to dst.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// New returns the converter for backend. An empty backend selects pdftotext.
func New(backend, pdftotextPath string) (Converter, error) {
	switch backend {
	case "", BackendPdftotext:
		return NewCommandConverter(pdftotextPath), nil
	case BackendNative:
		return NativeConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown text backend %q", backend)
	}
}

// Stale reports whether dst is missing or older than src.
func Stale(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat source: %w", err)
	}
	dstInfo, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat target: %w", err)
	}
	return dstInfo.ModTime().Before(srcInfo.ModTime()), nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create text directory: %w", err)
	}
	return nil
}
