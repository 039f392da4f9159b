package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pdfexpenses/internal/core"
)

// Encode serializes an expense into its YAML record form.
func Encode(e core.Expense) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("encode expense: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encode expense: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode expense: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a YAML expense record.
func Decode(data []byte) (core.Expense, error) {
	var e core.Expense
	if err := yaml.Unmarshal(data, &e); err != nil {
		return core.Expense{}, fmt.Errorf("decode expense: %w", err)
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("decode expense: %w", err)
	}
	return e, nil
}

// YAMLStore keeps one YAML file per expense.
type YAMLStore struct{}

func NewYAMLStore() *YAMLStore {
	return &YAMLStore{}
}

// Save writes the record to rec.Path, creating parent directories.
func (s *YAMLStore) Save(ctx context.Context, rec Record) error {
	data, err := Encode(rec.Expense)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(rec.Path), 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	if err := os.WriteFile(rec.Path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	slog.DebugContext(ctx, "Wrote expense record", "record_path", rec.Path)
	return nil
}

// Read loads the expense stored at path.
func (s *YAMLStore) Read(path string) (core.Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Expense{}, fmt.Errorf("read record: %w", err)
	}
	e, err := Decode(data)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// ReadAll loads the expenses stored at paths, in order.
func (s *YAMLStore) ReadAll(paths []string) ([]core.Expense, error) {
	out := make([]core.Expense, 0, len(paths))
	for _, p := range paths {
		e, err := s.Read(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
