package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeConverter extracts text in-process, row by row, without external
// tools. Layout fidelity is lower than pdftotext -table.
//
// A document without a text layer yields an empty text file, as pdftotext
// does, so recognition falls back to a template.
type NativeConverter struct {
	read func(ctx context.Context, src string) (string, error)
}

func (c NativeConverter) Convert(ctx context.Context, src, dst string) error {
	read := c.read
	if read == nil {
		read = ReadText
	}
	text, err := read(ctx, src)
	if errors.Is(err, ErrNoText) {
		slog.WarnContext(ctx, "Document has no text layer", "pdf_path", src)
		text, err = "", nil
	}
	if err != nil {
		return err
	}
	if err := ensureDir(dst); err != nil {
		return err
	}
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// ReadText returns the text of every page, one line per text row.
func ReadText(ctx context.Context, src string) (string, error) {
	f, r, err := pdf.Open(src)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", src, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d of %s: %w", i, src, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
		b.WriteByte('\f')
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, src)
	}
	return b.String(), nil
}
