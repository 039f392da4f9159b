package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

const defaultPdftotext = "pdftotext"

// CommandConverter shells out to poppler's pdftotext in table layout mode,
// which keeps label and value of a line on the same text row.
type CommandConverter struct {
	Path string
	Args []string
}

func NewCommandConverter(path string) *CommandConverter {
	if path == "" {
		path = defaultPdftotext
	}
	return &CommandConverter{Path: path, Args: []string{"-table"}}
}

func (c *CommandConverter) Convert(ctx context.Context, src, dst string) error {
	if err := ensureDir(dst); err != nil {
		return err
	}

	args := append(append([]string(nil), c.Args...), src, dst)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.DebugContext(ctx, "Converting document", "command", c.Path, "source", src, "target", dst)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s %s: %w: %s", c.Path, src, err, msg)
		}
		return fmt.Errorf("%s %s: %w", c.Path, src, err)
	}
	return nil
}
