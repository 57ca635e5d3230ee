package textsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// PlainText reads an invoice that is already rendered as text.
type PlainText struct {
	path   string
	logger *slog.Logger
}

// NewPlainText creates a provider for a text file.
func NewPlainText(path string, logger *slog.Logger) *PlainText {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlainText{path: path, logger: logger}
}

func (p *PlainText) Lines(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	lines := SplitLines(string(data))
	p.logger.Debug("text file loaded",
		slog.String("path", p.path),
		slog.Int("lines", len(lines)))
	return lines, nil
}
