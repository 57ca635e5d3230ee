package textsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// PDF renders a document with pdftotext and yields its lines. The
// -layout flag preserves the table columns the extractor's token
// positions depend on.
type PDF struct {
	path      string
	pdftotext string
	runner    Runner
	logger    *slog.Logger
}

// PDFOption adjusts a PDF provider.
type PDFOption func(*PDF)

// WithRunner substitutes the external command runner, for tests.
func WithRunner(r Runner) PDFOption {
	return func(p *PDF) { p.runner = r }
}

// WithPdftotext points at a pdftotext binary outside PATH.
func WithPdftotext(bin string) PDFOption {
	return func(p *PDF) {
		if bin != "" {
			p.pdftotext = bin
		}
	}
}

// NewPDF creates a provider that shells out to pdftotext.
func NewPDF(path string, logger *slog.Logger, opts ...PDFOption) *PDF {
	if logger == nil {
		logger = slog.Default()
	}
	p := &PDF{
		path:      path,
		pdftotext: "pdftotext",
		runner:    execRunner{logger: logger},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PDF) Lines(ctx context.Context) ([]string, error) {
	out, errb, err := p.runner.Run(ctx, p.pdftotext,
		"-layout", "-enc", "UTF-8", "-eol", "unix", p.path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext %s: %w: %s", p.path, err, truncate(string(errb), 512))
	}

	text := string(out)
	lines := SplitLines(text)
	p.logger.Debug("pdf rendered to text",
		slog.String("path", p.path),
		slog.Int("pages", 1+strings.Count(text, "\f")),
		slog.Int("lines", len(lines)))
	return lines, nil
}
