// Package textsource turns invoice files into the plain-text lines the
// extraction pipeline consumes. PDFs are rendered through pdftotext;
// anything else is read as already-rendered text.
package textsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Provider yields the text lines of one invoice document.
type Provider interface {
	Lines(ctx context.Context) ([]string, error)
}

// NewProvider picks a provider for path by sniffing the %PDF- magic,
// with the file extension as a tiebreaker for PDFs whose header is
// preceded by junk bytes.
func NewProvider(path string, logger *slog.Logger, opts ...PDFOption) (Provider, error) {
	isPDF, err := sniffPDF(path)
	if err != nil {
		return nil, err
	}
	if isPDF {
		return NewPDF(path, logger, opts...), nil
	}
	return NewPlainText(path, logger), nil
}

func sniffPDF(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 5)
	n, err := io.ReadFull(f, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading document header: %w", err)
	}
	if bytes.Equal(magic[:n], []byte("%PDF-")) {
		return true, nil
	}
	return strings.EqualFold(filepath.Ext(path), ".pdf"), nil
}

// SplitLines normalizes carriage returns and form feeds before
// splitting. pdftotext separates pages with \f; the break must not glue
// the last line of one page to the first line of the next.
func SplitLines(text string) []string {
	replacer := strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n")
	return strings.Split(replacer.Replace(text), "\n")
}
