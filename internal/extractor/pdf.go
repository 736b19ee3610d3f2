package extractor

import (
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv/v2"
	pdflib "github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFExtractor reads PDFs with the pure-Go reader, annotating page
// boundaries, and optionally falls back to docconv (pdftotext) when the
// pure-Go path produces too little text.
type PDFExtractor struct {
	FallbackDocconv bool
}

func (e *PDFExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	pageCount, err := pdfapi.PageCountFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("validate pdf: %w", err)
	}

	text, readErr := extractPDFText(path, pageCount)
	if readErr == nil && len(strings.TrimSpace(text)) >= minPDFText {
		return Result{Text: text, Method: "pdf-text"}, nil
	}

	if e.FallbackDocconv {
		res, convErr := docconv.ConvertPath(path)
		if convErr == nil && len(strings.TrimSpace(res.Body)) >= minPDFText {
			return Result{Text: res.Body, Method: "pdftotext"}, nil
		}
	}

	if readErr != nil {
		return Result{}, fmt.Errorf("extract pdf text: %w", readErr)
	}
	return Result{}, fmt.Errorf("pdf yielded %d chars: %w", len(strings.TrimSpace(text)), ErrInsufficientText)
}

// extractPDFText walks pages in order, prefixing each with a page marker so
// downstream consumers can locate page boundaries in the transcript.
func extractPDFText(path string, pageCount int) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if n := reader.NumPage(); n < pageCount {
		pageCount = n
	}

	var buf strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		fmt.Fprintf(&buf, "--- Página %d ---\n", i)
		buf.WriteString(strings.TrimSpace(text))
	}
	return buf.String(), nil
}
