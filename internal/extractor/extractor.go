// Package extractor turns documents into plain-text transcripts.
//
// Each format has its own Extractor; the Registry maps sniffed formats to
// extractors and the Dispatcher drives a single extraction end to end.
package extractor

import (
	"context"
	"errors"
)

// Result is a successful extraction: the transcript, a tag identifying the
// strategy that produced it, and whether OCR was involved.
type Result struct {
	Text    string
	Method  string
	OCRUsed bool
}

// Extractor is a single-format extraction capability. It receives a scoped
// temporary file holding the document bytes plus the original filename.
// Fallback strategies (alternate parsers, OCR preprocessing) are the
// extractor's own concern; callers never retry.
type Extractor interface {
	Extract(ctx context.Context, path, filename string) (Result, error)
}

// ErrInsufficientText marks extractions that produced less content than the
// format's minimum threshold. Extractors fail rather than returning a
// low-confidence near-empty transcript.
var ErrInsufficientText = errors.New("insufficient text content")

// Minimum trimmed content lengths per format class.
const (
	minPDFText     = 50
	minDocxText    = 50
	minEPUBText    = 50
	minOCRText     = 10
	minConvertText = 10
	minPlainText   = 5
)
