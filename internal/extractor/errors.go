package extractor

import (
	"fmt"
	"strings"

	"github.com/rafaelvsj/docextract/internal/sniff"
)

// UnsupportedFormatError reports a sniffed format with no registered
// extractor. Surfaced to clients as a 415; never retried.
type UnsupportedFormatError struct {
	Format    sniff.Format
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (supported: %s)",
		e.Format.MIME(), strings.Join(e.Supported, ", "))
}

// ExtractionError reports that a capability could not produce a usable
// transcript: either the underlying conversion failed or the content fell
// below the format's minimum threshold.
type ExtractionError struct {
	Format sniff.Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
