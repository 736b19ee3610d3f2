package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rafaelvsj/docextract/internal/sniff"
)

// Dispatcher resolves a document's format and invokes the registered
// extractor with a scoped temporary file.
type Dispatcher struct {
	registry *Registry
	tempDir  string
	log      *slog.Logger
}

// NewDispatcher wires a dispatcher to a registry. tempDir may be empty to
// use the system default.
func NewDispatcher(reg *Registry, tempDir string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: reg, tempDir: tempDir, log: log}
}

// Dispatch sniffs the document, resolves its extractor and runs it. The
// temporary file holding the bytes is removed on every exit path. Capability
// failures are wrapped in ExtractionError; there are no retries at this
// layer.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte, filename string) (Result, sniff.Format, error) {
	format := sniff.Detect(data, filename)

	ex, ok := d.registry.Lookup(format)
	if !ok {
		return Result{}, format, &UnsupportedFormatError{Format: format, Supported: d.registry.Supported()}
	}

	// The extension survives into the temp name so extension-driven
	// converters resolve the right parser.
	tmp, err := os.CreateTemp(d.tempDir, "docextract-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return Result{}, format, &ExtractionError{Format: format, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, format, &ExtractionError{Format: format, Err: fmt.Errorf("write temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return Result{}, format, &ExtractionError{Format: format, Err: fmt.Errorf("close temp file: %w", err)}
	}

	res, err := ex.Extract(ctx, tmpPath, filename)
	if err != nil {
		return Result{}, format, &ExtractionError{Format: format, Err: err}
	}
	if strings.TrimSpace(res.Text) == "" {
		return Result{}, format, &ExtractionError{Format: format, Err: ErrInsufficientText}
	}

	d.log.Debug("extracted document",
		"format", format,
		"method", res.Method,
		"ocr_used", res.OCRUsed,
		"text_length", len(res.Text),
	)
	return res, format, nil
}
