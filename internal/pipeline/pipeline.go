// Package pipeline runs the per-request normalization pipeline:
// dispatch → markdown → similarity, bundled into an immutable result.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelvsj/docextract/internal/extractor"
	"github.com/rafaelvsj/docextract/internal/markdown"
	"github.com/rafaelvsj/docextract/internal/similarity"
	"github.com/rafaelvsj/docextract/internal/sniff"
)

// Bundle aggregates everything one request produced. It is created once and
// never mutated afterwards.
type Bundle struct {
	RequestID string

	Format   sniff.Format
	Result   extractor.Result
	Markdown string
	Score    similarity.Score

	Filename       string
	FileSize       int
	TextLength     int
	MarkdownLength int
	ExtractedAt    time.Time
	Elapsed        time.Duration
}

// Pipeline processes documents. It holds no per-request state: concurrent
// Process calls are independent.
type Pipeline struct {
	dispatcher *extractor.Dispatcher
	log        *slog.Logger
}

func New(d *extractor.Dispatcher, log *slog.Logger) *Pipeline {
	return &Pipeline{dispatcher: d, log: log}
}

// Process runs the full pipeline for one document. Either a complete Bundle
// comes back, or an error; there are no partial results.
func (p *Pipeline) Process(ctx context.Context, data []byte, filename string) (*Bundle, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := p.log.With("request_id", requestID, "filename", filename, "file_size", len(data))

	res, format, err := p.dispatcher.Dispatch(ctx, data, filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	log.Info("extraction complete",
		"format", format,
		"method", res.Method,
		"ocr_used", res.OCRUsed,
		"text_length", len(res.Text),
	)

	md := markdown.ToMarkdown(res.Text, filename)

	score := similarity.ScoreTexts(res.Text, md)
	if score.Degraded {
		log.Warn("similarity computation degraded, using fallback score")
	}
	log.Info("scored markdown fidelity",
		"similarity", score.Overall,
		"levenshtein", score.Levenshtein,
		"cosine", score.Cosine,
	)

	return &Bundle{
		RequestID:      requestID,
		Format:         format,
		Result:         res,
		Markdown:       md,
		Score:          score,
		Filename:       filename,
		FileSize:       len(data),
		TextLength:     len(res.Text),
		MarkdownLength: len(md),
		ExtractedAt:    start.UTC(),
		Elapsed:        time.Since(start),
	}, nil
}
