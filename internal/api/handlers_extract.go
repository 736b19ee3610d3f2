package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rafaelvsj/docextract/internal/extractor"
	"github.com/rafaelvsj/docextract/internal/similarity"
)

type extractMetadata struct {
	Filename       string `json:"filename"`
	FileSize       int    `json:"file_size"`
	TextLength     int    `json:"text_length"`
	MarkdownLength int    `json:"markdown_length"`
	ExtractedAt    string `json:"extracted_at"`
}

type extractResponse struct {
	Success          bool             `json:"success"`
	OriginalText     string           `json:"original_text"`
	Markdown         string           `json:"markdown"`
	Similarity       float64          `json:"similarity"`
	SimilarityDetail similarity.Score `json:"similarity_detail"`
	ExtractionMethod string           `json:"extraction_method"`
	OCRUsed          bool             `json:"ocr_used"`
	MimeType         string           `json:"mime_type"`
	ProcessingTime   float64          `json:"processing_time"`
	Metadata         extractMetadata  `json:"metadata"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Limit total request size; extra 1MB covers multipart overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		jsonError(w, "filename is required", http.StatusBadRequest)
		return
	}
	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	bundle, err := s.pipeline.Process(r.Context(), data, filename)
	if err != nil {
		s.writeExtractError(w, err, len(data), start)
		return
	}

	s.metrics.ObserveExtraction(string(bundle.Format), "success", bundle.Elapsed.Seconds())
	s.metrics.ObserveSimilarity(bundle.Score.Overall)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(extractResponse{
		Success:          true,
		OriginalText:     bundle.Result.Text,
		Markdown:         bundle.Markdown,
		Similarity:       bundle.Score.Overall,
		SimilarityDetail: bundle.Score,
		ExtractionMethod: bundle.Result.Method,
		OCRUsed:          bundle.Result.OCRUsed,
		MimeType:         bundle.Format.MIME(),
		ProcessingTime:   time.Since(start).Seconds(),
		Metadata: extractMetadata{
			Filename:       bundle.Filename,
			FileSize:       bundle.FileSize,
			TextLength:     bundle.TextLength,
			MarkdownLength: bundle.MarkdownLength,
			ExtractedAt:    bundle.ExtractedAt.Format(time.RFC3339),
		},
	})
}

// writeExtractError maps pipeline failures onto the transport: unsupported
// formats are a client problem (415), everything else a server one (500).
// Only the error message leaks; no internal detail.
func (s *Server) writeExtractError(w http.ResponseWriter, err error, fileSize int, start time.Time) {
	elapsed := time.Since(start).Seconds()

	var unsupported *extractor.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		s.metrics.ObserveExtraction(string(unsupported.Format), "unsupported", elapsed)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnsupportedMediaType)
		json.NewEncoder(w).Encode(map[string]any{
			"success":           false,
			"error":             fmt.Sprintf("unsupported file type: %s", unsupported.Format.MIME()),
			"detected_format":   string(unsupported.Format),
			"supported_formats": unsupported.Supported,
		})
		return
	}

	format := "unknown"
	var extraction *extractor.ExtractionError
	if errors.As(err, &extraction) {
		format = string(extraction.Format)
	}
	s.metrics.ObserveExtraction(format, "error", elapsed)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]any{
		"success":         false,
		"error":           "extraction failed: " + err.Error(),
		"processing_time": elapsed,
		"file_size":       fileSize,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
