package extractor

import (
	"sort"

	"github.com/rafaelvsj/docextract/internal/config"
	"github.com/rafaelvsj/docextract/internal/sniff"
)

// Registry is the immutable format → extractor mapping, built once at
// startup and passed by reference into the Dispatcher.
type Registry struct {
	entries map[sniff.Format]entry
}

type entry struct {
	label string
	ex    Extractor
}

// FormatInfo describes one registered format for the /formats endpoint.
type FormatInfo struct {
	Format sniff.Format `json:"format"`
	MIME   string       `json:"mime_type"`
	Label  string       `json:"extractor"`
}

// NewRegistry builds the default registry from configuration.
func NewRegistry(cfg config.Config) *Registry {
	r := newRegistry()

	image := &ImageExtractor{Languages: cfg.OCRLanguages}

	r.register(sniff.FormatPDF, "pdf-text", &PDFExtractor{FallbackDocconv: cfg.PDFFallbackDocconv})
	r.register(sniff.FormatDOCX, "go-docx", &DOCXExtractor{})
	r.register(sniff.FormatPPTX, "pptx-slides", &PPTXExtractor{})
	r.register(sniff.FormatHTML, "html-to-markdown", &HTMLExtractor{})
	r.register(sniff.FormatText, "plain-text", &TextExtractor{})
	r.register(sniff.FormatJPEG, "tesseract-ocr", image)
	r.register(sniff.FormatPNG, "tesseract-ocr", image)
	r.register(sniff.FormatTIFF, "tesseract-ocr", image)
	r.register(sniff.FormatBMP, "tesseract-ocr", image)
	r.register(sniff.FormatEPUB, "epub-zip", &EPUBExtractor{})
	r.register(sniff.FormatRTF, "docconv-rtf", &RTFExtractor{})

	return r
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[sniff.Format]entry)}
}

func (r *Registry) register(f sniff.Format, label string, ex Extractor) {
	r.entries[f] = entry{label: label, ex: ex}
}

// Lookup returns the extractor registered for a format.
func (r *Registry) Lookup(f sniff.Format) (Extractor, bool) {
	e, ok := r.entries[f]
	return e.ex, ok
}

// Supported lists registered format identifiers, sorted.
func (r *Registry) Supported() []string {
	out := make([]string, 0, len(r.entries))
	for f := range r.entries {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Formats lists registered formats with their extractor labels, sorted by id.
func (r *Registry) Formats() []FormatInfo {
	out := make([]FormatInfo, 0, len(r.entries))
	for f, e := range r.entries {
		out = append(out, FormatInfo{Format: f, MIME: f.MIME(), Label: e.label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Format < out[j].Format })
	return out
}
