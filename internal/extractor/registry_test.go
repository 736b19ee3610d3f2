package extractor

import (
	"testing"

	"github.com/rafaelvsj/docextract/internal/config"
	"github.com/rafaelvsj/docextract/internal/sniff"
)

func TestNewRegistry_CoversAllFormats(t *testing.T) {
	reg := NewRegistry(config.Config{OCRLanguages: []string{"eng"}})

	want := []sniff.Format{
		sniff.FormatPDF, sniff.FormatDOCX, sniff.FormatPPTX, sniff.FormatHTML,
		sniff.FormatText, sniff.FormatJPEG, sniff.FormatPNG, sniff.FormatTIFF,
		sniff.FormatBMP, sniff.FormatEPUB, sniff.FormatRTF,
	}
	for _, f := range want {
		if _, ok := reg.Lookup(f); !ok {
			t.Errorf("no extractor registered for %q", f)
		}
	}
	if _, ok := reg.Lookup(sniff.FormatUnknown); ok {
		t.Error("unknown format should have no extractor")
	}
	if got := len(reg.Supported()); got != len(want) {
		t.Errorf("Supported() has %d entries, want %d", got, len(want))
	}
}

func TestRegistry_SupportedIsSorted(t *testing.T) {
	reg := NewRegistry(config.Config{})
	supported := reg.Supported()
	for i := 1; i < len(supported); i++ {
		if supported[i-1] > supported[i] {
			t.Fatalf("Supported() not sorted: %v", supported)
		}
	}
}

func TestRegistry_FormatsCarryMIME(t *testing.T) {
	reg := NewRegistry(config.Config{})
	for _, info := range reg.Formats() {
		if info.MIME == "" || info.MIME == "application/octet-stream" {
			t.Errorf("format %q has no real MIME type", info.Format)
		}
		if info.Label == "" {
			t.Errorf("format %q has no extractor label", info.Format)
		}
	}
}
