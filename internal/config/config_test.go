package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("OCR_LANGUAGES", "")
	t.Setenv("TEMP_DIR", "")
	t.Setenv("PDF_FALLBACK_DOCCONV", "")

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d, want 52428800", cfg.MaxUploadBytes)
	}
	if !reflect.DeepEqual(cfg.OCRLanguages, []string{"por", "eng"}) {
		t.Errorf("OCRLanguages = %v, want [por eng]", cfg.OCRLanguages)
	}
	if !cfg.PDFFallbackDocconv {
		t.Error("PDFFallbackDocconv should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("OCR_LANGUAGES", "deu,fra")
	t.Setenv("PDF_FALLBACK_DOCCONV", "false")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if !reflect.DeepEqual(cfg.OCRLanguages, []string{"deu", "fra"}) {
		t.Errorf("OCRLanguages = %v", cfg.OCRLanguages)
	}
	if cfg.PDFFallbackDocconv {
		t.Error("PDFFallbackDocconv should be false")
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	if cfg := Load(); cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	if cfg := Load(); cfg.MaxUploadBytes != 52428800 {
		t.Errorf("negative MaxUploadBytes not reset: %d", cfg.MaxUploadBytes)
	}
}

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"por+eng", []string{"por", "eng"}},
		{"deu, fra", []string{"deu", "fra"}},
		{"eng", []string{"eng"}},
		{"++,", nil},
	}
	for _, tt := range tests {
		if got := splitLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLanguages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Port: "8000"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty port accepted")
	}

	cfg = Config{Port: "8000", TempDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Errorf("existing temp dir rejected: %v", err)
	}

	cfg.TempDir = cfg.TempDir + "/does-not-exist"
	if err := cfg.Validate(); err == nil {
		t.Error("missing temp dir accepted")
	}
}
