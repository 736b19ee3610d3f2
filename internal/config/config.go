package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Extraction
	TempDir            string
	OCRLanguages       []string
	PDFFallbackDocconv bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		TempDir:            os.Getenv("TEMP_DIR"),
		OCRLanguages:       splitLanguages(envOr("OCR_LANGUAGES", "por+eng")),
		PDFFallbackDocconv: envBool("PDF_FALLBACK_DOCCONV", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if len(cfg.OCRLanguages) == 0 {
		cfg.OCRLanguages = []string{"por", "eng"}
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.TempDir != "" {
		info, err := os.Stat(c.TempDir)
		if err != nil {
			return fmt.Errorf("TEMP_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("TEMP_DIR %s is not a directory", c.TempDir)
		}
	}
	return nil
}

// splitLanguages accepts the tesseract "por+eng" convention as well as
// comma-separated lists.
func splitLanguages(v string) []string {
	var langs []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == '+' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part != "" {
			langs = append(langs, part)
		}
	}
	return langs
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
