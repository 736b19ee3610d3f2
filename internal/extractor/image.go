package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ImageExtractor OCRs raster images with Tesseract. A fresh client per
// extraction keeps concurrent requests independent.
type ImageExtractor struct {
	Languages []string
}

func (e *ImageExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(e.Languages) > 0 {
		if err := client.SetLanguage(e.Languages...); err != nil {
			return Result{}, fmt.Errorf("set ocr languages: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return Result{}, fmt.Errorf("set page segmentation: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return Result{}, fmt.Errorf("load image: %w", err)
	}

	raw, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr: %w", err)
	}

	text := filterOCRNoise(raw)
	if len(strings.TrimSpace(text)) < minOCRText {
		return Result{}, fmt.Errorf("ocr: %w", ErrInsufficientText)
	}
	return Result{Text: text, Method: "tesseract-ocr", OCRUsed: true}, nil
}

// filterOCRNoise drops one- and two-character lines, which are almost always
// recognition artifacts.
func filterOCRNoise(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 2 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
