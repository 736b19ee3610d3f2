package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextExtractor reads plain text, decoding Latin-1 when the bytes are not
// valid UTF-8 (legacy exports are common in the source corpus).
type TextExtractor struct{}

func (e *TextExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	var content string
	if utf8.Valid(data) {
		content = string(data)
	} else {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decErr != nil {
			return Result{}, fmt.Errorf("decode text: %w", decErr)
		}
		content = string(decoded)
	}

	if len(strings.TrimSpace(content)) < minPlainText {
		return Result{}, fmt.Errorf("text file: %w", ErrInsufficientText)
	}
	return Result{Text: content, Method: "plain-text"}, nil
}
