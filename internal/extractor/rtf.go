package extractor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"code.sajari.com/docconv/v2"
	"golang.org/x/text/encoding/charmap"
)

// RTFExtractor converts RTF through docconv, with a naive control-word
// stripper as last resort for documents the converter rejects.
type RTFExtractor struct{}

func (e *RTFExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	res, convErr := docconv.ConvertPath(path)
	if convErr == nil && len(strings.TrimSpace(res.Body)) >= minConvertText {
		return Result{Text: res.Body, Method: "docconv-rtf"}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		decoded = data
	}

	text := stripRTF(string(decoded))
	if len(text) < minConvertText {
		if convErr != nil {
			return Result{}, fmt.Errorf("convert rtf: %w (fallback: %v)", convErr, ErrInsufficientText)
		}
		return Result{}, fmt.Errorf("rtf: %w", ErrInsufficientText)
	}
	return Result{Text: text, Method: "rtf-fallback"}, nil
}

var (
	rtfControlRe = regexp.MustCompile(`\\[a-z]+-?\d* ?`)
	rtfSpaceRe   = regexp.MustCompile(`\s+`)
)

// stripRTF removes control words and group braces, collapsing the remainder.
// It is intentionally crude: a salvage path, not a parser.
func stripRTF(s string) string {
	s = rtfControlRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("{", " ", "}", " ").Replace(s)
	s = rtfSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
