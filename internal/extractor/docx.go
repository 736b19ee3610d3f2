package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor reads Word documents with go-docx and falls back to docconv
// when the paragraph walk yields too little text (documents built mostly
// from tables or text boxes).
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	text, parseErr := extractDocxText(path)
	if parseErr == nil && len(strings.TrimSpace(text)) >= minDocxText {
		return Result{Text: text, Method: "go-docx"}, nil
	}

	res, convErr := docconv.ConvertPath(path)
	if convErr != nil {
		if parseErr != nil {
			return Result{}, fmt.Errorf("parse docx: %w (fallback: %v)", parseErr, convErr)
		}
		return Result{}, fmt.Errorf("docx fallback: %w", convErr)
	}
	if len(strings.TrimSpace(res.Body)) < minConvertText {
		return Result{}, fmt.Errorf("docx: %w", ErrInsufficientText)
	}
	return Result{Text: res.Body, Method: "docconv"}, nil
}

func extractDocxText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if t := paragraphText(para); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
