package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// HTMLExtractor converts HTML to markdown-shaped text, preserving headings,
// lists and emphasis as structural annotations in the transcript. The
// document's <title> becomes a level-1 heading when the body has none.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	text, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return Result{}, fmt.Errorf("convert html: %w", err)
	}
	text = strings.TrimSpace(text)

	if title := documentTitle(data); title != "" && !strings.HasPrefix(text, "# ") {
		text = "# " + title + "\n\n" + text
	}

	if len(text) < minConvertText {
		return Result{}, fmt.Errorf("html: %w", ErrInsufficientText)
	}
	return Result{Text: text, Method: "html-to-markdown"}, nil
}

// documentTitle pulls the <title> text out of the DOM; empty when absent or
// the document does not parse.
func documentTitle(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
