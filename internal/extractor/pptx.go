package extractor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"code.sajari.com/docconv/v2"
)

// PPTXExtractor walks the slide XMLs inside the container in deck order,
// annotating slide boundaries, and falls back to docconv when the walk
// yields too little text.
type PPTXExtractor struct{}

func (e *PPTXExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	text, walkErr := extractSlideText(path)
	if walkErr == nil && len(strings.TrimSpace(text)) >= minConvertText {
		return Result{Text: text, Method: "pptx-slides"}, nil
	}

	res, convErr := docconv.ConvertPath(path)
	if convErr != nil {
		if walkErr != nil {
			return Result{}, fmt.Errorf("read pptx: %w (fallback: %v)", walkErr, convErr)
		}
		return Result{}, fmt.Errorf("convert pptx: %w", convErr)
	}
	body := strings.TrimSpace(res.Body)
	if len(body) < minConvertText {
		return Result{}, fmt.Errorf("pptx: %w", ErrInsufficientText)
	}
	return Result{Text: body, Method: "docconv-pptx"}, nil
}

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractSlideText reads ppt/slides/slideN.xml entries in slide-number order,
// concatenating their text runs under a slide marker each.
func extractSlideText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}
	defer zr.Close()

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		m := slideNameRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{num: n, file: f})
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("pptx has no slides")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var buf strings.Builder
	for _, s := range slides {
		text, err := slideRuns(s.file)
		if err != nil || text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		fmt.Fprintf(&buf, "--- Slide %d ---\n", s.num)
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// slideRuns collects the character data of every a:t element in one slide.
func slideRuns(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var runs []string
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			inText = false
		case xml.CharData:
			if inText {
				if s := strings.TrimSpace(string(t)); s != "" {
					runs = append(runs, s)
				}
			}
		}
	}
	return strings.Join(runs, "\n"), nil
}
