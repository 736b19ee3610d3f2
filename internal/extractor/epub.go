package extractor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// EPUBExtractor reads EPUB containers: META-INF/container.xml names the OPF
// package, whose spine orders the XHTML chapter documents. Chapter markup is
// stripped with a strict sanitizer, leaving the text content.
type EPUBExtractor struct{}

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Title string `xml:"metadata>title"`
	Items []struct {
		ID        string `xml:"id,attr"`
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
	Refs []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

func (e *EPUBExtractor) Extract(ctx context.Context, filePath, filename string) (Result, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	opfPath, err := findOPFPath(&zr.Reader)
	if err != nil {
		return Result{}, err
	}

	opfData, err := readZipFile(&zr.Reader, opfPath)
	if err != nil {
		return Result{}, fmt.Errorf("read package document: %w", err)
	}
	var pkg epubPackage
	if err := xml.Unmarshal(opfData, &pkg); err != nil {
		return Result{}, fmt.Errorf("parse package document: %w", err)
	}

	policy := bluemonday.StrictPolicy()
	var parts []string
	if t := strings.TrimSpace(pkg.Title); t != "" {
		parts = append(parts, "# "+t)
	}

	base := path.Dir(opfPath)
	for _, href := range chapterHrefs(pkg) {
		data, err := readZipFile(&zr.Reader, path.Join(base, href))
		if err != nil {
			continue
		}
		text := chapterText(policy, data)
		if text == "" {
			continue
		}
		parts = append(parts, "## "+href, text)
	}

	full := strings.Join(parts, "\n\n")
	if len(strings.TrimSpace(full)) < minEPUBText {
		return Result{}, fmt.Errorf("epub: %w", ErrInsufficientText)
	}
	return Result{Text: full, Method: "epub-zip"}, nil
}

// chapterHrefs resolves the spine order against the manifest; without a
// spine, every HTML manifest item is taken in manifest order.
func chapterHrefs(pkg epubPackage) []string {
	htmlItem := func(mediaType, href string) bool {
		return strings.Contains(mediaType, "html") ||
			strings.HasSuffix(href, ".xhtml") || strings.HasSuffix(href, ".html")
	}

	byID := make(map[string]string, len(pkg.Items))
	for _, item := range pkg.Items {
		if htmlItem(item.MediaType, item.Href) {
			byID[item.ID] = item.Href
		}
	}

	var hrefs []string
	for _, ref := range pkg.Refs {
		if href, ok := byID[ref.IDRef]; ok {
			hrefs = append(hrefs, href)
		}
	}
	if len(hrefs) > 0 {
		return hrefs
	}
	for _, item := range pkg.Items {
		if htmlItem(item.MediaType, item.Href) {
			hrefs = append(hrefs, item.Href)
		}
	}
	return hrefs
}

// chapterText strips tags, decodes entities and drops navigation stubs
// (lines of three characters or fewer).
func chapterText(policy *bluemonday.Policy, data []byte) string {
	text := html.UnescapeString(policy.Sanitize(string(data)))
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 3 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func findOPFPath(zr *zip.Reader) (string, error) {
	data, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", fmt.Errorf("read container.xml: %w", err)
	}
	var c epubContainer
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("parse container.xml: %w", err)
	}
	if len(c.Rootfiles) == 0 || c.Rootfiles[0].FullPath == "" {
		return "", fmt.Errorf("container.xml names no rootfile")
	}
	return c.Rootfiles[0].FullPath, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not in archive", name)
}
