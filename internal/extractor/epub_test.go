package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testContainerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const testOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <title>A Test Book</title>
  </metadata>
  <manifest>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="chapter2.xhtml" media-type="application/xhtml+xml"/>
    <item id="css" href="style.css" media-type="text/css"/>
  </manifest>
  <spine>
    <itemref idref="ch2"/>
    <itemref idref="ch1"/>
  </spine>
</package>`

func buildEPUB(t *testing.T, files map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	path := filepath.Join(t.TempDir(), "book.epub")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write epub: %v", err)
	}
	return path
}

func TestEPUBExtractor_SpineOrder(t *testing.T) {
	path := buildEPUB(t, map[string]string{
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/chapter1.xhtml":   `<html><body><p>First chapter body with enough words to count.</p></body></html>`,
		"OEBPS/chapter2.xhtml":   `<html><body><p>Second chapter body, referenced first in the spine.</p></body></html>`,
		"OEBPS/style.css":        `p { margin: 0 }`,
	})

	res, err := (&EPUBExtractor{}).Extract(context.Background(), path, "book.epub")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if res.Method != "epub-zip" {
		t.Errorf("Method = %q", res.Method)
	}
	if !strings.Contains(res.Text, "# A Test Book") {
		t.Errorf("missing title heading:\n%s", res.Text)
	}

	// Spine lists chapter2 before chapter1.
	second := strings.Index(res.Text, "Second chapter body")
	first := strings.Index(res.Text, "First chapter body")
	if second == -1 || first == -1 {
		t.Fatalf("chapter text missing:\n%s", res.Text)
	}
	if second > first {
		t.Error("chapters not in spine order")
	}
	if strings.Contains(res.Text, "margin") {
		t.Error("stylesheet content leaked into transcript")
	}
}

func TestEPUBExtractor_TooLittleText(t *testing.T) {
	path := buildEPUB(t, map[string]string{
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/chapter1.xhtml":   `<html><body><p>hi</p></body></html>`,
	})

	_, err := (&EPUBExtractor{}).Extract(context.Background(), path, "book.epub")
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("error = %v, want ErrInsufficientText", err)
	}
}

func TestEPUBExtractor_MissingContainer(t *testing.T) {
	path := buildEPUB(t, map[string]string{
		"OEBPS/chapter1.xhtml": `<html><body><p>orphan chapter</p></body></html>`,
	})

	_, err := (&EPUBExtractor{}).Extract(context.Background(), path, "book.epub")
	if err == nil {
		t.Fatal("expected error for archive without container.xml")
	}
}
