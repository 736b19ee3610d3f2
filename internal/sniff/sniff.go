// Package sniff classifies raw document bytes into a canonical format.
package sniff

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies a document container/encoding.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatPPTX    Format = "pptx"
	FormatHTML    Format = "html"
	FormatText    Format = "text"
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatTIFF    Format = "tiff"
	FormatBMP     Format = "bmp"
	FormatEPUB    Format = "epub"
	FormatRTF     Format = "rtf"
	FormatUnknown Format = "unknown"
)

// mimeTypes maps each format to its wire MIME identifier.
var mimeTypes = map[Format]string{
	FormatPDF:     "application/pdf",
	FormatDOCX:    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPPTX:    "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	FormatHTML:    "text/html",
	FormatText:    "text/plain",
	FormatJPEG:    "image/jpeg",
	FormatPNG:     "image/png",
	FormatTIFF:    "image/tiff",
	FormatBMP:     "image/bmp",
	FormatEPUB:    "application/epub+zip",
	FormatRTF:     "application/rtf",
	FormatUnknown: "application/octet-stream",
}

// MIME returns the MIME identifier for the format.
func (f Format) MIME() string {
	if m, ok := mimeTypes[f]; ok {
		return m
	}
	return mimeTypes[FormatUnknown]
}

// extFormats maps file extensions to formats when magic numbers are inconclusive.
var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".pptx": FormatPPTX,
	".txt":  FormatText,
	".text": FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".rtf":  FormatRTF,
	".epub": FormatEPUB,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".tiff": FormatTIFF,
	".tif":  FormatTIFF,
	".bmp":  FormatBMP,
}

// Detect classifies data + filename into a Format. It never fails; inputs
// matching nothing come back as FormatUnknown.
//
// Magic numbers win over extensions. ZIP-based containers (docx, pptx, epub)
// share the same signature and are disambiguated by extension; ZIP bytes with
// any other extension fall through to the extension table, so "archive.zip"
// and extensionless ZIPs come back unknown while ZIP bytes named "report.pdf"
// follow the extension.
func Detect(data []byte, filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK")):
		switch ext {
		case ".docx":
			return FormatDOCX
		case ".pptx":
			return FormatPPTX
		case ".epub":
			return FormatEPUB
		}
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return FormatTIFF
	case bytes.HasPrefix(data, []byte(`{\rtf`)):
		return FormatRTF
	case looksLikeHTML(data):
		return FormatHTML
	}

	if f, ok := extFormats[ext]; ok {
		return f
	}
	return FormatUnknown
}

// looksLikeHTML scans the head of the document for an html or doctype tag.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 2000 {
		head = head[:2000]
	}
	head = bytes.ToLower(head)
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!doctype"))
}
