package extractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/rafaelvsj/docextract/internal/sniff"
)

type fakeExtractor struct {
	result Result
	err    error
	calls  int
	path   string
}

func (f *fakeExtractor) Extract(ctx context.Context, path, filename string) (Result, error) {
	f.calls++
	f.path = path
	return f.result, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatch_Success(t *testing.T) {
	fake := &fakeExtractor{result: Result{Text: "hello world", Method: "fake"}}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	res, format, err := d.Dispatch(context.Background(), []byte("hello world"), "note.txt")
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if format != sniff.FormatText {
		t.Errorf("format = %q, want %q", format, sniff.FormatText)
	}
	if res.Text != "hello world" || res.Method != "fake" {
		t.Errorf("unexpected result: %+v", res)
	}
	if fake.calls != 1 {
		t.Errorf("extractor called %d times, want 1", fake.calls)
	}
}

func TestDispatch_RemovesTempFile(t *testing.T) {
	fake := &fakeExtractor{result: Result{Text: "content", Method: "fake"}}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	if _, _, err := d.Dispatch(context.Background(), []byte("content"), "a.txt"); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if fake.path == "" {
		t.Fatal("extractor never saw a temp path")
	}
	if _, err := os.Stat(fake.path); !os.IsNotExist(err) {
		t.Errorf("temp file %s still exists after dispatch", fake.path)
	}
}

func TestDispatch_UnsupportedFormat(t *testing.T) {
	fake := &fakeExtractor{}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	_, format, err := d.Dispatch(context.Background(), []byte("%PDF-1.7 stuff"), "doc.pdf")
	if err == nil {
		t.Fatal("expected error for unregistered format")
	}
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %T, want *UnsupportedFormatError", err)
	}
	if format != sniff.FormatPDF || unsupported.Format != sniff.FormatPDF {
		t.Errorf("detected format = %q / %q, want pdf", format, unsupported.Format)
	}
	if len(unsupported.Supported) != 1 || unsupported.Supported[0] != "text" {
		t.Errorf("Supported = %v, want [text]", unsupported.Supported)
	}
	if fake.calls != 0 {
		t.Errorf("extractor invoked %d times for unsupported format", fake.calls)
	}
}

func TestDispatch_WrapsExtractorError(t *testing.T) {
	boom := errors.New("parser exploded")
	fake := &fakeExtractor{err: boom}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	_, _, err := d.Dispatch(context.Background(), []byte("content"), "a.txt")
	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("error = %T, want *ExtractionError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("wrapped error chain lost the cause: %v", err)
	}
	if extraction.Format != sniff.FormatText {
		t.Errorf("Format = %q, want text", extraction.Format)
	}
}

func TestDispatch_EmptyTextIsInsufficient(t *testing.T) {
	fake := &fakeExtractor{result: Result{Text: "   \n\t ", Method: "fake"}}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	_, _, err := d.Dispatch(context.Background(), []byte("content"), "a.txt")
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("error = %v, want ErrInsufficientText in chain", err)
	}
	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Errorf("error = %T, want *ExtractionError wrapper", err)
	}
}

func TestDispatch_TempFileKeepsExtension(t *testing.T) {
	fake := &fakeExtractor{result: Result{Text: "ok text", Method: "fake"}}
	reg := newRegistry()
	reg.register(sniff.FormatText, "fake", fake)
	d := NewDispatcher(reg, t.TempDir(), testLogger())

	if _, _, err := d.Dispatch(context.Background(), []byte("ok text"), "Report.TXT"); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if got := fake.path; len(got) < 4 || got[len(got)-4:] != ".txt" {
		t.Errorf("temp path %q does not keep the lowercased extension", got)
	}
}
