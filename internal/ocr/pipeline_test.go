package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/id-extract-mcp/internal/imaging"
)

// fakeRecognizer returns canned texts in call order.
type fakeRecognizer struct {
	texts  []string
	failAt int // 1-based call number that fails; 0 never fails
	calls  int
	images []image.Image
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	f.calls++
	f.images = append(f.images, img)
	if f.failAt == f.calls {
		return "", errors.New("engine exploded")
	}
	if f.calls <= len(f.texts) {
		return f.texts[f.calls-1], nil
	}
	return "", nil
}

// fakeRasterizer writes a small PNG for every rendered page and records
// what was rendered and whether earlier pages were still on disk.
type fakeRasterizer struct {
	t            *testing.T
	pages        int
	countErr     error
	failPage     int
	rendered     []int
	artifacts    []string
	leakedBefore []string
}

func (f *fakeRasterizer) PageCount(ctx context.Context, path string) (int, error) {
	return f.pages, f.countErr
}

func (f *fakeRasterizer) RenderPage(ctx context.Context, path string, page, dpi int, dst string) error {
	f.rendered = append(f.rendered, page)
	f.artifacts = append(f.artifacts, dst)

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(dst), "page-*.png"))
	f.leakedBefore = append(f.leakedBefore, matches...)

	if dpi != DefaultDPI {
		f.t.Errorf("RenderPage dpi: got %d, want %d", dpi, DefaultDPI)
	}
	if page == f.failPage {
		return errors.New("cannot render")
	}
	writePNG(f.t, dst, 30, 20)
	return nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("leaked page images: %v", matches)
	}
}

func newTestPipeline(t *testing.T, rec Recognizer, rast Rasterizer) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	return NewPipeline(rec, rast, Config{ScratchDir: dir}, nil), dir
}

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline(&fakeRecognizer{}, &fakeRasterizer{}, Config{}, nil)
	if p.scratchDir != os.TempDir() {
		t.Errorf("scratchDir: got %s, want %s", p.scratchDir, os.TempDir())
	}
	if p.dpi != DefaultDPI {
		t.Errorf("dpi: got %d, want %d", p.dpi, DefaultDPI)
	}
	if p.log == nil {
		t.Error("log should default to the standard logger")
	}
}

func TestTextFromDocument_PageOrder(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"page one", "page two", "page three"}}
	rast := &fakeRasterizer{t: t, pages: 3}
	p, dir := newTestPipeline(t, rec, rast)

	text, err := p.TextFromDocument(context.Background(), "card.pdf")
	if err != nil {
		t.Fatalf("TextFromDocument failed: %v", err)
	}

	want := "page one\npage two\npage three\n"
	if text != want {
		t.Errorf("text: got %q, want %q", text, want)
	}
	if fmt.Sprint(rast.rendered) != "[1 2 3]" {
		t.Errorf("rendered pages: got %v, want [1 2 3]", rast.rendered)
	}
	assertNoArtifacts(t, dir)
}

func TestTextFromDocument_PagesAreSequential(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"a", "b", "c", "d"}}
	rast := &fakeRasterizer{t: t, pages: 4}
	p, _ := newTestPipeline(t, rec, rast)

	if _, err := p.TextFromDocument(context.Background(), "card.pdf"); err != nil {
		t.Fatalf("TextFromDocument failed: %v", err)
	}

	if len(rast.leakedBefore) != 0 {
		t.Errorf("earlier page images still present when rendering next page: %v", rast.leakedBefore)
	}

	seen := make(map[string]bool)
	for _, a := range rast.artifacts {
		if seen[a] {
			t.Errorf("artifact name reused: %s", a)
		}
		seen[a] = true
	}
}

func TestTextFromDocument_RecognitionFailureCleansUp(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"first"}, failAt: 2}
	rast := &fakeRasterizer{t: t, pages: 3}
	p, dir := newTestPipeline(t, rec, rast)

	_, err := p.TextFromDocument(context.Background(), "card.pdf")
	if err == nil {
		t.Fatal("expected an error from the failing page")
	}

	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("error should be *RecognitionError, got %T: %v", err, err)
	}
	if recErr.Page != 2 {
		t.Errorf("Page: got %d, want 2", recErr.Page)
	}
	if fmt.Sprint(rast.rendered) != "[1 2]" {
		t.Errorf("rendered pages: got %v, want [1 2]", rast.rendered)
	}
	assertNoArtifacts(t, dir)
}

func TestTextFromDocument_RenderFailure(t *testing.T) {
	rec := &fakeRecognizer{}
	rast := &fakeRasterizer{t: t, pages: 2, failPage: 1}
	p, dir := newTestPipeline(t, rec, rast)

	_, err := p.TextFromDocument(context.Background(), "card.pdf")

	var recErr *RecognitionError
	if !errors.As(err, &recErr) || recErr.Page != 1 {
		t.Fatalf("expected RecognitionError on page 1, got %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("recognizer should not run for an unrendered page, got %d calls", rec.calls)
	}
	assertNoArtifacts(t, dir)
}

func TestTextFromDocument_PageCountError(t *testing.T) {
	countErr := errors.New("not a pdf")
	p, _ := newTestPipeline(t, &fakeRecognizer{}, &fakeRasterizer{t: t, countErr: countErr})

	_, err := p.TextFromDocument(context.Background(), "card.pdf")
	if !errors.Is(err, countErr) {
		t.Errorf("expected page count error, got %v", err)
	}
}

func TestTextFromDocument_NoPages(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeRecognizer{}, &fakeRasterizer{t: t, pages: 0})

	text, err := p.TextFromDocument(context.Background(), "empty.pdf")
	if err != nil {
		t.Fatalf("TextFromDocument failed: %v", err)
	}
	if text != "" {
		t.Errorf("text: got %q, want empty", text)
	}
}

func TestTextFromDocument_CancelledContext(t *testing.T) {
	rast := &fakeRasterizer{t: t, pages: 2}
	p, _ := newTestPipeline(t, &fakeRecognizer{}, rast)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.TextFromDocument(ctx, "card.pdf")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(rast.rendered) != 0 {
		t.Errorf("no page should render after cancellation, got %v", rast.rendered)
	}
}

func TestTextFromImage_Binarizes(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"hello"}}
	p, _ := newTestPipeline(t, rec, &fakeRasterizer{t: t})

	src := image.NewRGBA(image.Rect(0, 0, 40, 25))
	text, err := p.TextFromImage(context.Background(), src)
	if err != nil {
		t.Fatalf("TextFromImage failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("text: got %q, want hello", text)
	}

	gray, ok := rec.images[0].(*image.Gray)
	if !ok {
		t.Fatalf("recognizer received %T, want *image.Gray", rec.images[0])
	}
	if gray.Bounds().Dx() != 40 || gray.Bounds().Dy() != 25 {
		t.Errorf("binarized size: got %v", gray.Bounds())
	}
}

func TestTextFromImage_RecognitionError(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeRecognizer{failAt: 1}, &fakeRasterizer{t: t})

	_, err := p.TextFromImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 5, 5)))
	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected *RecognitionError, got %v", err)
	}
	if recErr.Page != 0 {
		t.Errorf("Page: got %d, want 0 for a standalone image", recErr.Page)
	}
	if !strings.Contains(err.Error(), "engine exploded") {
		t.Errorf("error should carry the cause: %v", err)
	}
}

func TestTextFromImageFile_DecodeError(t *testing.T) {
	rec := &fakeRecognizer{}
	p, _ := newTestPipeline(t, rec, &fakeRasterizer{t: t})

	_, err := p.TextFromImageFile(context.Background(), "/nonexistent/card.png")
	var decodeErr *imaging.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *imaging.DecodeError, got %v", err)
	}
	if rec.calls != 0 {
		t.Error("recognizer should not run when decoding fails")
	}
}

func TestTextFromFiles_Concatenates(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "front.png")
	writePNG(t, imgPath, 20, 20)

	rec := &fakeRecognizer{texts: []string{"front side", "back page 1\n", "back page 2"}}
	rast := &fakeRasterizer{t: t, pages: 2}
	p := NewPipeline(rec, rast, Config{ScratchDir: dir}, nil)

	text, err := p.TextFromFiles(context.Background(), imgPath, filepath.Join(dir, "back.PDF"))
	if err != nil {
		t.Fatalf("TextFromFiles failed: %v", err)
	}

	want := "front side\nback page 1\n\nback page 2\n"
	if text != want {
		t.Errorf("text: got %q, want %q", text, want)
	}
	if len(rast.rendered) != 2 {
		t.Errorf("PDF should go through the rasterizer, rendered %v", rast.rendered)
	}
}

func TestRecognitionError_Message(t *testing.T) {
	tests := []struct {
		page int
		want string
	}{
		{0, "recognition failed: boom"},
		{3, "recognition failed on page 3: boom"},
	}
	for _, tt := range tests {
		err := &RecognitionError{Page: tt.page, Err: errors.New("boom")}
		if err.Error() != tt.want {
			t.Errorf("got %q, want %q", err.Error(), tt.want)
		}
	}
}
