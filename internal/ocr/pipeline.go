package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/id-extract-mcp/internal/imaging"
)

// Config holds the per-pipeline settings for document OCR.
type Config struct {
	// ScratchDir receives rendered page images. Defaults to os.TempDir().
	ScratchDir string

	// DPI is the page rendering resolution. Defaults to DefaultDPI.
	DPI int
}

// Pipeline runs pre-processing and OCR over images and documents.
//
// A Pipeline holds no per-request state and can serve concurrent requests
// as long as its Recognizer and Rasterizer can.
type Pipeline struct {
	recognizer Recognizer
	rasterizer Rasterizer
	scratchDir string
	dpi        int
	log        logrus.FieldLogger
}

// NewPipeline creates a pipeline from its capabilities. A nil log selects
// the logrus standard logger.
func NewPipeline(recognizer Recognizer, rasterizer Rasterizer, cfg Config, log logrus.FieldLogger) *Pipeline {
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		recognizer: recognizer,
		rasterizer: rasterizer,
		scratchDir: cfg.ScratchDir,
		dpi:        cfg.DPI,
		log:        log,
	}
}

// TextFromImage binarizes img and recognizes its text.
func (p *Pipeline) TextFromImage(ctx context.Context, img image.Image) (string, error) {
	return p.recognize(ctx, img, 0)
}

// TextFromImageFile decodes the image at path and recognizes its text.
func (p *Pipeline) TextFromImageFile(ctx context.Context, path string) (string, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return "", err
	}
	return p.recognize(ctx, img, 0)
}

// TextFromDocument recognizes every page of the document at path.
//
// Pages are processed strictly in order. Each page is rendered to its own
// file in the scratch directory, recognized, and the file is removed before
// the next page starts. The result is each page's text followed by a
// newline, concatenated in page order. The first failing page aborts the
// document with that page's error.
func (p *Pipeline) TextFromDocument(ctx context.Context, path string) (string, error) {
	start := time.Now()

	pages, err := p.rasterizer.PageCount(ctx, path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.scratchDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}

	log := p.log.WithFields(logrus.Fields{"path": path, "pages": pages, "dpi": p.dpi})
	log.Debug("recognizing document")

	var b strings.Builder
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := p.pageText(ctx, path, page)
		if err != nil {
			log.WithError(err).WithField("page", page).Warn("page recognition failed")
			return "", err
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("document recognized")
	return b.String(), nil
}

// TextFromFile recognizes a single input, choosing the document path for
// PDFs and the image path for everything else.
func (p *Pipeline) TextFromFile(ctx context.Context, path string) (string, error) {
	if IsDocument(path) {
		return p.TextFromDocument(ctx, path)
	}
	return p.TextFromImageFile(ctx, path)
}

// TextFromFiles recognizes each input in order and concatenates the results.
// Text from one input that does not end in a newline gets one, so the last
// line of a file never runs into the first line of the next.
func (p *Pipeline) TextFromFiles(ctx context.Context, paths ...string) (string, error) {
	var b strings.Builder
	for _, path := range paths {
		text, err := p.TextFromFile(ctx, path)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// pageText renders, recognizes and releases a single page.
func (p *Pipeline) pageText(ctx context.Context, path string, page int) (string, error) {
	artifact := filepath.Join(p.scratchDir, fmt.Sprintf("page-%s.png", uuid.NewString()))
	defer p.release(artifact)

	if err := p.rasterizer.RenderPage(ctx, path, page, p.dpi, artifact); err != nil {
		return "", &RecognitionError{Page: page, Err: err}
	}

	img, err := imaging.Load(artifact)
	if err != nil {
		return "", err
	}
	return p.recognize(ctx, img, page)
}

func (p *Pipeline) recognize(ctx context.Context, img image.Image, page int) (string, error) {
	text, err := p.recognizer.Recognize(ctx, imaging.Binarize(img))
	if err != nil {
		return "", &RecognitionError{Page: page, Err: err}
	}
	return text, nil
}

// release removes a page artifact. A missing file is fine: the rasterizer
// may have failed before writing it.
func (p *Pipeline) release(artifact string) {
	if err := os.Remove(artifact); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.log.WithError(err).WithField("path", artifact).Warn("failed to remove page image")
	}
}
