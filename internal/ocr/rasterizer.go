package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultDPI is the resolution documents are rendered at before OCR.
const DefaultDPI = 300

// Rasterizer turns the pages of a document into image files.
type Rasterizer interface {
	// PageCount reports how many pages the document at path has.
	PageCount(ctx context.Context, path string) (int, error)

	// RenderPage renders the 1-based page of the document at path to a PNG
	// file at dst.
	RenderPage(ctx context.Context, path string, page, dpi int, dst string) error
}

// Pdftoppm is a Rasterizer for PDF documents. Pages are counted with pdfcpu
// and rendered by the pdftoppm binary from poppler-utils.
type Pdftoppm struct {
	// Binary is the pdftoppm executable name or path.
	Binary string

	Runner Runner
}

// NewPdftoppm creates a rasterizer that invokes binary through runner.
// An empty binary selects "pdftoppm"; a nil runner selects ExecRunner.
func NewPdftoppm(binary string, runner Runner) *Pdftoppm {
	if binary == "" {
		binary = "pdftoppm"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Pdftoppm{Binary: binary, Runner: runner}
}

// PageCount reads the page count from the PDF at path.
func (p *Pdftoppm) PageCount(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return n, nil
}

// RenderPage renders one page with
//
//	pdftoppm -png -r <dpi> -f <page> -l <page> -singlefile <path> <prefix>
//
// pdftoppm appends ".png" to the prefix itself, so dst must end in ".png".
func (p *Pdftoppm) RenderPage(ctx context.Context, path string, page, dpi int, dst string) error {
	if filepath.Ext(dst) != ".png" {
		return fmt.Errorf("render target %s must have a .png extension", dst)
	}
	prefix := strings.TrimSuffix(dst, ".png")

	_, stderr, err := p.Runner.Run(ctx, p.Binary,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		path, prefix,
	)
	if err != nil {
		return fmt.Errorf("pdftoppm page %d: %w: %s", page, err, strings.TrimSpace(string(stderr)))
	}

	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}
	return nil
}
