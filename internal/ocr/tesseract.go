package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/id-extract-mcp/internal/imaging"
)

// DefaultLanguages are the Tesseract language codes enabled for identity
// documents: English, Hindi and Marathi.
var DefaultLanguages = []string{"eng", "hin", "mar"}

// Recognizer produces text from a single image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Tesseract is a Recognizer backed by the Tesseract OCR engine.
//
// Tesseract runs in its default engine mode, which selects the LSTM
// recognizer whenever LSTM models are installed for the requested languages.
type Tesseract struct {
	// Languages are enabled together for every image.
	Languages []string

	// PageSegMode controls layout analysis. Defaults to PSM_SINGLE_BLOCK.
	PageSegMode gosseract.PageSegMode

	// TessdataPrefix overrides the language data directory when set.
	TessdataPrefix string
}

// NewTesseract creates a recognizer for the given languages. An empty
// language list selects DefaultLanguages.
func NewTesseract(languages []string, tessdataPrefix string) *Tesseract {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Tesseract{
		Languages:      append([]string(nil), languages...),
		PageSegMode:    gosseract.PSM_SINGLE_BLOCK,
		TessdataPrefix: tessdataPrefix,
	}
}

// Recognize performs OCR on img and returns the recognized text.
//
// gosseract cannot be interrupted once recognition starts, so ctx is only
// checked before the engine is invoked.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(t.Languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetPageSegMode(t.PageSegMode); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// TesseractVersion returns the installed Tesseract version.
func TesseractVersion() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
