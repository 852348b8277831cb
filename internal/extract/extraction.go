package extract

import (
	"context"
	"fmt"
)

// TextSource produces OCR text for a set of input files, in order.
// *ocr.Pipeline satisfies it.
type TextSource interface {
	TextFromFiles(ctx context.Context, paths ...string) (string, error)
}

// Extraction is the result of running OCR and parsing over one or more
// files describing the same person, such as the front and back of a card.
type Extraction struct {
	Fields  FieldRecord `json:"fields"`
	RawText string      `json:"raw_text"`
	Sources []string    `json:"sources"`
}

// FromFiles recognizes paths through src and parses the merged text.
func FromFiles(ctx context.Context, src TextSource, paths ...string) (*Extraction, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	text, err := src.TextFromFiles(ctx, paths...)
	if err != nil {
		return nil, err
	}
	return &Extraction{
		Fields:  Parse(text),
		RawText: text,
		Sources: append([]string(nil), paths...),
	}, nil
}
