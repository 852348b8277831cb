package form

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ironsheep/id-extract-mcp/internal/extract"
)

// Default texts printed above and below the fields.
const (
	DefaultTitle  = "Government Service Application Form"
	DefaultFooter = "Auto-filled and verified from the submitted identity document"
)

// Options controls the fixed texts of the rendered form.
type Options struct {
	Title  string
	Footer string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Footer == "" {
		o.Footer = DefaultFooter
	}
	return o
}

// formLine places one labelled field. Baselines are measured in points from
// the bottom of the page.
type formLine struct {
	label    string
	key      string
	baseline float64
}

var formLines = []formLine{
	{"Name", extract.KeyName, 750},
	{"DOB", extract.KeyDOB, 720},
	{"Gender", extract.KeyGender, 690},
	{"Address", extract.KeyAddress, 660},
	{"ID Number", extract.KeyIDNumber, 630},
}

const (
	marginX       = 50
	titleX        = 150
	titleBaseline = 800
	footBaseline  = 580
)

// RenderPDF writes a one-page A4 form with values filled in. Missing keys
// render as empty values.
func RenderPDF(w io.Writer, values map[string]string, opts Options) error {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	// Core fonts are cp1252; the translator maps what it can.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(titleX, pageHeight-titleBaseline, tr(opts.Title))

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range formLines {
		text := fmt.Sprintf("%s: %s", line.label, values[line.key])
		pdf.Text(marginX, pageHeight-line.baseline, tr(text))
	}
	pdf.Text(marginX, pageHeight-footBaseline, tr(opts.Footer))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}
