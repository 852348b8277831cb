package form

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ironsheep/id-extract-mcp/internal/extract"
)

// SheetName is the worksheet holding exported extractions.
const SheetName = "Extractions"

var sheetHeaders = []string{
	"Source",
	"Name",
	"Date of Birth",
	"Gender",
	"Address",
	"ID Number",
}

// Row is one exported extraction.
type Row struct {
	Source string              `json:"source"`
	Fields extract.FieldRecord `json:"fields"`
}

// WriteSheet writes rows as an XLSX workbook with a header row.
func WriteSheet(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, r := range rows {
		values := []string{
			r.Source,
			r.Fields.Name,
			r.Fields.DOB,
			r.Fields.Gender,
			r.Fields.Address,
			r.Fields.IDNumber,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			// Stored as strings so ID numbers and dates are never reformatted.
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return fmt.Errorf("xlsx row %d: %w", i+1, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 40) // source
	_ = f.SetColWidth(SheetName, "B", "B", 28) // name
	_ = f.SetColWidth(SheetName, "C", "D", 14)
	_ = f.SetColWidth(SheetName, "E", "E", 60) // address
	_ = f.SetColWidth(SheetName, "F", "F", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
