package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"aansluitintake/internal/domain"
)

const sheetName = "Aansluitingen"

// WriteXLSX renders the export workbook to w. One sheet, header row plus one
// row per connection, same columns as the CSV export.
func WriteXLSX(w io.Writer, conns []domain.Connection) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for i, label := range Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			return err
		}
	}

	for r := range conns {
		row := Row(&conns[r])
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
