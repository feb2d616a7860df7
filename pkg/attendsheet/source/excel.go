package source

import (
	"context"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/xuri/excelize/v2"
)

// Excel reads one worksheet of a local .xlsx workbook.
type Excel struct {
	// Path is the workbook file.
	Path string
	// Sheet is the worksheet name; the first sheet when empty.
	Sheet string
	// Area restricts the cells read; zero reads the whole sheet.
	Area models.Area
}

// Fetch opens the workbook and reads the worksheet's raw cell values.
func (e *Excel) Fetch(ctx context.Context) (*models.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(e.Path)
	if err != nil {
		return nil, unavailable(err, "open %s", e.Path)
	}
	defer f.Close()

	sheet := e.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, unavailable(err, "worksheet %q not found in %s", sheet, e.Path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, unavailable(err, "read rows from %q", sheet)
	}
	return gridFromRows(sheet, rows, e.Area)
}
