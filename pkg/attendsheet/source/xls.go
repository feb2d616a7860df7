package source

import (
	"context"
	"fmt"
	"os"

	"github.com/extrame/xls"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// XLS reads one worksheet of a legacy .xls workbook.
type XLS struct {
	// Path is the workbook file.
	Path string
	// Sheet is the worksheet name; the first sheet when empty.
	Sheet string
	// Charset is the workbook text encoding, "utf-8" when empty.
	Charset string
	// Area restricts the cells read; zero reads the whole sheet.
	Area models.Area
}

// Fetch opens the workbook and reads the worksheet.
func (x *XLS) Fetch(ctx context.Context) (g *models.Grid, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// The decoder panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, unavailable(fmt.Errorf("%v", r), "decode %s", x.Path)
		}
	}()

	charset := x.Charset
	if charset == "" {
		charset = "utf-8"
	}
	file, err := os.Open(x.Path)
	if err != nil {
		return nil, unavailable(err, "open %s", x.Path)
	}
	defer file.Close()

	wb, err := xls.OpenReader(file, charset)
	if err != nil {
		return nil, unavailable(err, "open %s", x.Path)
	}
	if wb == nil {
		return nil, unavailable(nil, "%s has no workbook stream", x.Path)
	}

	sheet := x.worksheet(wb)
	if sheet == nil {
		return nil, unavailable(nil, "worksheet %q not found in %s", x.Sheet, x.Path)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, readXLSRow(sheet, i))
	}
	return gridFromRows(sheet.Name, rows, x.Area)
}

// maxXLSCols is the BIFF8 column limit.
const maxXLSCols = 256

// readXLSRow returns the text of row i up to its last non-empty cell. Rows
// without cells come back nil; the decoder panics when asked for one.
func readXLSRow(sheet *xls.WorkSheet, i int) (cols []string) {
	defer func() {
		if recover() != nil {
			cols = nil
		}
	}()
	row := sheet.Row(i)
	if row == nil {
		return nil
	}
	// LastCol is zero for rows written without a ROW record, so every
	// column is read.
	cols = make([]string, maxXLSCols)
	last := -1
	for j := range cols {
		cols[j] = row.Col(j)
		if cols[j] != "" {
			last = j
		}
	}
	if last < 0 {
		return nil
	}
	return cols[:last+1]
}

func (x *XLS) worksheet(wb *xls.WorkBook) *xls.WorkSheet {
	if x.Sheet == "" {
		return wb.GetSheet(0)
	}
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == x.Sheet {
			return s
		}
	}
	return nil
}
