package sample

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName names the generated worksheet.
const DefaultSheetName = "табель"

// WriteFile saves the sheet as an .xlsx workbook.
func (s Sheet) WriteFile(path, sheet string) error {
	f, err := s.workbook(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteToBytes returns the sheet as .xlsx bytes.
func (s Sheet) WriteToBytes(sheet string) ([]byte, error) {
	f, err := s.workbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func (s Sheet) workbook(sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRows(f, sheet, s.Rows()); err != nil {
		f.Close()
		return nil, fmt.Errorf("write rows: %w", err)
	}
	if err := styleHeader(f, sheet, len(s.Rows()[HeaderRow])); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}
	return f, nil
}

// writeRows stores numeric text as numbers so readers see typed cells.
func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				err = f.SetCellFloat(sheet, cell, n, -1, 64)
				if err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, HeaderRow+1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, HeaderRow+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 14)
}
