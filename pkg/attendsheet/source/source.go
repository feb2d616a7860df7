// Package source reads attendance sheets into grids.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// ErrUnavailable indicates the sheet could not be reached: missing
// credentials or file, network failure, or an unknown worksheet.
var ErrUnavailable = errors.New("sheet source unavailable")

// ErrEmptySheet indicates the worksheet holds no values.
var ErrEmptySheet = errors.New("sheet is empty")

// Source fetches a fresh grid snapshot of the attendance sheet.
type Source interface {
	Fetch(ctx context.Context) (*models.Grid, error)
}

// Func adapts an ordinary function to Source.
type Func func(ctx context.Context) (*models.Grid, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) (*models.Grid, error) { return f(ctx) }

// Static returns a Source that always serves g.
func Static(g *models.Grid) Source {
	return Func(func(ctx context.Context) (*models.Grid, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.Empty() {
			return nil, ErrEmptySheet
		}
		return g, nil
	})
}

// unavailable wraps err as ErrUnavailable with context.
func unavailable(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, msg, err)
}

// gridFromRows clips raw rows to area and coerces them into a grid.
func gridFromRows(sheet string, rows [][]string, area models.Area) (*models.Grid, error) {
	g := models.NewGrid(sheet, parser.ParseRows(area.Clip(rows)))
	if g.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}
	return g, nil
}
