package parser

import (
	"errors"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// ErrHeaderNotFound indicates no row carries the seven weekday labels.
var ErrHeaderNotFound = errors.New("weekday header row not found")

// Header is the row that anchors week discovery.
type Header struct {
	// Row is the 0-based grid row index.
	Row int
	// Columns are all weekday-labelled columns in left-to-right order.
	Columns []int
}

// FindHeader returns the first row holding at least seven weekday labels.
func FindHeader(g *models.Grid) (Header, error) {
	for i := 0; i < g.Len(); i++ {
		var cols []int
		for j, c := range g.Rows[i] {
			if c.Kind == models.CellText && IsWeekday(c.Text) {
				cols = append(cols, j)
			}
		}
		if len(cols) >= models.DaysPerWeek {
			return Header{Row: i, Columns: cols}, nil
		}
	}
	return Header{}, ErrHeaderNotFound
}
