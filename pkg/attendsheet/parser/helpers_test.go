package parser

import (
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// gridBuilder assembles small synthetic sheets for tests.
type gridBuilder struct {
	rows [][]models.Cell
}

func newGrid(rows, cols int) *gridBuilder {
	b := &gridBuilder{rows: make([][]models.Cell, rows)}
	for i := range b.rows {
		b.rows[i] = make([]models.Cell, cols)
	}
	return b
}

func (b *gridBuilder) set(r, c int, v any) *gridBuilder {
	b.rows[r][c] = ParseValue(v)
	return b
}

// header writes n consecutive week blocks of weekday labels starting at col.
func (b *gridBuilder) header(row, col, n int) *gridBuilder {
	for i := 0; i < n*models.DaysPerWeek; i++ {
		b.set(row, col+i, Weekdays[i%models.DaysPerWeek])
	}
	return b
}

func (b *gridBuilder) grid() *models.Grid {
	return models.NewGrid("test", b.rows)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
