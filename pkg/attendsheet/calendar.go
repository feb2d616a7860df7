package attendsheet

import (
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// rangeLayout formats week bounds, e.g. 28.12.2024.
const rangeLayout = "02.01.2006"

// Calendar is the derived state of one load. It is never modified after
// Build returns, so it may be shared freely between goroutines.
type Calendar struct {
	grid *models.Grid

	// HeaderRow is the 0-based row carrying the weekday labels.
	HeaderRow int
	// IDColumn is the detected identifier column, -1 when none was found.
	IDColumn int
	// Weeks lists every complete week block in global order.
	Weeks []models.Week
	// Dates is the resolved date of every day column, in column order.
	Dates []models.ColumnDate
	// Sums holds the per-week attendance totals of every data row.
	Sums *models.SumTable

	nameCol, roleCol int
}

// WeekSummary is a week together with its printable range.
type WeekSummary struct {
	models.Week
	Label string `json:"label"`
}

// Sheet returns the worksheet name the calendar was built from.
func (c *Calendar) Sheet() string { return c.grid.Name }

// TotalWeeks returns the number of addressable weeks.
func (c *Calendar) TotalWeeks() int { return len(c.Weeks) }

// DataRows returns the number of rows below the header.
func (c *Calendar) DataRows() int { return max(c.grid.Len()-c.HeaderRow-1, 0) }

// Week returns week number n.
func (c *Calendar) Week(n int) (models.Week, error) {
	if n < 1 || n > len(c.Weeks) {
		return models.Week{}, weekOutOfRange(n, len(c.Weeks))
	}
	return c.Weeks[n-1], nil
}

// Summaries lists every week with its range label.
func (c *Calendar) Summaries() []WeekSummary {
	out := make([]WeekSummary, len(c.Weeks))
	for i, w := range c.Weeks {
		out[i] = WeekSummary{Week: w, Label: c.WeekRangeLabel(w.Number)}
	}
	return out
}

// WeeksOfMonth returns, ascending, the global numbers of the weeks whose
// start or end date falls in today's month and year.
func (c *Calendar) WeeksOfMonth(today time.Time) []int {
	y, m, _ := today.Date()
	inMonth := func(t time.Time) bool { return t.Year() == y && t.Month() == m }

	var out []int
	for _, w := range c.Weeks {
		if !w.Resolved() {
			continue
		}
		if inMonth(w.Start) || inMonth(w.End) {
			out = append(out, w.Number)
		}
	}
	return out
}

// CurrentWeek returns the local position within today's month and the global
// number of the week containing today. When no week contains today it picks
// the latest month week that already ended, then the month's last week.
func (c *Calendar) CurrentWeek(today time.Time) (local, global int, err error) {
	today = dateOf(today)
	month := c.WeeksOfMonth(today)
	if len(month) == 0 {
		return 0, 0, ErrUndetermined
	}

	for i, n := range month {
		if c.Weeks[n-1].Contains(today) {
			return i + 1, n, nil
		}
	}
	for i := len(month) - 1; i >= 0; i-- {
		if !c.Weeks[month[i]-1].End.After(today) {
			return i + 1, month[i], nil
		}
	}
	return len(month), month[len(month)-1], nil
}

// WeekDays returns the attendance total of row for the given week. Rows
// without an entry count zero days.
func (c *Calendar) WeekDays(row, week int) (float64, error) {
	if week < 1 || week > len(c.Weeks) {
		return 0, weekOutOfRange(week, len(c.Weeks))
	}
	sum, _ := c.Sums.At(week, row)
	return sum, nil
}

// WeekRangeLabel formats the week's bounds as dd.mm.yyyy–dd.mm.yyyy, or
// returns "" when the week is unknown or either bound is unresolved.
func (c *Calendar) WeekRangeLabel(week int) string {
	if week < 1 || week > len(c.Weeks) {
		return ""
	}
	w := c.Weeks[week-1]
	if !w.Resolved() {
		return ""
	}
	return w.Start.Format(rangeLayout) + "–" + w.End.Format(rangeLayout)
}

// RowForIdentifier scans the identifier column below the header and returns
// the first row whose identifier equals id.
func (c *Calendar) RowForIdentifier(id int64) (int, error) {
	if c.IDColumn < 0 {
		return 0, ErrIdentifierNotFound
	}
	for r := c.HeaderRow + 1; r < c.grid.Len(); r++ {
		if v, ok := parser.Identifier(c.grid.At(r, c.IDColumn)); ok && v == id {
			return r, nil
		}
	}
	return 0, ErrIdentifierNotFound
}

// Person returns the data row at position row.
func (c *Calendar) Person(row int) (models.Row, bool) {
	if row <= c.HeaderRow || row >= c.grid.Len() {
		return models.Row{}, false
	}
	p := models.Row{
		Position: row,
		Name:     c.grid.At(row, c.nameCol).String(),
		Role:     c.grid.At(row, c.roleCol).String(),
	}
	if c.IDColumn >= 0 {
		p.ID = c.grid.At(row, c.IDColumn)
	}
	return p, true
}
