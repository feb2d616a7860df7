package models

import "time"

// DaysPerWeek is the size of one week block (Saturday through Friday).
const DaysPerWeek = 7

// ColumnDate is one entry of the resolved date sequence.
type ColumnDate struct {
	// Col is the 0-based day column index.
	Col int `json:"col"`
	// Date is the calendar date at midnight UTC; zero when it could not be inferred.
	Date time.Time `json:"date"`
}

// Resolved reports whether a date was inferred for the column.
func (cd ColumnDate) Resolved() bool { return !cd.Date.IsZero() }

// Week is a block of seven day columns.
type Week struct {
	// Number is the 1-based global week number in left-to-right order.
	Number int `json:"number"`
	// Columns are the seven day column indices, Saturday first.
	Columns [DaysPerWeek]int `json:"columns"`
	// Start is the earliest resolved date in the week (zero if none).
	Start time.Time `json:"start"`
	// End is the latest resolved date in the week (zero if none).
	End time.Time `json:"end"`
}

// Resolved reports whether both bounds of the week are known.
func (w Week) Resolved() bool { return !w.Start.IsZero() && !w.End.IsZero() }

// Contains reports whether day lies within [Start, End].
func (w Week) Contains(day time.Time) bool {
	return w.Resolved() && !day.Before(w.Start) && !day.After(w.End)
}

// SumTable holds the precomputed per-week attendance totals for every data row.
type SumTable struct {
	// FirstRow is the grid row index of the first data row.
	FirstRow int `json:"first_row"`
	// Sums is indexed [week-1][row-FirstRow].
	Sums [][]float64 `json:"sums"`
}

// At returns the sum for (week, row). ok is false when there is no entry.
func (t *SumTable) At(week, row int) (sum float64, ok bool) {
	if t == nil || week < 1 || week > len(t.Sums) {
		return 0, false
	}
	sums := t.Sums[week-1]
	i := row - t.FirstRow
	if i < 0 || i >= len(sums) {
		return 0, false
	}
	return sums[i], true
}

// Weeks returns the number of weeks covered.
func (t *SumTable) Weeks() int {
	if t == nil {
		return 0
	}
	return len(t.Sums)
}

// Row is a transient view of one data record in the current grid.
type Row struct {
	// Position is the 0-based grid row index.
	Position int `json:"position"`
	// ID is the identifier cell, absent when the row has none.
	ID Cell `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Role is the role or position text.
	Role string `json:"role,omitempty"`
}
