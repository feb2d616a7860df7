package parser

import "github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"

// SegmentWeeks splits the ordered day columns into weeks of seven and numbers
// them 1..N. A trailing incomplete chunk is dropped.
func SegmentWeeks(cols []int) []models.Week {
	n := len(cols) / models.DaysPerWeek
	weeks := make([]models.Week, n)
	for i := range weeks {
		weeks[i].Number = i + 1
		copy(weeks[i].Columns[:], cols[i*models.DaysPerWeek:(i+1)*models.DaysPerWeek])
	}
	return weeks
}

// DayColumns flattens weeks back into their ordered day columns.
func DayColumns(weeks []models.Week) []int {
	cols := make([]int, 0, len(weeks)*models.DaysPerWeek)
	for _, w := range weeks {
		cols = append(cols, w.Columns[:]...)
	}
	return cols
}

// AssignRanges sets each week's Start and End to the earliest and latest
// resolved date among its columns.
func AssignRanges(weeks []models.Week, dates []models.ColumnDate) {
	byCol := make(map[int]models.ColumnDate, len(dates))
	for _, d := range dates {
		byCol[d.Col] = d
	}
	for i := range weeks {
		w := &weeks[i]
		for _, c := range w.Columns {
			d, ok := byCol[c]
			if !ok || !d.Resolved() {
				continue
			}
			if w.Start.IsZero() || d.Date.Before(w.Start) {
				w.Start = d.Date
			}
			if w.End.IsZero() || d.Date.After(w.End) {
				w.End = d.Date
			}
		}
	}
}
