package parser

import (
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// dateState is the inference state threaded through one ResolveDates pass.
type dateState struct {
	year      int
	prevMonth time.Month // 0 while unknown
	prevDay   int        // 0 while unknown
	last      time.Time
}

// ResolveDates assigns a calendar date to every day column in one left-to-right
// pass. Months come from month labels, or are advanced when the day number
// drops (31 → 1). Years advance on December → January and whenever a date would
// fall before the previous one, so the resolved dates never decrease.
// Columns whose date cannot be inferred are returned with a zero Date.
func ResolveDates(g *models.Grid, headerRow int, cols []int, ctx MonthContext, baseYear int) []models.ColumnDate {
	if len(cols) == 0 {
		return nil
	}
	out := make([]models.ColumnDate, 0, len(cols))
	st := dateState{year: baseYear}
	fallback := ctx.fallback(cols[0], cols[min(len(cols), models.DaysPerWeek)-1])

	prevCol := -1
	for _, c := range cols {
		day, hasDay := dayNumberAt(g, headerRow, c)

		var month time.Month
		switch label, labelled := ctx.LabelIn(prevCol, c); {
		case labelled:
			if st.prevMonth != 0 && label < st.prevMonth {
				st.year++
			}
			month = label
		case st.prevMonth == 0:
			month = fallback
		case st.prevDay != 0 && hasDay && day < st.prevDay:
			month = st.prevMonth%12 + 1
			if month == time.January {
				st.year++
			}
		default:
			month = st.prevMonth
		}

		if month != 0 {
			st.prevMonth = month
		}
		if hasDay {
			st.prevDay = day
		}
		prevCol = c

		cd := models.ColumnDate{Col: c}
		if hasDay && month != 0 {
			cd.Date = st.assign(month, day)
		}
		out = append(out, cd)
	}
	return out
}

// assign builds the date for (month, day) in the current year, moving to the
// next year if it would precede the last assigned date. It returns the zero
// time when no non-decreasing date exists.
func (st *dateState) assign(month time.Month, day int) time.Time {
	d, ok := civilDate(st.year, month, day)
	if !ok {
		return time.Time{}
	}
	if !st.last.IsZero() && d.Before(st.last) {
		d, ok = civilDate(st.year+1, month, day)
		if !ok {
			return time.Time{}
		}
		st.year++
	}
	st.last = d
	return d
}

// dayNumberAt reads the day number for col from the row above the header,
// looking one column to the right when col itself holds none.
func dayNumberAt(g *models.Grid, headerRow, col int) (int, bool) {
	r := headerRow - 1
	if r < 0 {
		return 0, false
	}
	for _, c := range [2]int{col, col + 1} {
		if d, ok := DayNumber(g.At(r, c)); ok {
			return d, true
		}
	}
	return 0, false
}

// civilDate returns midnight UTC of the given date, failing instead of
// normalizing out-of-range days.
func civilDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
