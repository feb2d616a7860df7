package parser

import (
	"sort"
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// MonthContext maps columns to the month named most recently to their left
// in the row above the header.
type MonthContext struct {
	months map[int]time.Month
	// labels holds the columns where a month name literally appears, ascending.
	labels []int
}

// BuildMonthContext scans the row above headerRow left to right. Columns
// before the first month name stay unmapped. A header in row 0 yields an
// empty context.
func BuildMonthContext(g *models.Grid, headerRow int) MonthContext {
	ctx := MonthContext{months: make(map[int]time.Month)}
	r := headerRow - 1
	if r < 0 {
		return ctx
	}
	var current time.Month
	for c := 0; c < g.Width(); c++ {
		if m, ok := MonthOf(textOf(g.At(r, c))); ok {
			current = m
			ctx.labels = append(ctx.labels, c)
		}
		if current != 0 {
			ctx.months[c] = current
		}
	}
	return ctx
}

// Month returns the inherited month of col.
func (m MonthContext) Month(col int) (time.Month, bool) {
	month, ok := m.months[col]
	return month, ok
}

// Len returns the number of mapped columns.
func (m MonthContext) Len() int { return len(m.months) }

// Labels returns the columns holding a month name.
func (m MonthContext) Labels() []int {
	return append([]int(nil), m.labels...)
}

// LabelIn returns the month of the rightmost label column in (lo, hi].
func (m MonthContext) LabelIn(lo, hi int) (time.Month, bool) {
	i := sort.SearchInts(m.labels, hi+1) - 1
	if i < 0 || m.labels[i] <= lo {
		return 0, false
	}
	return m.months[m.labels[i]], true
}

// fallback is the best-effort month for leading columns: the context at
// first, else the first label within [first, last].
func (m MonthContext) fallback(first, last int) time.Month {
	if month, ok := m.months[first]; ok {
		return month
	}
	i := sort.SearchInts(m.labels, first)
	if i < len(m.labels) && m.labels[i] <= last {
		return m.months[m.labels[i]]
	}
	return 0
}
