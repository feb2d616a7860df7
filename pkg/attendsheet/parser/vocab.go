// Package parser reconstructs the calendar structure of an attendance grid.
package parser

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Weekdays is the short weekday vocabulary in week order, Saturday first.
var Weekdays = [7]string{"сб", "вс", "пн", "вт", "ср", "чт", "пт"}

// Months maps recognized month names to calendar months.
var Months = map[string]time.Month{
	"январь":   time.January,
	"февраль":  time.February,
	"март":     time.March,
	"апрель":   time.April,
	"май":      time.May,
	"июнь":     time.June,
	"июль":     time.July,
	"август":   time.August,
	"сентябрь": time.September,
	"октябрь":  time.October,
	"ноябрь":   time.November,
	"декабрь":  time.December,
}

var monthNames = func() map[time.Month]string {
	out := make(map[time.Month]string, len(Months))
	for name, m := range Months {
		out[m] = name
	}
	return out
}()

// MonthName returns the vocabulary name of m, capitalized.
func MonthName(m time.Month) string {
	name, ok := monthNames[m]
	if !ok {
		return ""
	}
	return cases.Title(language.Russian).String(name)
}

// Normalize folds case, composes Unicode and trims whitespace and trailing dots,
// so "Пн.", " пн " and "ПН" all compare equal.
func Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".")
	return cases.Fold().String(strings.TrimSpace(s))
}

// IsWeekday reports whether s is one of the short weekday names.
func IsWeekday(s string) bool {
	n := Normalize(s)
	for _, w := range Weekdays {
		if n == w {
			return true
		}
	}
	return false
}

// MonthOf returns the month named by s.
func MonthOf(s string) (time.Month, bool) {
	m, ok := Months[Normalize(s)]
	return m, ok
}
