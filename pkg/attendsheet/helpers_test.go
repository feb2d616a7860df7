package attendsheet

import (
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// Rows of the fixture sheet.
const (
	rowIvanov  = 3
	rowPetrova = 4
	rowSidorov = 5
)

// fixtureSheet builds a three-week sheet starting Saturday 28.12.2024.
// Row 1 names December once and then only carries day numbers, so January
// is inferred from the 31 -> 1 regression.
func fixtureSheet() *models.Grid {
	const first, weeks = 4, 3
	width := first + weeks*models.DaysPerWeek
	rows := make([][]models.Cell, 6)
	for i := range rows {
		rows[i] = make([]models.Cell, width)
	}
	set := func(r, c int, v any) { rows[r][c] = parser.ParseValue(v) }

	set(0, 0, "Табель учёта рабочего времени")
	set(1, 3, "Декабрь")
	day := time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)
	for i := 0; i < weeks*models.DaysPerWeek; i++ {
		set(1, first+i, day.AddDate(0, 0, i).Day())
		set(2, first+i, parser.Weekdays[i%models.DaysPerWeek])
	}

	set(2, 1, "Telegram ID")
	set(2, 2, "ФИО")
	set(2, 3, "Должность")

	people := []struct {
		id         any
		name, role string
		marks      []any
	}{
		{111, "Иванов И.", "курьер", []any{1, 1, 0, "", 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0.5, 1, 1, 1, "б", 0, 0}},
		{"222", "Петрова А.", "кассир", []any{0, 0, 0, 0, 0, 0, 0, 1, 1}},
		{nil, "Сидоров П.", "стажёр", []any{1}},
	}
	for i, p := range people {
		r := rowIvanov + i
		if p.id != nil {
			set(r, 1, p.id)
		}
		set(r, 2, p.name)
		set(r, 3, p.role)
		for j, v := range p.marks {
			set(r, first+j, v)
		}
	}
	return models.NewGrid("табель", rows)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedClock returns options pinned to now and to the 2024 base year.
func fixedClock(now time.Time) Options {
	opts := DefaultOptions()
	opts.Year = 2024
	opts.Location = time.UTC
	opts.Now = func() time.Time { return now }
	return opts
}
