package attendsheet

import "github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"

// The methods below answer queries against the most recent load. Each
// returns ErrNotLoaded before the first successful Load.

// Weeks lists every week of the sheet with its range label.
func (t *Table) Weeks() ([]WeekSummary, error) {
	cal, err := t.Calendar()
	if err != nil {
		return nil, err
	}
	return cal.Summaries(), nil
}

// WeeksOfCurrentMonth returns the global numbers of the weeks overlapping
// the current month.
func (t *Table) WeeksOfCurrentMonth() ([]int, error) {
	cal, err := t.Calendar()
	if err != nil {
		return nil, err
	}
	return cal.WeeksOfMonth(t.Today()), nil
}

// CurrentWeek returns the local and global number of the current week.
func (t *Table) CurrentWeek() (local, global int, err error) {
	cal, err := t.Calendar()
	if err != nil {
		return 0, 0, err
	}
	return cal.CurrentWeek(t.Today())
}

// WeekDays returns the attendance days of row in week.
func (t *Table) WeekDays(row, week int) (float64, error) {
	cal, err := t.Calendar()
	if err != nil {
		return 0, err
	}
	return cal.WeekDays(row, week)
}

// WeekRangeLabel returns the printable bounds of week.
func (t *Table) WeekRangeLabel(week int) (string, error) {
	cal, err := t.Calendar()
	if err != nil {
		return "", err
	}
	return cal.WeekRangeLabel(week), nil
}

// RowForIdentifier returns the data row bound to id.
func (t *Table) RowForIdentifier(id int64) (int, error) {
	cal, err := t.Calendar()
	if err != nil {
		return 0, err
	}
	return cal.RowForIdentifier(id)
}

// Person returns the person bound to id.
func (t *Table) Person(id int64) (models.Row, error) {
	cal, err := t.Calendar()
	if err != nil {
		return models.Row{}, err
	}
	row, err := cal.RowForIdentifier(id)
	if err != nil {
		return models.Row{}, err
	}
	p, _ := cal.Person(row)
	return p, nil
}

// Salary returns the pay of row for week at the configured daily rate.
func (t *Table) Salary(row, week int) (Pay, error) {
	cal, err := t.Calendar()
	if err != nil {
		return Pay{}, err
	}
	days, err := cal.WeekDays(row, week)
	if err != nil {
		return Pay{}, err
	}
	return Salary(days, t.opts.DailyRate), nil
}
