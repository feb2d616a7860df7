// Package report composes attendance queries into the answers a user asks
// for: days and pay for a week, the current week and their own binding.
package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// Selections stores the local week each user last picked.
type Selections interface {
	Get(ctx context.Context, user int64) (week int, ok bool, err error)
	Set(ctx context.Context, user int64, week int) error
}

// WeekRef identifies a week by global number and, when it overlaps the
// current month, by its local position.
type WeekRef struct {
	Global int    `json:"global"`
	Local  int    `json:"local,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Days is a person's attendance for one week.
type Days struct {
	Person models.Row `json:"person"`
	Week   WeekRef    `json:"week"`
	Days   float64    `json:"days"`
}

// Salary is a person's pay for one week.
type Salary struct {
	Days
	Pay attendsheet.Pay `json:"pay"`
}

// Service answers per-user questions.
type Service struct {
	table      *attendsheet.Table
	selections Selections
}

// New returns a Service over table. Week selections are kept in sel.
func New(table *attendsheet.Table, sel Selections) *Service {
	return &Service{table: table, selections: sel}
}

// Me returns the row bound to user.
func (s *Service) Me(ctx context.Context, user int64) (models.Row, error) {
	return s.table.Person(user)
}

// MonthWeeks lists the weeks of the current month in local order.
func (s *Service) MonthWeeks(ctx context.Context) ([]WeekRef, error) {
	cal, err := s.table.Calendar()
	if err != nil {
		return nil, err
	}
	month := cal.WeeksOfMonth(s.table.Today())
	out := make([]WeekRef, len(month))
	for i, n := range month {
		out[i] = WeekRef{Global: n, Local: i + 1, Label: cal.WeekRangeLabel(n)}
	}
	return out, nil
}

// Current determines the current week and remembers it as user's selection.
func (s *Service) Current(ctx context.Context, user int64) (WeekRef, error) {
	cal, err := s.table.Calendar()
	if err != nil {
		return WeekRef{}, err
	}
	local, global, err := cal.CurrentWeek(s.table.Today())
	if err != nil {
		return WeekRef{}, err
	}
	if err := s.selections.Set(ctx, user, local); err != nil {
		return WeekRef{}, err
	}
	return WeekRef{Global: global, Local: local, Label: cal.WeekRangeLabel(global)}, nil
}

// Select records local as user's week within the current month.
func (s *Service) Select(ctx context.Context, user int64, local int) (WeekRef, error) {
	cal, err := s.table.Calendar()
	if err != nil {
		return WeekRef{}, err
	}
	month := cal.WeeksOfMonth(s.table.Today())
	if local < 1 || local > len(month) {
		return WeekRef{}, fmt.Errorf("%w: local week %d not in 1..%d", attendsheet.ErrWeekOutOfRange, local, len(month))
	}
	if err := s.selections.Set(ctx, user, local); err != nil {
		return WeekRef{}, err
	}
	global := month[local-1]
	return WeekRef{Global: global, Local: local, Label: cal.WeekRangeLabel(global)}, nil
}

// Days reports user's attendance. A positive week is a global week number;
// zero means the user's selected week, or the current week when nothing
// valid is selected.
func (s *Service) Days(ctx context.Context, user int64, week int) (Days, error) {
	cal, err := s.table.Calendar()
	if err != nil {
		return Days{}, err
	}
	row, err := cal.RowForIdentifier(user)
	if err != nil {
		return Days{}, err
	}
	ref, err := s.resolve(ctx, cal, user, week)
	if err != nil {
		return Days{}, err
	}
	days, err := cal.WeekDays(row, ref.Global)
	if err != nil {
		return Days{}, err
	}
	person, _ := cal.Person(row)
	return Days{Person: person, Week: ref, Days: days}, nil
}

// Salary reports user's pay, choosing the week like Days.
func (s *Service) Salary(ctx context.Context, user int64, week int) (Salary, error) {
	d, err := s.Days(ctx, user, week)
	if err != nil {
		return Salary{}, err
	}
	return Salary{Days: d, Pay: attendsheet.Salary(d.Days, s.table.DailyRate())}, nil
}

func (s *Service) resolve(ctx context.Context, cal *attendsheet.Calendar, user int64, week int) (WeekRef, error) {
	month := cal.WeeksOfMonth(s.table.Today())

	if week != 0 {
		if _, err := cal.Week(week); err != nil {
			return WeekRef{}, err
		}
		return WeekRef{Global: week, Local: slices.Index(month, week) + 1, Label: cal.WeekRangeLabel(week)}, nil
	}

	local, ok, err := s.selections.Get(ctx, user)
	if err != nil {
		return WeekRef{}, err
	}
	if ok && local >= 1 && local <= len(month) {
		global := month[local-1]
		return WeekRef{Global: global, Local: local, Label: cal.WeekRangeLabel(global)}, nil
	}

	local, global, err := cal.CurrentWeek(s.table.Today())
	if err != nil {
		return WeekRef{}, err
	}
	return WeekRef{Global: global, Local: local, Label: cal.WeekRangeLabel(global)}, nil
}
