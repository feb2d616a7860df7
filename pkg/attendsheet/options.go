// Package attendsheet reconstructs a queryable attendance calendar from a
// semi-structured weekly attendance sheet.
package attendsheet

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
	"go.uber.org/zap"
)

// DefaultDailyRate is the pay for one attendance day.
var DefaultDailyRate = decimal.NewFromInt(3000)

// Options configures loading and querying.
type Options struct {
	// Year seeds date inference. Zero means the current year at load time.
	Year int
	// DailyRate is multiplied by attendance days to derive salary. Zero
	// means DefaultDailyRate.
	DailyRate decimal.Decimal
	// NameCol and RoleCol are the 0-based display name and role columns.
	NameCol int
	RoleCol int
	// Location is the time zone "today" is computed in.
	Location *time.Location
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// IDColumn tunes identifier column detection.
	IDColumn parser.IDColumnParams
	// Logger receives load events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		DailyRate: DefaultDailyRate,
		NameCol:   2,
		RoleCol:   3,
		Location:  time.Local,
		Now:       time.Now,
		IDColumn:  parser.DefaultIDColumnParams(),
		Logger:    zap.NewNop(),
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DailyRate.IsZero() {
		o.DailyRate = def.DailyRate
	}
	if o.Location == nil {
		o.Location = def.Location
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	if o.IDColumn.Candidates == 0 && o.IDColumn.KeywordRows == 0 {
		o.IDColumn = def.IDColumn
	}
	return o
}

// Today returns the current calendar date in the configured location.
func (o Options) Today() time.Time {
	return dateOf(o.Now().In(o.Location))
}

// BaseYear returns the year date inference starts from.
func (o Options) BaseYear() int {
	if o.Year != 0 {
		return o.Year
	}
	return o.Now().In(o.Location).Year()
}

// dateOf drops the clock part of t, keeping its calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
