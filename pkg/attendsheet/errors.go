package attendsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
)

// Load failures.
var (
	// ErrHeaderNotFound indicates no row carries the seven weekday labels.
	ErrHeaderNotFound = parser.ErrHeaderNotFound
	// ErrSourceUnavailable indicates the sheet could not be fetched.
	ErrSourceUnavailable = source.ErrUnavailable
	// ErrEmptySheet indicates the fetched worksheet holds no values.
	ErrEmptySheet = source.ErrEmptySheet
)

// Query failures.
var (
	// ErrNotLoaded indicates a query ran before any successful load.
	ErrNotLoaded = errors.New("attendance table not loaded")
	// ErrWeekOutOfRange indicates a week number outside 1..N.
	ErrWeekOutOfRange = errors.New("week out of range")
	// ErrIdentifierNotFound indicates no data row carries the identifier.
	ErrIdentifierNotFound = errors.New("identifier not found")
	// ErrUndetermined indicates the current month has no resolved weeks.
	ErrUndetermined = errors.New("current week undetermined")
)

// Stage names a step of the load pipeline.
type Stage string

const (
	// StageFetch covers reading the grid from the source.
	StageFetch Stage = "fetch"
	// StageHeader covers locating the weekday header row.
	StageHeader Stage = "header"
)

// StageError represents a load failure at one pipeline stage.
type StageError struct {
	Stage Stage
	Err   error
}

// Error returns the stage and the underlying failure.
func (e *StageError) Error() string {
	return fmt.Sprintf("load failed at %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

func weekOutOfRange(week, total int) error {
	return fmt.Errorf("%w: week %d not in 1..%d", ErrWeekOutOfRange, week, total)
}
