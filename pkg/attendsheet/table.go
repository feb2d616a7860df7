package attendsheet

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LoadStatus describes a successful load.
type LoadStatus struct {
	ID        uuid.UUID     `json:"id"`
	LoadedAt  time.Time     `json:"loaded_at"`
	Duration  time.Duration `json:"duration"`
	Sheet     string        `json:"sheet"`
	HeaderRow int           `json:"header_row"`
	IDColumn  int           `json:"id_column"`
	Weeks     int           `json:"weeks"`
	Rows      int           `json:"rows"`
	// Resolved counts day columns with an inferred date.
	Resolved int `json:"resolved_dates"`
	Columns  int `json:"day_columns"`
}

// String renders the status message reported after a load.
func (s LoadStatus) String() string {
	return fmt.Sprintf("loaded sheet %q: %d weeks, %d rows, %d/%d dates resolved",
		s.Sheet, s.Weeks, s.Rows, s.Resolved, s.Columns)
}

type snapshot struct {
	cal    *Calendar
	status LoadStatus
}

// Table is the attendance query facade. Load replaces the whole derived
// state at once; queries read whichever state was published last and never
// block each other.
type Table struct {
	src  source.Source
	opts Options
	log  *zap.Logger

	state atomic.Pointer[snapshot]
	loads singleflight.Group
}

// NewTable returns a Table reading from src. It holds no state until the
// first successful Load.
func NewTable(src source.Source, opts Options) *Table {
	opts = opts.withDefaults()
	return &Table{src: src, opts: opts, log: opts.Logger}
}

// Load fetches the sheet and rebuilds every derived structure. Concurrent
// calls share a single run, which is not canceled when the caller that
// started it goes away. On failure the previously loaded state stays in
// place.
func (t *Table) Load(ctx context.Context) (LoadStatus, error) {
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := t.loads.Do("load", func() (any, error) {
		return t.load(runCtx)
	})
	if shared {
		t.log.Debug("joined in-flight load")
	}
	if err != nil {
		return LoadStatus{}, err
	}
	return v.(LoadStatus), nil
}

func (t *Table) load(ctx context.Context) (LoadStatus, error) {
	start := t.opts.Now()
	id := uuid.New()
	log := t.log.With(zap.String("load_id", id.String()))

	g, err := t.src.Fetch(ctx)
	if err != nil {
		log.Warn("fetch sheet", zap.Error(err))
		return LoadStatus{}, &StageError{Stage: StageFetch, Err: err}
	}

	cal, err := Build(g, t.opts)
	if err != nil {
		log.Warn("build calendar", zap.String("sheet", g.Name), zap.Error(err))
		return LoadStatus{}, err
	}

	resolved := 0
	for _, d := range cal.Dates {
		if d.Resolved() {
			resolved++
		}
	}
	status := LoadStatus{
		ID:        id,
		LoadedAt:  start,
		Duration:  t.opts.Now().Sub(start),
		Sheet:     cal.Sheet(),
		HeaderRow: cal.HeaderRow,
		IDColumn:  cal.IDColumn,
		Weeks:     cal.TotalWeeks(),
		Rows:      cal.DataRows(),
		Resolved:  resolved,
		Columns:   len(cal.Dates),
	}
	t.state.Store(&snapshot{cal: cal, status: status})

	log.Info("sheet loaded",
		zap.String("sheet", status.Sheet),
		zap.Int("header_row", status.HeaderRow),
		zap.Int("id_column", status.IDColumn),
		zap.Int("weeks", status.Weeks),
		zap.Int("rows", status.Rows),
		zap.Int("resolved_dates", status.Resolved),
		zap.Duration("took", status.Duration),
	)
	if status.IDColumn < 0 {
		log.Warn("identifier column not detected")
	}
	return status, nil
}

// Calendar returns the most recently loaded calendar.
func (t *Table) Calendar() (*Calendar, error) {
	s := t.state.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.cal, nil
}

// Status returns the status of the most recent successful load.
func (t *Table) Status() (LoadStatus, error) {
	s := t.state.Load()
	if s == nil {
		return LoadStatus{}, ErrNotLoaded
	}
	return s.status, nil
}

// Today returns the current date in the configured location.
func (t *Table) Today() time.Time { return t.opts.Today() }

// DailyRate returns the configured daily rate.
func (t *Table) DailyRate() decimal.Decimal { return t.opts.DailyRate }
