package main

import (
	"context"

	"github.com/ukaji3/attendsheet-go/internal/selection"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
	"go.uber.org/zap"
)

// app wires the configured source, table and selection store.
type app struct {
	table      *attendsheet.Table
	reports    *report.Service
	selections *selection.Store
}

// newApp builds the table from the loaded config. The selection store is
// opened only when withSelections is set.
func newApp(withSelections bool) (*app, error) {
	src, err := source.New(cfg.SourceOptions())
	if err != nil {
		return nil, err
	}
	opts, err := cfg.TableOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger.Named("table")

	a := &app{table: attendsheet.NewTable(src, opts)}
	if withSelections {
		a.selections, err = selection.Open(cfg.Selection.Path)
		if err != nil {
			return nil, err
		}
		a.reports = report.New(a.table, a.selections)
	} else {
		a.reports = report.New(a.table, selection.NewMemory())
	}
	return a, nil
}

// load runs the pipeline once.
func (a *app) load(ctx context.Context) (attendsheet.LoadStatus, error) {
	st, err := a.table.Load(ctx)
	if err != nil {
		return st, err
	}
	logger.Debug("sheet ready", zap.Stringer("status", st))
	return st, nil
}

func (a *app) Close() error {
	if a.selections != nil {
		return a.selections.Close()
	}
	return nil
}

// openLoaded builds the app and loads the sheet.
func openLoaded(ctx context.Context, withSelections bool) (*app, error) {
	a, err := newApp(withSelections)
	if err != nil {
		return nil, err
	}
	if _, err := a.load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
