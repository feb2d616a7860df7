package attendsheet

import (
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// Build runs the reconstruction pipeline over g: header, month context,
// week segmentation, date inference, week ranges, week sums and identifier
// column detection.
func Build(g *models.Grid, opts Options) (*Calendar, error) {
	opts = opts.withDefaults()
	if g.Empty() {
		return nil, &StageError{Stage: StageFetch, Err: ErrEmptySheet}
	}

	header, err := parser.FindHeader(g)
	if err != nil {
		return nil, &StageError{Stage: StageHeader, Err: err}
	}

	months := parser.BuildMonthContext(g, header.Row)
	weeks := parser.SegmentWeeks(header.Columns)
	dates := parser.ResolveDates(g, header.Row, parser.DayColumns(weeks), months, opts.BaseYear())
	parser.AssignRanges(weeks, dates)
	sums := parser.AggregateWeeks(g, header.Row, weeks)

	idCol, ok := parser.DetectIDColumn(g, opts.IDColumn)
	if !ok {
		idCol = -1
	}

	return &Calendar{
		grid:      g,
		HeaderRow: header.Row,
		IDColumn:  idCol,
		Weeks:     weeks,
		Dates:     dates,
		Sums:      sums,
		nameCol:   opts.NameCol,
		roleCol:   opts.RoleCol,
	}, nil
}
