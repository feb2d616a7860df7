package source

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultWorksheet is the worksheet read when none is configured.
const DefaultWorksheet = "табель"

// GoogleSheets reads a worksheet of a hosted spreadsheet through the
// Sheets API using service-account credentials.
type GoogleSheets struct {
	// SheetKey is the spreadsheet identifier from its URL.
	SheetKey string
	// Worksheet is the tab title; the first tab when empty.
	Worksheet string
	// Area restricts the cells read; zero reads the whole worksheet.
	Area models.Area
	// Credentials is the service-account JSON file.
	Credentials string

	mu      sync.Mutex
	service *sheets.Service
}

// Fetch reads the worksheet's unformatted values.
func (s *GoogleSheets) Fetch(ctx context.Context) (*models.Grid, error) {
	svc, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	title := s.Worksheet
	if title == "" {
		ss, err := svc.Spreadsheets.Get(s.SheetKey).Fields("sheets.properties.title").Context(ctx).Do()
		if err != nil {
			return nil, unavailable(err, "open spreadsheet %s", s.SheetKey)
		}
		if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
			return nil, unavailable(nil, "spreadsheet %s has no worksheets", s.SheetKey)
		}
		title = ss.Sheets[0].Properties.Title
	}

	vr, err := svc.Spreadsheets.Values.Get(s.SheetKey, quoteTitle(title)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, unavailable(err, "read worksheet %q", title)
	}

	rows := make([][]models.Cell, len(vr.Values))
	for i, raw := range vr.Values {
		row := make([]models.Cell, len(raw))
		for j, v := range raw {
			row[j] = parser.ParseValue(v)
		}
		rows[i] = row
	}
	g := models.NewGrid(title, models.ClipRows(s.Area, rows))
	if g.Empty() {
		return nil, ErrEmptySheet
	}
	return g, nil
}

func (s *GoogleSheets) connect(ctx context.Context) (*sheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service, nil
	}
	if s.SheetKey == "" {
		return nil, unavailable(nil, "spreadsheet key is not configured")
	}
	if _, err := os.Stat(s.Credentials); err != nil {
		return nil, unavailable(err, "credentials file %q", s.Credentials)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.Credentials),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, unavailable(err, "create sheets client")
	}
	s.service = svc
	return svc, nil
}

// quoteTitle quotes a worksheet title for A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
