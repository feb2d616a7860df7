package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
	"github.com/xuri/excelize/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendsheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
source:
  path: табель.xlsx
  range: "табель!A1:AZ200"
calendar:
  year: 2024
  daily_rate: "3500.50"
  timezone: Europe/Moscow
server:
  addr: 127.0.0.1:9000
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "табель.xlsx", cfg.Source.Path)
	assert.Empty(t, cfg.Source.Sheet)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Calendar.NameColumn)

	opts, err := cfg.TableOptions()
	require.NoError(t, err)
	assert.Equal(t, 2024, opts.Year)
	assert.Equal(t, "3500.5", opts.DailyRate.String())
	assert.Equal(t, "Europe/Moscow", opts.Location.String())

	src := cfg.SourceOptions()
	assert.Equal(t, "табель!A1:AZ200", src.Range)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "source: [\n"},
		{"bad kind", "source:\n  kind: ftp\n"},
		{"bad rate", "calendar:\n  daily_rate: three\n"},
		{"negative rate", "calendar:\n  daily_rate: \"-1\"\n"},
		{"zero rate", "calendar:\n  daily_rate: \"0\"\n"},
		{"bad timezone", "calendar:\n  timezone: Mars/Olympus\n"},
		{"negative year", "calendar:\n  year: -3\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GSHEET_KEY", "sheet-key")
	t.Setenv("GWSHEET_NAME", "март")
	t.Setenv("ATTENDSHEET_CREDENTIALS", "/etc/sa.json")
	t.Setenv("ATTENDSHEET_SOURCE", "local.csv")
	t.Setenv("ATTENDSHEET_DAILY_RATE", "2500")
	t.Setenv("ATTENDSHEET_ADDR", ":9999")
	t.Setenv("ATTENDSHEET_YEAR", "2023")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "sheet-key", cfg.Source.SheetKey)
	assert.Equal(t, "март", cfg.Source.Sheet)
	assert.Equal(t, "/etc/sa.json", cfg.Source.Credentials)
	assert.Equal(t, "local.csv", cfg.Source.Path)
	assert.Equal(t, "2500", cfg.Calendar.DailyRate)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 2023, cfg.Calendar.Year)
}

func TestEnvOverridesIgnoreBadYear(t *testing.T) {
	t.Setenv("ATTENDSHEET_YEAR", "soon")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Zero(t, cfg.Calendar.Year)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.SheetKey = "abc"
	path := filepath.Join(t.TempDir(), "nested", "attendsheet.yaml")

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10*time.Second, cfg.GetReadTimeout())

	cfg.Server.ShutdownTimeout = "bogus"
	assert.Equal(t, 5*time.Second, cfg.GetShutdownTimeout())
}

func TestDefaultsReadFirstWorksheet(t *testing.T) {
	book := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "ФИО"))
	require.NoError(t, f.SaveAs(book))
	require.NoError(t, f.Close())

	t.Setenv("ATTENDSHEET_SOURCE", book)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	src, err := source.New(cfg.SourceOptions())
	require.NoError(t, err)
	g, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", g.Name)
	assert.Equal(t, models.Text("ФИО"), g.At(0, 0))
}

func TestDefaultsHostedWorksheet(t *testing.T) {
	t.Setenv("GSHEET_KEY", "sheet-key")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	src, err := source.New(cfg.SourceOptions())
	require.NoError(t, err)
	gs, ok := src.(*source.GoogleSheets)
	require.True(t, ok, "got %T", src)
	assert.Equal(t, source.DefaultWorksheet, gs.Worksheet)
}
