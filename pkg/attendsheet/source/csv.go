package source

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV reads a sheet exported as comma- or tab-separated text. UTF-16 exports
// are detected by their byte order mark; anything else is read as UTF-8.
type CSV struct {
	// Path is the exported file.
	Path string
	// Comma is the field separator; ',' when zero.
	Comma rune
	// Area restricts the cells read; zero reads the whole file.
	Area models.Area
}

// Fetch reads and decodes the whole file.
func (c *CSV) Fetch(ctx context.Context) (*models.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(c.Path)
	if err != nil {
		return nil, unavailable(err, "open %s", c.Path)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(file, decoder))
	reader.Comma = c.Comma
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, unavailable(err, "parse %s", c.Path)
	}
	name := strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	return gridFromRows(name, rows, c.Area)
}
