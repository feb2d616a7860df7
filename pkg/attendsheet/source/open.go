package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
)

// Kind names a source implementation.
type Kind string

const (
	KindAuto   Kind = ""
	KindExcel  Kind = "excel"
	KindXLS    Kind = "xls"
	KindCSV    Kind = "csv"
	KindGoogle Kind = "gsheets"
)

// Options selects and configures a source.
type Options struct {
	Kind Kind
	// Path is a local workbook or export.
	Path string
	// Sheet is the worksheet name.
	Sheet string
	// Range is an optional A1 range, e.g. "табель!A1:AZ200" or "B3".
	// A sheet named in Range overrides Sheet.
	Range string
	// SheetKey and Credentials configure the hosted spreadsheet.
	SheetKey    string
	Credentials string
	// Charset applies to legacy .xls workbooks.
	Charset string
}

// New builds the source described by opts. With KindAuto the kind is
// inferred from Path's extension, or from SheetKey when Path is empty.
func New(opts Options) (Source, error) {
	sheet, area, err := parser.ParseRange(opts.Range)
	if err != nil {
		return nil, err
	}
	if sheet == "" {
		sheet = opts.Sheet
	}

	kind, err := resolveKind(opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindExcel:
		return &Excel{Path: opts.Path, Sheet: sheet, Area: area}, nil
	case KindXLS:
		return &XLS{Path: opts.Path, Sheet: sheet, Charset: opts.Charset, Area: area}, nil
	case KindCSV:
		c := &CSV{Path: opts.Path, Area: area}
		if strings.EqualFold(filepath.Ext(opts.Path), ".tsv") {
			c.Comma = '\t'
		}
		return c, nil
	case KindGoogle:
		if sheet == "" {
			sheet = DefaultWorksheet
		}
		return &GoogleSheets{
			SheetKey:    opts.SheetKey,
			Worksheet:   sheet,
			Area:        area,
			Credentials: opts.Credentials,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

func resolveKind(opts Options) (Kind, error) {
	if opts.Kind != KindAuto {
		return opts.Kind, nil
	}
	if opts.Path == "" {
		if opts.SheetKey != "" {
			return KindGoogle, nil
		}
		return "", fmt.Errorf("%w: no sheet path or spreadsheet key configured", ErrUnavailable)
	}
	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return KindExcel, nil
	case ".xls":
		return KindXLS, nil
	case ".csv", ".tsv":
		return KindCSV, nil
	default:
		return "", fmt.Errorf("unsupported sheet file %q", opts.Path)
	}
}
