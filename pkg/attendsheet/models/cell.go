// Package models defines data structures for attendance sheet reconstruction.
package models

import "strconv"

// CellKind tells which of the three cell states a Cell holds.
type CellKind uint8

const (
	// CellAbsent is an empty cell.
	CellAbsent CellKind = iota
	// CellText holds a non-numeric string.
	CellText
	// CellNumber holds a numeric value.
	CellNumber
)

// Cell is a single grid value, already coerced to a number where possible.
type Cell struct {
	// Kind is the cell state.
	Kind CellKind `json:"kind"`
	// Text is the raw text for CellText cells.
	Text string `json:"text,omitempty"`
	// Number is the value for CellNumber cells.
	Number float64 `json:"number,omitempty"`
}

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// IsAbsent reports whether the cell is empty.
func (c Cell) IsAbsent() bool { return c.Kind == CellAbsent }

// String renders the cell the way a spreadsheet shows it.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
