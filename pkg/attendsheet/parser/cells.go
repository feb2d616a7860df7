package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// ParseCell converts raw sheet text into a Cell.
// Integers and decimals become numbers, blank text becomes absent.
func ParseCell(s string) models.Cell {
	t := strings.TrimSpace(s)
	if t == "" {
		return models.Cell{}
	}
	if f, ok := parseNumber(t); ok {
		return models.Number(f)
	}
	return models.Text(s)
}

// ParseValue converts a typed value, as returned by spreadsheet APIs, into a Cell.
func ParseValue(v any) models.Cell {
	switch x := v.(type) {
	case nil:
		return models.Cell{}
	case string:
		return ParseCell(x)
	case float64:
		return models.Number(x)
	case float32:
		return models.Number(float64(x))
	case int:
		return models.Number(float64(x))
	case int64:
		return models.Number(float64(x))
	case bool:
		if x {
			return models.Text("TRUE")
		}
		return models.Text("FALSE")
	default:
		return models.Cell{}
	}
}

// ParseRows converts a block of raw rows into grid rows.
func ParseRows(rows [][]string) [][]models.Cell {
	out := make([][]models.Cell, len(rows))
	for i, row := range rows {
		cells := make([]models.Cell, len(row))
		for j, v := range row {
			cells[j] = ParseCell(v)
		}
		out[i] = cells
	}
	return out
}

// parseNumber attempts to parse a string value as a number.
// Integers are tried first, then decimals; NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOf returns the numeric value of c. Text that does not parse and
// absent cells are not numbers.
func NumberOf(c models.Cell) (float64, bool) {
	switch c.Kind {
	case models.CellNumber:
		return c.Number, true
	case models.CellText:
		return parseNumber(strings.TrimSpace(c.Text))
	default:
		return 0, false
	}
}

// DayNumber returns the day of month held by c, accepting integers in 1..31.
func DayNumber(c models.Cell) (int, bool) {
	f, ok := NumberOf(c)
	if !ok || f != math.Trunc(f) || f < 1 || f > 31 {
		return 0, false
	}
	return int(f), true
}

// Identifier returns the integer identifier held by c. Numbers must be
// integral; text must consist of digits only.
func Identifier(c models.Cell) (int64, bool) {
	switch c.Kind {
	case models.CellNumber:
		if c.Number != math.Trunc(c.Number) || math.Abs(c.Number) > 1<<53 {
			return 0, false
		}
		return int64(c.Number), true
	case models.CellText:
		t := strings.TrimSpace(c.Text)
		if !isDigits(t) {
			return 0, false
		}
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// textOf returns the text of a text cell, or "" for anything else.
func textOf(c models.Cell) string {
	if c.Kind != models.CellText {
		return ""
	}
	return c.Text
}
