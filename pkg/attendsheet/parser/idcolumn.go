package parser

import (
	"strings"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

// IDColumnParams holds parameters for identifier column detection.
type IDColumnParams struct {
	Keywords     []string
	Substrings   []string
	KeywordRows  int
	Candidates   int
	FirstDataRow int
	MinNumeric   int
}

// DefaultIDColumnParams returns default identifier column detection parameters.
func DefaultIDColumnParams() IDColumnParams {
	return IDColumnParams{
		Keywords: []string{
			"telegram id", "tg id", "tg_id", "телеграм id",
			"телеграм", "айди", "id", "id телеграм",
		},
		Substrings:   []string{"telegram", "телеграм"},
		KeywordRows:  5,
		Candidates:   6,
		FirstDataRow: 2,
		MinNumeric:   3,
	}
}

// DetectIDColumn locates the identifier column. It is a heuristic: an exact
// header keyword wins, otherwise the most numeric-looking leading column.
func DetectIDColumn(g *models.Grid, params IDColumnParams) (int, bool) {
	if col, ok := IDColumnByKeyword(g, params); ok {
		return col, true
	}
	return IDColumnByScore(g, params)
}

// IDColumnByKeyword returns the first cell, scanning the top rows, whose text
// is an identifier keyword or contains an identifier substring.
func IDColumnByKeyword(g *models.Grid, params IDColumnParams) (int, bool) {
	for i := 0; i < min(params.KeywordRows, g.Len()); i++ {
		for j, c := range g.Rows[i] {
			if c.Kind != models.CellText {
				continue
			}
			if matchesKeyword(Normalize(c.Text), params) {
				return j, true
			}
		}
	}
	return 0, false
}

func matchesKeyword(s string, params IDColumnParams) bool {
	for _, k := range params.Keywords {
		if s == k {
			return true
		}
	}
	for _, sub := range params.Substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IDColumnByScore scores the leading candidate columns by how many cells from
// FirstDataRow down look numeric and returns the best one, provided it has at
// least MinNumeric such cells. Ties go to the rightmost column.
func IDColumnByScore(g *models.Grid, params IDColumnParams) (int, bool) {
	best, bestCount := -1, -1
	for j := 0; j < min(params.Candidates, g.Width()); j++ {
		count := countNumericLike(g, j, params.FirstDataRow)
		if count >= bestCount {
			best, bestCount = j, count
		}
	}
	if best < 0 || bestCount < params.MinNumeric {
		return 0, false
	}
	return best, true
}

// countNumericLike counts numbers and digit-only text cells in col from row down.
func countNumericLike(g *models.Grid, col, from int) int {
	count := 0
	for i := max(from, 0); i < g.Len(); i++ {
		c := g.At(i, col)
		switch c.Kind {
		case models.CellNumber:
			count++
		case models.CellText:
			if isDigits(strings.TrimSpace(c.Text)) {
				count++
			}
		}
	}
	return count
}
