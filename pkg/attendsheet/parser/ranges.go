package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses an A1 reference restricting what a source reads.
// Accepted forms: 'Sheet'!$A$1:$D$10, Sheet!A1:D10, A1:D10 and a bare sheet
// name. The returned area is zero when the reference names no cells.
func ParseRange(ref string) (string, models.Area, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", models.Area{}, nil
	}

	sheet, cells := "", ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		cells = ref[idx+1:]
	} else if !strings.Contains(ref, ":") {
		// A bare word is a sheet name unless it is a single cell reference.
		if _, _, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", "")); err != nil {
			return ref, models.Area{}, nil
		}
	}

	area, err := parseRangeToArea(cells)
	if err != nil {
		return "", models.Area{}, fmt.Errorf("range %q: %w", ref, err)
	}
	return sheet, area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10 to an Area.
// A single cell reference means "from this cell on".
func parseRangeToArea(rangeStr string) (models.Area, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")
	if rangeStr == "" {
		return models.Area{}, nil
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return models.Area{}, fmt.Errorf("expected START:END, got %q", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Area{}, err
	}
	area := models.Area{R1: startRow, C1: startCol}
	if len(parts) == 1 {
		return area, nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Area{}, err
	}
	if endRow < startRow || endCol < startCol {
		return models.Area{}, fmt.Errorf("end %s precedes start %s", parts[1], parts[0])
	}
	area.R2, area.C2 = endRow, endCol
	return area, nil
}
