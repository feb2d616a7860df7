package models

// Area represents cell coordinate bounds restricting what a source reads.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive). Zero means unbounded.
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive). Zero means unbounded.
	C2 int `json:"c2"`
}

// Clip cuts rows (0-based, as read from the sheet) down to the area.
// Coordinates inside the result are shifted so the area's top-left cell is (0, 0).
func (a Area) Clip(rows [][]string) [][]string {
	return ClipRows(a, rows)
}

// ClipRows is Clip for rows of any cell type.
func ClipRows[T any](a Area, rows [][]T) [][]T {
	r1, c1 := max(a.R1-1, 0), max(a.C1-1, 0)
	if r1 >= len(rows) {
		return nil
	}
	r2 := len(rows)
	if a.R2 > 0 && a.R2 < r2 {
		r2 = a.R2
	}
	out := make([][]T, 0, r2-r1)
	for _, row := range rows[r1:r2] {
		if c1 >= len(row) {
			out = append(out, nil)
			continue
		}
		end := len(row)
		if a.C2 > 0 && a.C2 < end {
			end = a.C2
		}
		out = append(out, row[c1:end])
	}
	return out
}
