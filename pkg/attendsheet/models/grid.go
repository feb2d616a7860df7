package models

// Grid is an immutable snapshot of one worksheet. Rows may be ragged;
// cells past the end of a row read as absent.
type Grid struct {
	// Name is the worksheet name the grid was read from.
	Name string `json:"name,omitempty"`
	// Rows holds the cells row by row (0-based).
	Rows [][]Cell `json:"rows"`
}

// NewGrid wraps rows into a Grid.
func NewGrid(name string, rows [][]Cell) *Grid {
	return &Grid{Name: name, Rows: rows}
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// Width returns the length of the longest row.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	w := 0
	for _, row := range g.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the cell at (row, col), or an absent cell when out of bounds.
func (g *Grid) At(row, col int) Cell {
	if g == nil || row < 0 || row >= len(g.Rows) || col < 0 {
		return Cell{}
	}
	r := g.Rows[row]
	if col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Empty reports whether the grid has no non-absent cell.
func (g *Grid) Empty() bool {
	if g == nil {
		return true
	}
	for _, row := range g.Rows {
		for _, c := range row {
			if !c.IsAbsent() {
				return false
			}
		}
	}
	return true
}
