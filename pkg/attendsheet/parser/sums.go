package parser

import "github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"

// AggregateWeeks sums, for every week and every row below the header, the
// week's seven day cells. Cells that are not numbers count as zero.
func AggregateWeeks(g *models.Grid, headerRow int, weeks []models.Week) *models.SumTable {
	first := headerRow + 1
	rows := max(g.Len()-first, 0)
	table := &models.SumTable{FirstRow: first, Sums: make([][]float64, len(weeks))}
	for wi, w := range weeks {
		sums := make([]float64, rows)
		for i := range sums {
			var total float64
			for _, c := range w.Columns {
				if v, ok := NumberOf(g.At(first+i, c)); ok {
					total += v
				}
			}
			sums[i] = total
		}
		table.Sums[wi] = sums
	}
	return table
}
