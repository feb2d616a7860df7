package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDColumnByKeyword(t *testing.T) {
	tests := []struct {
		name  string
		label string
		row   int
		col   int
		ok    bool
	}{
		{"exact", "ID", 0, 1, true},
		{"substring", "Telegram аккаунт", 2, 4, true},
		{"cyrillic", "Телеграм ID", 1, 0, true},
		{"too deep", "tg_id", 5, 1, false},
		{"unrelated", "ФИО", 0, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(8, 6).set(tt.row, tt.col, tt.label).grid()
			col, ok := IDColumnByKeyword(g, DefaultIDColumnParams())
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.col, col)
			}
		})
	}
}

func TestIDColumnByScore(t *testing.T) {
	b := newGrid(10, 8)
	for r := 2; r < 10; r++ {
		b.set(r, 0, r-1)       // row numbers: 8 numeric cells
		b.set(r, 1, 1000000+r) // ids: 8 numeric cells
		b.set(r, 2, "Иванов")  // names
		b.set(r, 6, 1)         // outside the candidate columns
	}
	b.set(5, 1, "")

	col, ok := IDColumnByScore(b.grid(), DefaultIDColumnParams())
	assert.True(t, ok)
	assert.Equal(t, 0, col, "column 1 lost one numeric cell")
}

func TestIDColumnByScoreTieGoesRight(t *testing.T) {
	b := newGrid(6, 4)
	for r := 2; r < 6; r++ {
		b.set(r, 0, r)
		b.set(r, 1, "12345")
	}

	col, ok := IDColumnByScore(b.grid(), DefaultIDColumnParams())
	assert.True(t, ok)
	assert.Equal(t, 1, col)
}

func TestIDColumnByScoreNeedsMinimum(t *testing.T) {
	b := newGrid(6, 4).set(2, 0, 1).set(3, 0, 2)

	_, ok := IDColumnByScore(b.grid(), DefaultIDColumnParams())
	assert.False(t, ok)
}

func TestDetectIDColumnPrefersKeyword(t *testing.T) {
	b := newGrid(8, 6).set(1, 3, "tg id")
	for r := 2; r < 8; r++ {
		b.set(r, 0, r)
	}

	col, ok := DetectIDColumn(b.grid(), DefaultIDColumnParams())
	assert.True(t, ok)
	assert.Equal(t, 3, col)
}
