package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

func TestCSVFetch(t *testing.T) {
	const body = "ФИО,id,сб,вс\nИванов,42,1,\nПетров,,0.5,1\n"

	tests := []struct {
		name string
		data []byte
	}{
		{"utf-8", []byte(body)},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, body...)},
		{"utf-16le bom", utf16LE(body)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "табель.csv", tt.data)

			g, err := (&CSV{Path: path}).Fetch(context.Background())
			require.NoError(t, err)

			assert.Equal(t, "табель", g.Name)
			assert.Equal(t, models.Text("ФИО"), g.At(0, 0))
			assert.Equal(t, models.Number(42), g.At(1, 1))
			assert.True(t, g.At(1, 3).IsAbsent())
			assert.Equal(t, models.Number(0.5), g.At(2, 2))
		})
	}
}

func TestCSVFetchTabs(t *testing.T) {
	path := writeFile(t, "t.tsv", []byte("a\tb\n1\t2\n"))

	src, err := New(Options{Path: path})
	require.NoError(t, err)
	g, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Number(2), g.At(1, 1))
}

func TestCSVFetchErrors(t *testing.T) {
	_, err := (&CSV{Path: filepath.Join(t.TempDir(), "none.csv")}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	path := writeFile(t, "blank.csv", []byte(",,\n , ,\n"))
	_, err = (&CSV{Path: path}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrEmptySheet)
}
