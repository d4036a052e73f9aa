package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func moviesCSV(rows int) string {
	var b strings.Builder
	b.WriteString("title,release_year,duration\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "movie-%d,%d,%d min\n", i, 1990+i%30, 90+i)
	}
	return b.String()
}

func TestCountRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"25 data rows", moviesCSV(25), 25},
		{"header only", moviesCSV(0), 0},
		{"empty file", "", 0},
		{"single row", moviesCSV(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewChunkedReader(writeCSV(t, tt.content), 10)

			got, err := r.CountRows()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountRowsMissingFile(t *testing.T) {
	r := NewChunkedReader(filepath.Join(t.TempDir(), "nope.csv"), 10)

	_, err := r.CountRows()
	assert.Error(t, err)
}

func TestBatchesAreBoundedAndOrdered(t *testing.T) {
	r := NewChunkedReader(writeCSV(t, moviesCSV(25)), 10)

	it, err := r.Open()
	require.NoError(t, err)
	defer it.Close()

	var sizes []int
	var titles []string
	for {
		batch, err := it.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		sizes = append(sizes, len(batch))
		for _, row := range batch {
			titles = append(titles, row["title"])
		}
	}

	assert.Equal(t, []int{10, 10, 5}, sizes)
	require.Len(t, titles, 25)
	for i, title := range titles {
		assert.Equal(t, fmt.Sprintf("movie-%d", i), title)
	}
}

func TestRowsAreKeyedByHeader(t *testing.T) {
	r := NewChunkedReader(writeCSV(t, "title,duration\nInception,148 min\n"), 10)

	it, err := r.Open()
	require.NoError(t, err)
	defer it.Close()

	batch, err := it.Next()
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, map[string]string{"title": "Inception", "duration": "148 min"}, batch[0])
}

func TestHeaderOnlyFileIsExhausted(t *testing.T) {
	r := NewChunkedReader(writeCSV(t, moviesCSV(0)), 10)

	it, err := r.Open()
	require.NoError(t, err)
	defer it.Close()

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEmptyFileIsExhausted(t *testing.T) {
	r := NewChunkedReader(writeCSV(t, ""), 10)

	it, err := r.Open()
	require.NoError(t, err)
	defer it.Close()

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestRaggedRowSurfacesError(t *testing.T) {
	r := NewChunkedReader(writeCSV(t, "title,release_year\nInception\n"), 10)

	it, err := r.Open()
	require.NoError(t, err)
	defer it.Close()

	_, err = it.Next()
	assert.Error(t, err)
}
