package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ChunkedReader streams a CSV file in fixed-size row batches so ingestion
// never holds more than one batch in memory. Row counting is a separate
// full pass over the file, keeping the batch pass a single forward read.
type ChunkedReader struct {
	path      string
	batchSize int
}

func NewChunkedReader(path string, batchSize int) *ChunkedReader {
	return &ChunkedReader{path: path, batchSize: batchSize}
}

// CountRows returns the number of data rows in the file, header excluded.
func (r *ChunkedReader) CountRows() (int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.ReuseRecord = true

	rows := -1 // first record is the header
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		rows++
	}

	if rows < 0 {
		return 0, nil
	}
	return rows, nil
}

// Open starts the batch pass. The returned iterator is single-use and
// yields rows in file order.
func (r *ChunkedReader) Open() (*BatchIterator, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}

	cr := csv.NewReader(f)

	header, err := cr.Read()
	if err == io.EOF {
		// empty file, iterator is immediately exhausted
		return &BatchIterator{f: f, cr: cr}, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return &BatchIterator{f: f, cr: cr, header: append([]string(nil), header...), batchSize: r.batchSize}, nil
}

type BatchIterator struct {
	f         *os.File
	cr        *csv.Reader
	header    []string
	batchSize int
}

// Next returns the next batch of at most batchSize rows, each keyed by the
// header fields, or io.EOF once the file is exhausted.
func (it *BatchIterator) Next() ([]map[string]string, error) {
	if it.header == nil {
		return nil, io.EOF
	}

	rows := make([]map[string]string, 0, it.batchSize)
	for len(rows) < it.batchSize {
		rec, err := it.cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(it.header))
		for i, field := range it.header {
			if i < len(rec) {
				row[field] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, io.EOF
	}
	return rows, nil
}

func (it *BatchIterator) Close() error {
	return it.f.Close()
}
