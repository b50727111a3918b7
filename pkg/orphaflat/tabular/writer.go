// Package tabular emits the fixed-column CSV files consumed by the
// downstream graph loader. Rows are written one at a time; the writer
// never buffers a whole output in memory.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rows against a fixed column contract. Cells for
// missing columns render as the empty string, never "null".
type Writer struct {
	file    *os.File
	cw      *csv.Writer
	columns []string
	header  bool
	closed  bool
	rows    int
}

// Create opens path for writing, creating its parent directory when
// absent. The header row is written before the first data row, or on
// Close for an output with zero rows.
func Create(path string, columns []string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &Writer{file: f, cw: csv.NewWriter(f), columns: columns}, nil
}

// Comment writes a raw line ahead of the header, for carrying source
// metadata through to the output. It is an error after the header has
// been written.
func (w *Writer) Comment(line string) error {
	if w.header {
		return fmt.Errorf("comment after header")
	}
	_, err := fmt.Fprintln(w.file, line)
	return err
}

// Write emits one row, taking each cell from the column's entry in
// row and defaulting absent columns to "".
func (w *Writer) Write(row map[string]string) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	record := make([]string, len(w.columns))
	for i, col := range w.columns {
		record[i] = row[col]
	}
	if err := w.cw.Write(record); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows reports the number of data rows written so far.
func (w *Writer) Rows() int { return w.rows }

// Close flushes and closes the output. The header is written even when
// no rows were. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.writeHeader()
	w.cw.Flush()
	if ferr := w.cw.Error(); err == nil {
		err = ferr
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func (w *Writer) writeHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	return w.cw.Write(w.columns)
}
