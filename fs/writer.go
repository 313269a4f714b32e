// Package fs provides file-based export of fact tables.
//
// Absent cells are written as NullCell so they stay distinct from
// attributes that are present but empty, which are written as empty fields.
package fs

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/xbrlfacts"
)

// NullCell is written for absent values. A present value spelled exactly
// like the marker cannot be told apart from an absent one.
const NullCell = `\N`

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, table *xbrlfacts.FactTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(xbrlfacts.Columns); err != nil {
		return err
	}

	record := make([]string, len(xbrlfacts.Columns))
	for _, row := range table.Rows() {
		for i, cell := range row {
			record[i] = NullCell
			if cell != nil {
				record[i] = *cell
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// TableFileName returns the file name used for a table name.
// Path separators are replaced so names cannot escape the base directory.
func TableFileName(name string) (string, error) {
	clean := strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(name))
	if clean == "" || clean == "." || clean == ".." {
		return "", xbrlfacts.Errorf(xbrlfacts.EINVALID, "invalid table name %q", name)
	}
	return clean + ".csv", nil
}

// Ensure TableWriter implements xbrlfacts.TableWriter at compile time.
var _ xbrlfacts.TableWriter = (*TableWriter)(nil)

// TableWriter writes fact tables as CSV files to a directory.
// Files are written to a temporary name and renamed into place.
type TableWriter struct {
	baseDir string
}

// NewTableWriter creates a new TableWriter that writes to baseDir.
func NewTableWriter(baseDir string) *TableWriter {
	return &TableWriter{baseDir: baseDir}
}

// Path returns the file path a table with the given name is written to.
func (w *TableWriter) Path(name string) (string, error) {
	file, err := TableFileName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.baseDir, file), nil
}

// WriteTable writes the table to <baseDir>/<name>.csv.
func (w *TableWriter) WriteTable(ctx context.Context, name string, table *xbrlfacts.FactTable) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table == nil {
		return xbrlfacts.Errorf(xbrlfacts.EINVALID, "fact table required")
	}

	path, err := w.Path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(w.baseDir, ".tmp-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = WriteCSV(tmp, table); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
