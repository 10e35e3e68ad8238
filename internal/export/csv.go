// Package export writes inventory records to a CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/virulent-hate/google-drive-index/internal/inventory"
)

var columns = []string{
	"name",
	"path",
	"id",
	"link",
	"type",
	"is_folder",
	"size_kb",
	"owner",
	"created_date",
	"last_modified_date",
}

// WriteCSV writes records to path, creating parent directories as needed.
// Rows go to a temp file that is renamed into place once everything is
// written, so a failed run never leaves a partial file. Zero records write
// nothing.
func WriteCSV(path string, records []inventory.Record) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(row(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func row(r inventory.Record) []string {
	return []string{
		r.Name,
		r.Path,
		r.ID,
		r.Link,
		r.MimeType,
		strconv.FormatBool(r.IsFolder),
		formatSizeKB(r.SizeKB),
		r.Owner,
		r.CreatedDate,
		r.ModifiedDate,
	}
}

// formatSizeKB renders a size without trailing zeros: 488.28, 1.5, 0.
func formatSizeKB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
