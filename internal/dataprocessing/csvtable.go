package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"

	"wellmech/internal/welllog"
)

// ReadCSV reads a delimited export into a raw table. Rows may have differing
// widths; a missing column is reported by extraction, not here.
func ReadCSV(r io.Reader, source string) (welllog.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	rows, err := reader.ReadAll()
	if err != nil {
		return welllog.Table{}, fmt.Errorf("read CSV %s: %w", source, err)
	}

	return welllog.Table{Source: source, Rows: rows}, nil
}
