package dataprocessing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

// maxLASLine bounds a single LAS line; wide EDR exports exceed bufio's 64K default
const maxLASLine = 1 << 20

// ReadLAS reads a LAS file into a raw table. Every line becomes a row of
// whitespace separated fields, header sections included, so that a source's
// header_rows offset counts lines exactly as they appear in the file.
func ReadLAS(r io.Reader, source string) (welllog.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLASLine)

	var rows [][]string
	for scanner.Scan() {
		rows = append(rows, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return welllog.Table{}, fmt.Errorf("read LAS %s: %w", source, err)
	}

	return welllog.Table{Source: source, Rows: rows}, nil
}

// DetectLASDataOffset returns the index of the first row after the ~A
// (ASCII log data) section marker.
func DetectLASDataOffset(table welllog.Table) (int, error) {
	for i, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(row[0]), "~A") {
			return i + 1, nil
		}
	}
	return 0, apperrors.NewConfigurationError(table.Source, "~A", "no ASCII data section found")
}
