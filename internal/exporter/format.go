package exporter

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// formatFloat renders a sample with the shortest text that parses back to
// the same value. NaN is written as an empty cell.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// Header returns the column header for a curve, "NAME [unit]"
func Header(c welllog.Curve) string {
	if c.Unit == "" {
		return c.Name
	}
	return fmt.Sprintf("%s [%s]", c.Name, c.Unit)
}

// ParseHeader splits a column header written by Header
func ParseHeader(h string) (name, unit string) {
	h = strings.TrimSpace(h)
	open := strings.LastIndex(h, " [")
	if open < 0 || !strings.HasSuffix(h, "]") {
		return h, ""
	}
	return h[:open], h[open+2 : len(h)-1]
}

func curveHeaders(curves []welllog.Curve) []string {
	headers := make([]string, len(curves))
	for i, c := range curves {
		headers[i] = Header(c)
	}
	return headers
}

var summaryHeaders = []string{"curve", "unit", "samples", "min", "max", "mean", "std_dev"}

func summaryRecord(s welllog.CurveSummary) []string {
	return []string{
		s.Name,
		s.Unit,
		formatInt(int64(s.Samples)),
		formatFloat(s.Min),
		formatFloat(s.Max),
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
	}
}

// ResolveFormat returns format, or infers it from the path extension
func ResolveFormat(path, format string) (string, error) {
	if format != "" {
		format = strings.ToLower(format)
	} else {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case FormatCSV, FormatXLSX:
		return format, nil
	}
	return "", apperrors.NewConfigurationError("output", "format",
		fmt.Sprintf("unsupported output format %q", format))
}

// summaryPath derives the companion summary file of a CSV export
func summaryPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_summary" + ext
}
