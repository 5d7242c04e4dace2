package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"wellmech/internal/config"
	"wellmech/internal/infrastructure"
	"wellmech/internal/welllog"
)

// SummarySheet is the worksheet holding curve statistics
const SummarySheet = "summary"

// XLSXWriter writes curve sets to Excel workbooks
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer. A nil logger uses slog.Default().
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: infrastructure.WithComponent(logger, "exporter")}
}

// WriteCurves writes cs to sheet, one column per curve. When summaries is
// non-empty a second sheet holds the per-curve statistics.
func (w *XLSXWriter) WriteCurves(filePath, sheet string, cs *welllog.CurveSet, summaries []welllog.CurveSummary) error {
	if sheet == "" {
		sheet = config.DefaultOutputSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeCurveSheet(f, sheet, cs); err != nil {
		return err
	}
	if len(summaries) > 0 {
		if err := writeSummarySheet(f, summaries); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Curves exported",
		slog.String("file_path", filePath),
		slog.String("sheet", sheet),
		slog.Int("curves", len(cs.Names())),
		slog.Int("rows", cs.Len()))
	return nil
}

func writeCurveSheet(f *excelize.File, sheet string, cs *welllog.CurveSet) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	curves := cs.Curves()
	if err := sw.SetRow("A1", toRow(curveHeaders(curves))); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := make([]interface{}, len(curves))
	for i := 0; i < cs.Len(); i++ {
		for j, c := range curves {
			row[j] = cellValue(c.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return sw.Flush()
}

func writeSummarySheet(f *excelize.File, summaries []welllog.CurveSummary) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeaders); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{s.Name, s.Unit, s.Samples, cellValue(s.Min), cellValue(s.Max), cellValue(s.Mean), cellValue(s.StdDev)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}
	return nil
}

// cellValue leaves NaN and infinite cells blank; a numeric cell cannot hold them
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
