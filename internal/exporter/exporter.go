package exporter

import (
	"log/slog"

	"wellmech/internal/config"
	"wellmech/internal/welllog"
)

// Exporter writes the final curve set in the configured output format
type Exporter struct {
	csv  *CSVWriter
	xlsx *XLSXWriter
}

// New creates an Exporter. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Exporter {
	return &Exporter{
		csv:  NewCSVWriter(logger),
		xlsx: NewXLSXWriter(logger),
	}
}

// Export writes cs to out.Path. With out.Summary set, per-curve statistics
// go to a summary sheet (xlsx) or a companion NAME_summary.csv file.
func (e *Exporter) Export(out config.OutputConfig, cs *welllog.CurveSet) error {
	format, err := ResolveFormat(out.Path, out.Format)
	if err != nil {
		return err
	}

	var summaries []welllog.CurveSummary
	if out.Summary {
		summaries = welllog.SummarizeSet(cs)
	}

	if format == FormatXLSX {
		return e.xlsx.WriteCurves(out.Path, out.Sheet, cs, summaries)
	}

	if err := e.csv.WriteCurves(out.Path, cs); err != nil {
		return err
	}
	if out.Summary {
		return e.csv.WriteSummary(summaryPath(out.Path), summaries)
	}
	return nil
}
