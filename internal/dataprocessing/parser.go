package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"wellmech/internal/config"
	apperrors "wellmech/internal/errors"
	"wellmech/internal/infrastructure"
	"wellmech/internal/welllog"
)

// Supported source formats
const (
	FormatLAS  = "las"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DetectFormat infers a source format from the file extension
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".las":
		return FormatLAS, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", apperrors.NewConfigurationError(path, "format", "cannot infer format from extension")
}

// Loader turns configured sources into curve sets keyed on one depth curve
type Loader struct {
	depthKey string
	logger   *slog.Logger
}

// NewLoader creates a Loader. A nil logger uses slog.Default().
func NewLoader(depthKey string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		depthKey: depthKey,
		logger:   infrastructure.WithComponent(logger, "dataprocessing"),
	}
}

// LoadSource reads the source file in its format and extracts the mapped
// curves. An empty result is logged and returned without error.
func (l *Loader) LoadSource(ctx context.Context, src config.SourceConfig) (*welllog.CurveSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	format := src.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(src.Path); err != nil {
			return nil, err
		}
	}

	table, err := l.readTable(src, format)
	if err != nil {
		return nil, err
	}

	spec := SourceSpec(src)
	if src.DetectHeader && format == FormatLAS {
		offset, err := DetectLASDataOffset(table)
		if err != nil {
			return nil, err
		}
		spec.HeaderRows = offset
	}

	cs, err := welllog.Extract(table, spec, l.depthKey)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Source loaded",
		slog.String("source", src.Name),
		slog.String("format", format),
		slog.Int("rows", len(table.Rows)),
		slog.Int("samples", cs.Len()),
		slog.Duration("duration", time.Since(start)))

	if warn := welllog.CheckEmpty(src.Name, cs); warn != nil {
		l.logger.WarnContext(ctx, "Source produced no samples",
			slog.String("source", src.Name),
			slog.String("warning", warn.Error()))
	}
	return cs, nil
}

// LoadSources loads every source concurrently. The result keeps the
// configured order; the first failure cancels the rest.
func (l *Loader) LoadSources(ctx context.Context, srcs []config.SourceConfig) ([]*welllog.CurveSet, error) {
	sets := make([]*welllog.CurveSet, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			cs, err := l.LoadSource(gctx, src)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.Name, err)
			}
			sets[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// LoadTemplate reads an input template workbook and extracts its logs sheet
func (l *Loader) LoadTemplate(ctx context.Context, path string) (*Template, *welllog.CurveSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t, err := ReadWorkbook(path)
	if err != nil {
		return nil, nil, err
	}

	cs, err := welllog.Extract(t.Logs, t.Spec(config.TemplateLogsSheet), l.depthKey)
	if err != nil {
		return nil, nil, err
	}

	l.logger.InfoContext(ctx, "Template loaded",
		slog.String("path", path),
		slog.Float64("bit_area", t.BitArea),
		slog.Float64("mud_weight", t.MudWeight),
		slog.Int("curves", len(t.Curves)),
		slog.Int("samples", cs.Len()))

	return t, cs, nil
}

func (l *Loader) readTable(src config.SourceConfig, format string) (welllog.Table, error) {
	if format == FormatXLSX {
		table, err := ReadSheet(src.Path, src.Sheet)
		if err != nil {
			return welllog.Table{}, err
		}
		table.Source = src.Name
		return table, nil
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return welllog.Table{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatLAS:
		return ReadLAS(f, src.Name)
	case FormatCSV:
		return ReadCSV(f, src.Name)
	}
	return welllog.Table{}, apperrors.NewConfigurationError(src.Name, "format",
		fmt.Sprintf("unsupported format %q", format))
}

// SourceSpec maps a configured source onto an extraction spec
func SourceSpec(src config.SourceConfig) welllog.SourceSpec {
	spec := welllog.SourceSpec{
		Name:            src.Name,
		HeaderRows:      src.HeaderRows,
		KeepNonPositive: src.KeepNonPositive,
		Columns:         make([]welllog.ColumnSpec, len(src.Curves)),
	}
	for i, c := range src.Curves {
		spec.Columns[i] = welllog.ColumnSpec{Curve: c.Curve, Index: c.Column, Unit: c.Unit}
	}
	return spec
}
