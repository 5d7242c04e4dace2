package welllog

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "wellmech/internal/errors"
)

// Table is a raw row-oriented table handed over by an ingestion reader.
// Cells are kept as text so the conversion error can point at the offending
// row.
type Table struct {
	Source string
	Rows   [][]string
}

// ColumnSpec maps one logical curve onto a column of a raw table
type ColumnSpec struct {
	Curve string `yaml:"curve" json:"curve" validate:"required"`
	Index int    `yaml:"column" json:"column" validate:"gte=0"`
	Unit  string `yaml:"unit" json:"unit"`
}

// SourceSpec describes how to pull curves out of one source's table
type SourceSpec struct {
	Name       string       `yaml:"name" json:"name"`
	HeaderRows int          `yaml:"header_rows" json:"header_rows" validate:"gte=0"`
	Columns    []ColumnSpec `yaml:"curves" json:"curves" validate:"required,min=1,dive"`
	// KeepNonPositive disables the positivity filter. Raw logs use zero and
	// negative sentinels for "no reading", so the filter is on by default.
	KeepNonPositive bool `yaml:"keep_non_positive" json:"keep_non_positive"`
}

// Extract pulls the mapped columns out of a raw table and returns them as a
// CurveSet keyed on depthKey.
//
// Rows before spec.HeaderRows and blank rows are skipped. Unless
// spec.KeepNonPositive is set, a row survives only when every mapped value is
// strictly positive. A zero-row result is not an error; see CheckEmpty.
func Extract(table Table, spec SourceSpec, depthKey string) (*CurveSet, error) {
	source := spec.Name
	if source == "" {
		source = table.Source
	}

	if len(spec.Columns) == 0 {
		return nil, apperrors.NewConfigurationError(source, depthKey, "no curves mapped")
	}
	if err := checkColumnSpecs(source, spec.Columns, depthKey); err != nil {
		return nil, err
	}
	if err := checkColumnsExist(source, table.Rows, spec.Columns); err != nil {
		return nil, err
	}

	values := make([][]float64, len(spec.Columns))
	row := make([]float64, len(spec.Columns))

	for rowIdx := spec.HeaderRows; rowIdx < len(table.Rows); rowIdx++ {
		cells := table.Rows[rowIdx]
		if isBlank(cells) {
			continue
		}

		keep := true
		for i, col := range spec.Columns {
			if col.Index >= len(cells) {
				return nil, apperrors.NewConfigurationError(source, col.Curve,
					fmt.Sprintf("column %d does not exist in row %d (%d columns)", col.Index, rowIdx, len(cells)))
			}
			v, err := parseCell(cells[col.Index])
			if err != nil {
				return nil, apperrors.NewParseError(source, col.Curve, rowIdx, err)
			}
			row[i] = v
			if !spec.KeepNonPositive && !(v > 0) {
				keep = false
			}
		}
		if !keep {
			continue
		}
		for i := range spec.Columns {
			values[i] = append(values[i], row[i])
		}
	}

	curves := make([]Curve, len(spec.Columns))
	for i, col := range spec.Columns {
		unit := col.Unit
		if unit == "" {
			unit, _ = UnitFor(col.Curve)
		}
		v := values[i]
		if v == nil {
			v = []float64{}
		}
		curves[i] = Curve{Name: col.Curve, Unit: unit, Source: source, Values: v}
	}

	return NewCurveSet(depthKey, curves...)
}

func checkColumnSpecs(source string, cols []ColumnSpec, depthKey string) error {
	seen := make(map[string]bool, len(cols))
	hasDepth := false
	for _, col := range cols {
		if col.Curve == "" {
			return apperrors.NewConfigurationError(source, fmt.Sprintf("column %d", col.Index), "curve name is empty")
		}
		if col.Index < 0 {
			return apperrors.NewConfigurationError(source, col.Curve, fmt.Sprintf("column %d does not exist", col.Index))
		}
		if seen[col.Curve] {
			return apperrors.NewConfigurationError(source, col.Curve, "curve mapped twice")
		}
		seen[col.Curve] = true
		if col.Curve == depthKey {
			hasDepth = true
		}
	}
	if !hasDepth {
		return apperrors.NewMissingKeyError(source, depthKey)
	}
	return nil
}

// checkColumnsExist rejects columns that no row of a non-empty table
// reaches, so a mapping error is not hidden behind an empty result.
func checkColumnsExist(source string, rows [][]string, cols []ColumnSpec) error {
	if len(rows) == 0 {
		return nil
	}
	width := 0
	for _, cells := range rows {
		width = max(width, len(cells))
	}
	for _, col := range cols {
		if col.Index >= width {
			return apperrors.NewConfigurationError(source, col.Curve,
				fmt.Sprintf("column %d does not exist in any row (widest row has %d columns)", col.Index, width))
		}
	}
	return nil
}

func parseCell(cell string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// CheckEmpty returns an EmptyResultError warning when cs holds no samples
func CheckEmpty(stage string, cs *CurveSet) error {
	if cs == nil || cs.IsEmpty() {
		key := ""
		if cs != nil {
			key = cs.DepthKey()
		}
		return apperrors.NewEmptyResultError(stage, key)
	}
	return nil
}
