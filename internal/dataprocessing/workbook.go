package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"wellmech/internal/config"
	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

// Template sheets carry a header row and a units row before any value, so
// the first value sits on the third row.
const (
	templateHeaderRow = 0
	templateUnitsRow  = 1
	templateValueRow  = 2
)

// Template is the content of an input template workbook
type Template struct {
	Path      string
	BitArea   float64 // in2
	MudWeight float64 // ppg
	// Logs is the raw logs sheet, header and units rows included
	Logs welllog.Table
	// Curves and Units describe the logs sheet columns after the index column
	Curves []string
	Units  []string
}

// Spec returns the extraction spec for the logs sheet. Every named column
// after the index column becomes a curve; a blank unit cell falls back to
// the canonical unit for that log name.
func (t *Template) Spec(name string) welllog.SourceSpec {
	spec := welllog.SourceSpec{
		Name:       name,
		HeaderRows: templateValueRow,
	}
	for i, curve := range t.Curves {
		if curve == "" {
			continue
		}
		spec.Columns = append(spec.Columns, welllog.ColumnSpec{
			Curve: curve,
			Index: i + 1,
			Unit:  t.Units[i],
		})
	}
	return spec
}

// ReadWorkbook reads an input template: the bit area from the "drilling
// bit" sheet, the mud weight from "drilling mud" and the raw logs sheet.
func ReadWorkbook(path string) (*Template, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	bitArea, err := readScalar(f, path, config.TemplateBitSheet, config.TemplateBitArea)
	if err != nil {
		return nil, err
	}
	mudWeight, err := readScalar(f, path, config.TemplateMudSheet, config.TemplateMudWeight)
	if err != nil {
		return nil, err
	}

	logsSheet, err := findSheet(f, path, config.TemplateLogsSheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(logsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", logsSheet, err)
	}
	if len(rows) <= templateUnitsRow {
		return nil, apperrors.NewConfigurationError(config.TemplateLogsSheet, "header",
			"sheet needs a header row and a units row")
	}

	header := rows[templateHeaderRow]
	units := rows[templateUnitsRow]
	t := &Template{
		Path:      path,
		BitArea:   bitArea,
		MudWeight: mudWeight,
		Logs:      welllog.Table{Source: config.TemplateLogsSheet, Rows: rows},
	}
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		unit := ""
		if i < len(units) {
			unit = strings.TrimSpace(units[i])
		}
		if unit == "" {
			unit, _ = welllog.UnitFor(name)
		}
		t.Curves = append(t.Curves, name)
		t.Units = append(t.Units, unit)
	}

	return t, nil
}

// ReadSheet reads one worksheet into a raw table. An empty sheet name reads
// the first sheet of the workbook.
func ReadSheet(path, sheet string) (welllog.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return welllog.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if sheet != "" {
		if name, err = findSheet(f, path, sheet); err != nil {
			return welllog.Table{}, err
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return welllog.Table{}, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	return welllog.Table{Source: name, Rows: rows}, nil
}

// findSheet resolves a sheet name, tolerating case and stray whitespace
func findSheet(f *excelize.File, path, want string) (string, error) {
	sheets := f.GetSheetList()
	for _, name := range sheets {
		if name == want {
			return name, nil
		}
	}
	for _, name := range sheets {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(want)) {
			return name, nil
		}
	}
	return "", apperrors.NewConfigurationError(path, want,
		fmt.Sprintf("sheet not found (have %s)", strings.Join(sheets, ", ")))
}

// readScalar returns the value below the named header on a template sheet
func readScalar(f *excelize.File, path, sheet, header string) (float64, error) {
	name, err := findSheet(f, path, sheet)
	if err != nil {
		return 0, err
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return 0, apperrors.NewMissingKeyError(sheet, header)
	}

	col := -1
	for j, cell := range rows[templateHeaderRow] {
		if strings.EqualFold(strings.TrimSpace(cell), header) {
			col = j
			break
		}
	}
	if col < 0 {
		return 0, apperrors.NewMissingKeyError(sheet, header)
	}
	if len(rows) <= templateValueRow || col >= len(rows[templateValueRow]) {
		return 0, apperrors.NewConfigurationError(sheet, header,
			fmt.Sprintf("no value on row %d", templateValueRow+1))
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rows[templateValueRow][col]), 64)
	if err != nil {
		return 0, apperrors.NewParseError(sheet, header, templateValueRow, err)
	}
	return v, nil
}
