package exporter

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wellmech/internal/config"
	"wellmech/internal/welllog"
)

func sampleSet(t *testing.T) *welllog.CurveSet {
	t.Helper()
	cs, err := welllog.NewCurveSet("TVD",
		welllog.Curve{Name: "TVD", Unit: "ft", Values: []float64{1000, 1010, 1020}},
		welllog.Curve{Name: "GR", Unit: "API", Values: []float64{80.5, 0.30000000000000004, 60}},
		welllog.Curve{Name: "PHYD", Unit: "kPa", Values: []float64{465.4, 470.05, 470.05}},
	)
	require.NoError(t, err)
	return cs
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteCurvesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "curves.csv")
	cs := sampleSet(t)

	require.NoError(t, NewCSVWriter(nil).WriteCurves(path, cs))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"TVD [ft]", "GR [API]", "PHYD [kPa]"}, records[0])

	curves := make([]welllog.Curve, len(records[0]))
	for j, h := range records[0] {
		name, unit := ParseHeader(h)
		curves[j] = welllog.Curve{Name: name, Unit: unit}
		for _, rec := range records[1:] {
			v, err := strconv.ParseFloat(rec[j], 64)
			require.NoError(t, err)
			curves[j].Values = append(curves[j].Values, v)
		}
	}
	back, err := welllog.NewCurveSet("TVD", curves...)
	require.NoError(t, err)

	for _, name := range cs.Names() {
		want, _ := cs.Curve(name)
		got, _ := back.Curve(name)
		assert.Equal(t, want.Unit, got.Unit, name)
		assert.Equal(t, want.Values, got.Values, "%s values differ after round trip", name)
	}
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "table.csv")

	require.NoError(t, w.WriteCSV(path, WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{
		Headers: []string{"ignored", "on append"},
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, readCSV(t, path))
}

func TestExporter_CSVWithSummary(t *testing.T) {
	dir := t.TempDir()
	out := config.OutputConfig{Path: filepath.Join(dir, "curves.csv"), Summary: true}

	require.NoError(t, New(nil).Export(out, sampleSet(t)))

	summary := readCSV(t, filepath.Join(dir, "curves_summary.csv"))
	require.Len(t, summary, 4)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, []string{"TVD", "ft", "3", "1000", "1020", "1010", "10"}, summary[1])
}

func TestExporter_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.xlsx")
	out := config.OutputConfig{Path: path, Summary: true}
	cs := sampleSet(t)

	require.NoError(t, New(nil).Export(out, cs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{config.DefaultOutputSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(config.DefaultOutputSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"TVD [ft]", "GR [API]", "PHYD [kPa]"}, rows[0])

	raw, err := f.GetCellValue(config.DefaultOutputSheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	v, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.Equal(t, 80.5, v)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "PHYD", summary[3][0])
}

func TestExporter_XLSXNonFiniteCellsBlank(t *testing.T) {
	cs, err := welllog.NewCurveSet("TVD",
		welllog.Curve{Name: "TVD", Unit: "ft", Values: []float64{1000, 1010, 1020}},
		welllog.Curve{Name: "PHIE", Unit: "fraction", Values: []float64{math.Inf(1), math.NaN(), 0.12}},
		welllog.Curve{Name: "PERM", Unit: "nD", Values: []float64{math.Inf(-1), 3.5, 4}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "curves.xlsx")
	require.NoError(t, New(nil).Export(config.OutputConfig{Path: path}, cs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, cell := range []string{"B2", "B3", "C2"} {
		v, err := f.GetCellValue(config.DefaultOutputSheet, cell)
		require.NoError(t, err)
		assert.Empty(t, v, cell)
	}
	v, err := f.GetCellValue(config.DefaultOutputSheet, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3.5", v)

	assert.Nil(t, cellValue(math.Inf(1)))
	assert.Nil(t, cellValue(math.NaN()))
	assert.Equal(t, 0.12, cellValue(0.12))
}

func TestExporter_CustomSheetAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.out")
	out := config.OutputConfig{Path: path, Format: "xlsx", Sheet: "well-1"}

	require.NoError(t, New(nil).Export(out, sampleSet(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"well-1"}, f.GetSheetList())
}

func TestExporter_EmptySet(t *testing.T) {
	cs, err := welllog.NewCurveSet("TVD", welllog.Curve{Name: "TVD", Unit: "ft", Values: []float64{}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, New(nil).Export(config.OutputConfig{Path: path, Summary: true}, cs))

	assert.Equal(t, [][]string{{"TVD [ft]"}}, readCSV(t, path))
	summary := readCSV(t, filepath.Join(filepath.Dir(path), "empty_summary.csv"))
	assert.Equal(t, []string{"TVD", "ft", "0", "", "", "", ""}, summary[1])
}
