package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wellmech/internal/config"
	apperrors "wellmech/internal/errors"
	"wellmech/internal/infrastructure"
	"wellmech/internal/rockprops"
)

const edrLAS = `~Version Information
 VERS. 2.0 :
~Curve Information
 TVD .ft :
 ROP .ft/hr :
 RPM .rev/min :
 TOR .in/lb :
 WOB .kDaN :
 DIFP .kPa :
~A
1000.0  60.0  120.0  500.0  10.0  1000.0
1010.0  55.0  121.0  510.0  11.0  1100.0
1020.0  -999.25  122.0  520.0  12.0  1200.0
1030.0  45.0  123.0  530.0  13.0  1300.0
`

const mwdCSV = `TVD,GR
1000,50
1010,70
1020,80
1030,60
1040,90
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Well.MudWeight = 8.95
	cfg.Well.BitArea = 6
	cfg.Sources = []config.SourceConfig{
		{
			Name:         "edr",
			Path:         writeFile(t, dir, "edr.las", edrLAS),
			DetectHeader: true,
			Curves: []config.ColumnConfig{
				{Curve: "TVD", Column: 0},
				{Curve: "ROP", Column: 1},
				{Curve: "RPM", Column: 2},
				{Curve: "TOR", Column: 3},
				{Curve: "WOB", Column: 4},
				{Curve: "DIFP", Column: 5},
			},
		},
		{
			Name:       "mwd",
			Path:       writeFile(t, dir, "mwd.csv", mwdCSV),
			HeaderRows: 1,
			Curves: []config.ColumnConfig{
				{Curve: "TVD", Column: 0},
				{Curve: "GR", Column: 1},
			},
		},
	}
	cfg.Output.Path = filepath.Join(dir, "out", "curves.csv")
	cfg.Telemetry.MetricsFile = filepath.Join(dir, "wellmech.prom")
	require.NoError(t, cfg.Validate())
	return cfg, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRun_Sources(t *testing.T) {
	cfg, dir := testConfig(t)
	logger := infrastructure.NewLogger(io.Discard, "debug")

	require.NoError(t, run(context.Background(), cfg, logger))

	records := readCSV(t, cfg.Output.Path)
	require.Len(t, records, 4, "header plus the three depths present in both sources")

	header := strings.Join(records[0], ",")
	for _, h := range []string{"TVD [ft]", "GR [API]", "PHYD [kPa]", "MSE [psi]", "YME [GPa]", "PHIE [fraction]", "PERM [nD]"} {
		assert.Contains(t, header, h)
	}

	summary := readCSV(t, filepath.Join(dir, "out", "curves_summary.csv"))
	assert.Len(t, summary, 1+len(records[0]))

	prom, err := os.ReadFile(cfg.Telemetry.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "pipeline_stages")
}

func TestRun_Template(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheets := map[string][][]interface{}{
		"drilling bit": {{"Bit area"}, {"in2"}, {6}},
		"drilling mud": {{"Mud weight"}, {"ppg"}, {8.95}},
		"logs": {
			{"", "TVD", "ROP", "RPM", "TOR", "WOB", "DIFP", "GR"},
			{"", "ft", "ft/hr", "rev/min", "in/lb", "kDaN", "kPa", "API"},
			{0, 1000, 60, 120, 500, 10, 1000, 50},
			{1, 1010, 55, 121, 510, 11, 1100, 70},
		},
	}
	for i, name := range []string{"drilling bit", "drilling mud", "logs"} {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	template := filepath.Join(dir, "input.xlsx")
	require.NoError(t, f.SaveAs(template))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.Well.Template = template
	cfg.Output.Path = filepath.Join(dir, "curves.xlsx")
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(context.Background(), cfg, infrastructure.NewLogger(io.Discard, "info")))

	out, err := excelize.OpenFile(cfg.Output.Path)
	require.NoError(t, err)
	defer out.Close()
	rows, err := out.GetRows(config.DefaultOutputSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRun_Errors(t *testing.T) {
	logger := infrastructure.NewLogger(io.Discard, "error")

	t.Run("gamma ray not loaded", func(t *testing.T) {
		cfg, _ := testConfig(t)
		cfg.Sources = cfg.Sources[:1]
		err := run(context.Background(), cfg, logger)
		require.Error(t, err)
		assert.True(t, apperrors.IsMissingKey(err))
		assert.NoFileExists(t, cfg.Output.Path)
	})

	t.Run("unsupported porosity method", func(t *testing.T) {
		cfg, _ := testConfig(t)
		cfg.Pipeline.PorosityMethod = 7
		err := run(context.Background(), cfg, logger)
		assert.True(t, apperrors.IsUnsupportedMethod(err))
	})

	t.Run("source file missing", func(t *testing.T) {
		cfg, dir := testConfig(t)
		cfg.Sources[1].Path = filepath.Join(dir, "absent.csv")
		err := run(context.Background(), cfg, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source mwd")
	})
}

func TestPipelineParams(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.UCSMethod = "pump-efficiency"
	cfg.Pipeline.Curves.Inclination = "INC"

	params, err := pipelineParams(cfg.Pipeline, config.WellConfig{MudWeight: 9, BitArea: 6})
	require.NoError(t, err)
	assert.Equal(t, rockprops.UCSPumpEfficiency, params.UCSMethod)
	assert.Equal(t, rockprops.PorosityGammaFit, params.PorosityMethod)
	assert.Equal(t, rockprops.PermeabilityEagleFord, params.PermeabilityMethod)
	assert.Equal(t, "INC", params.Curves.Inclination)
	assert.Equal(t, 9.0, params.MudWeight)
	assert.NoError(t, params.Validate())

	cfg.Pipeline.UCSMethod = "unknown"
	_, err = pipelineParams(cfg.Pipeline, config.WellConfig{MudWeight: 9, BitArea: 6})
	assert.True(t, apperrors.IsUnsupportedMethod(err))
}
