package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "zero value",
			input:    0.0,
			expected: "0",
		},
		{
			name:     "integer",
			input:    1020.0,
			expected: "1020",
		},
		{
			name:     "negative decimal",
			input:    -789.123,
			expected: "-789.123",
		},
		{
			name:     "full precision kept",
			input:    0.30000000000000004,
			expected: "0.30000000000000004",
		},
		{
			name:     "small value not in exponent form",
			input:    0.00042,
			expected: "0.00042",
		},
		{
			name:     "NaN is blank",
			input:    math.NaN(),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		curve welllog.Curve
		want  string
	}{
		{welllog.Curve{Name: "TVD", Unit: "ft"}, "TVD [ft]"},
		{welllog.Curve{Name: "Rate Of Penetration", Unit: "ft/hr"}, "Rate Of Penetration [ft/hr]"},
		{welllog.Curve{Name: "IDX"}, "IDX"},
	}

	for _, tt := range tests {
		h := Header(tt.curve)
		assert.Equal(t, tt.want, h)

		name, unit := ParseHeader(h)
		assert.Equal(t, tt.curve.Name, name)
		assert.Equal(t, tt.curve.Unit, unit)
	}

	name, unit := ParseHeader("GR[API]")
	assert.Equal(t, "GR[API]", name)
	assert.Empty(t, unit)
}

func TestResolveFormat(t *testing.T) {
	f, err := ResolveFormat("out/curves.XLSX", "")
	assert.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ResolveFormat("out/curves.dat", "CSV")
	assert.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ResolveFormat("out/curves.json", "")
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestSummaryPath(t *testing.T) {
	assert.Equal(t, "out/curves_summary.csv", summaryPath("out/curves.csv"))
	assert.Equal(t, "curves_summary", summaryPath("curves"))
}
