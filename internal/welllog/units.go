package welllog

import (
	"fmt"

	apperrors "wellmech/internal/errors"
)

// Unit tags used across the project
const (
	UnitFeet           = "ft"
	UnitFeetPerHour    = "ft/hr"
	UnitInchPerMinute  = "in/min"
	UnitRevPerMinute   = "rev/min"
	UnitInchPound      = "in/lb"
	UnitKiloDecaNewton = "kDaN"
	UnitPoundForce     = "lbf"
	UnitKiloPascal     = "kPa"
	UnitMegaPascal     = "MPa"
	UnitGigaPascal     = "GPa"
	UnitPsi            = "psi"
	UnitDegree         = "degree"
	UnitAPI            = "API"
	UnitPoundPerGallon = "ppg"
	UnitSquareInch     = "in2"
	UnitFraction       = "fraction"
	UnitNanoDarcy      = "nD"
)

// CanonicalUnits is the registry of log names the project understands and
// the unit each one is expected in. Long names come from rig exports, short
// mnemonics from LAS headers.
var CanonicalUnits = map[string]string{
	"Hole Depth":            UnitFeet,
	"Rate Of Penetration":   UnitFeetPerHour,
	"Rotary RPM":            UnitRevPerMinute,
	"Rotary Torque":         UnitInchPound,
	"Weight on Bit":         UnitKiloDecaNewton,
	"Differential Pressure": UnitKiloPascal,
	"Inclination":           UnitDegree,
	"Gamma":                 UnitAPI,

	"TVD":  UnitFeet,
	"ROP":  UnitFeetPerHour,
	"RPM":  UnitRevPerMinute,
	"TOR":  UnitInchPound,
	"WOB":  UnitKiloDecaNewton,
	"DIFP": UnitKiloPascal,
	"INC":  UnitDegree,
	"GR":   UnitAPI,
}

// UnitFor looks a log name up in CanonicalUnits
func UnitFor(name string) (string, bool) {
	u, ok := CanonicalUnits[name]
	return u, ok
}

type unitPair struct{ from, to string }

// Conversion constants come from the published correlations and are kept
// exactly as written there; the operation order matters for the last bits.
var conversions = map[unitPair]func(float64) float64{
	{UnitPsi, UnitMegaPascal}:            func(v float64) float64 { return v * 0.101325 / 14.7 },
	{UnitKiloPascal, UnitPsi}:            func(v float64) float64 { return v * 1000 * 14.7 / 101325 },
	{UnitKiloPascal, UnitMegaPascal}:     func(v float64) float64 { return v / 1000 },
	{UnitFeetPerHour, UnitInchPerMinute}: func(v float64) float64 { return v * 12 / 60 },
	{UnitKiloDecaNewton, UnitPoundForce}: func(v float64) float64 { return v * 1000 * 2.2480894387096 },
}

// ConvertValue converts a single value between units
func ConvertValue(v float64, from, to string) (float64, error) {
	if from == to {
		return v, nil
	}
	fn, ok := conversions[unitPair{from, to}]
	if !ok {
		return 0, apperrors.NewConfigurationError("units", from+"->"+to, "no conversion defined")
	}
	return fn(v), nil
}

// Convert returns a new slice with every value converted between units
func Convert(values []float64, from, to string) ([]float64, error) {
	out := make([]float64, len(values))
	if from == to {
		copy(out, values)
		return out, nil
	}
	fn, ok := conversions[unitPair{from, to}]
	if !ok {
		return nil, apperrors.NewConfigurationError("units", from+"->"+to, "no conversion defined")
	}
	for i, v := range values {
		out[i] = fn(v)
	}
	return out, nil
}

// ConvertCurve converts a curve into another unit, keeping name and source
func ConvertCurve(c Curve, to string) (Curve, error) {
	values, err := Convert(c.Values, c.Unit, to)
	if err != nil {
		return Curve{}, fmt.Errorf("convert curve %s: %w", c.Name, err)
	}
	return Curve{Name: c.Name, Unit: to, Source: c.Source, Values: values}, nil
}
