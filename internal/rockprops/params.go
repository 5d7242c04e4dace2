package rockprops

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "wellmech/internal/errors"
)

// Stage names, used in errors, spans and reports
const (
	StageHydrostatic  = "hydrostatic_pressure"
	StageConfined     = "confined_pressure"
	StageMSE          = "mse"
	StageUCS          = "ucs"
	StageCCS          = "ccs"
	StageYoungs       = "youngs_modulus"
	StagePorosity     = "porosity"
	StagePermeability = "permeability"
)

// Names of the derived curves added to the merged set
const (
	CurveHydrostatic  = "PHYD"
	CurveConfined     = "PCONF"
	CurveMSE          = "MSE"
	CurveUCS          = "UCS"
	CurveCCS          = "CCS"
	CurveYoungs       = "YME"
	CurvePorosity     = "PHIE"
	CurvePermeability = "PERM"
)

// CurveNames maps pipeline inputs to curve names in the merged set.
// An empty Inclination means the well is treated as vertical.
type CurveNames struct {
	Depth        string `validate:"required"`
	Inclination  string
	WOB          string `validate:"required"`
	RPM          string `validate:"required"`
	Torque       string `validate:"required"`
	ROP          string `validate:"required"`
	DiffPressure string `validate:"required"`
	GammaRay     string `validate:"required"`
}

// DefaultCurveNames returns the project log names
func DefaultCurveNames() CurveNames {
	return CurveNames{
		Depth:        "TVD",
		WOB:          "WOB",
		RPM:          "RPM",
		Torque:       "TOR",
		ROP:          "ROP",
		DiffPressure: "DIFP",
		GammaRay:     "GR",
	}
}

// Params are the per-well constants and method choices for one pipeline
type Params struct {
	MudWeight          float64 `validate:"gt=0"` // ppg
	BitArea            float64 `validate:"gt=0"` // in²
	KickOffThreshold   float64 `validate:"gte=0,lte=180"`
	GammaRayCutoff     float64 `validate:"gte=0"`
	PumpEfficiency     float64 `validate:"gt=0,lte=1"`
	UCSMethod          UCSMethod
	PorosityMethod     PorosityMethod
	PermeabilityMethod PermeabilityMethod
	Curves             CurveNames
}

// DefaultParams returns defaults for everything except the well constants
func DefaultParams() Params {
	return Params{
		KickOffThreshold:   DefaultKickOffThreshold,
		GammaRayCutoff:     DefaultGammaRayCutoff,
		PumpEfficiency:     DefaultPumpEfficiency,
		UCSMethod:          UCSPumpEfficiency,
		PorosityMethod:     PorosityGammaFit,
		PermeabilityMethod: PermeabilityEagleFord,
		Curves:             DefaultCurveNames(),
	}
}

var validate = validator.New()

// Validate checks ranges and method ids. Method errors are reported as
// UNSUPPORTED_METHOD, everything else as CONFIGURATION.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewConfigurationError("params", "struct", err.Error())
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		}
		return apperrors.NewConfigurationError("params", fieldErrs[0].Field(), strings.Join(msgs, "; "))
	}
	if err := checkEfficiency(p.PumpEfficiency); err != nil {
		return err
	}
	if err := p.UCSMethod.check(); err != nil {
		return err
	}
	if err := p.PorosityMethod.check(); err != nil {
		return err
	}
	return p.PermeabilityMethod.check()
}
