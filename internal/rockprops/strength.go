package rockprops

import (
	"math"

	"gonum.org/v1/gonum/floats"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

// DefaultPumpEfficiency is the drilling efficiency used by the pump-efficiency UCS method
const DefaultPumpEfficiency = 0.60

// DefaultGammaRayCutoff separates shale (above) from non-shale, in API
const DefaultGammaRayCutoff = 65.0

// UnconfinedStrength derives UCS (psi) from MSE (psi)
func UnconfinedStrength(method UCSMethod, mse []float64, efficiency float64) ([]float64, error) {
	if err := method.check(); err != nil {
		return nil, err
	}
	ucs := make([]float64, len(mse))
	floats.ScaleTo(ucs, efficiency, mse)
	return ucs, nil
}

// Coefficients for CCS = UCS · (1 + a·ΔP^b), ΔP in psi.
const (
	ccsShaleA    = 0.00432
	ccsShaleB    = 0.782
	ccsNonShaleA = 0.0133
	ccsNonShaleB = 0.577
)

// ConfinedStrength derives CCS (psi) from UCS (psi), gamma ray (API) and the
// differential pressure (kPa). Shale samples and the rest use separate
// coefficient pairs.
func ConfinedStrength(ucs, gr, differentialKPa []float64, cutoff float64) ([]float64, error) {
	if err := sameLength(StageCCS,
		series{"ucs", ucs}, series{"gr", gr}, series{"differential", differentialKPa}); err != nil {
		return nil, err
	}

	dp, err := welllog.Convert(differentialKPa, welllog.UnitKiloPascal, welllog.UnitPsi)
	if err != nil {
		return nil, err
	}

	shale := make([]float64, len(ucs))
	nonShale := make([]float64, len(ucs))
	for i := range ucs {
		shale[i] = ucs[i] * (1 + ccsShaleA*math.Pow(dp[i], ccsShaleB))
		nonShale[i] = ucs[i] * (1 + ccsNonShaleA*math.Pow(dp[i], ccsNonShaleB))
	}
	return Piecewise(ShaleMask(gr, cutoff), shale, nonShale), nil
}

const (
	youngsA = 4.5396
	youngsB = 0.1926
)

// YoungsModulus estimates E (GPa) from CCS (psi) and confined pressure (kPa):
//
//	E = CCS · 4.5396 · Pc^0.1926   (CCS and Pc in MPa)
func YoungsModulus(ccsPsi, confinedKPa []float64) ([]float64, error) {
	if err := sameLength(StageYoungs, series{"ccs", ccsPsi}, series{"confined", confinedKPa}); err != nil {
		return nil, err
	}
	ccs, err := welllog.Convert(ccsPsi, welllog.UnitPsi, welllog.UnitMegaPascal)
	if err != nil {
		return nil, err
	}
	pc, err := welllog.Convert(confinedKPa, welllog.UnitKiloPascal, welllog.UnitMegaPascal)
	if err != nil {
		return nil, err
	}

	e := make([]float64, len(ccs))
	for i := range e {
		e[i] = ccs[i] * youngsA * math.Pow(pc[i], youngsB)
	}
	return e, nil
}

// checkEfficiency rejects efficiencies outside (0, 1]
func checkEfficiency(eff float64) error {
	if !(eff > 0 && eff <= 1) {
		return apperrors.NewConfigurationError(StageUCS, "pump_efficiency", "must be in (0, 1]")
	}
	return nil
}
