package rockprops

import (
	"gonum.org/v1/gonum/floats"

	apperrors "wellmech/internal/errors"
)

// DefaultKickOffThreshold is the inclination, in degrees, past which the
// wellbore is treated as deviated for pressure purposes.
const DefaultKickOffThreshold = 90.0

// HydrostaticPressure computes Ph = 0.052 · mudWeight · depth.
//
// Units: mudWeight ppg, depth ft, inclination degree; result kPa.
//
// Samples with inclination above threshold are past kick-off and are frozen
// at the pressure of the deepest sample that is not. A nil inclination means
// a vertical well and nothing is frozen. When every sample is past kick-off
// there is no reference pressure and a configuration error is returned.
func HydrostaticPressure(mudWeight float64, depth, inclination []float64, threshold float64) ([]float64, error) {
	if inclination != nil {
		if err := sameLength(StageHydrostatic, series{"depth", depth}, series{"inclination", inclination}); err != nil {
			return nil, err
		}
	}

	ph := make([]float64, len(depth))
	floats.ScaleTo(ph, 0.052*mudWeight, depth)

	if inclination == nil || len(ph) == 0 {
		return ph, nil
	}

	kickOff := make([]bool, len(inclination))
	ref := -1
	for i, inc := range inclination {
		kickOff[i] = inc > threshold
		if !kickOff[i] && (ref < 0 || depth[i] >= depth[ref]) {
			ref = i
		}
	}

	if ref < 0 {
		return nil, apperrors.NewConfigurationError(StageHydrostatic, "inclination",
			"every sample is past kick-off, no reference pressure")
	}

	frozen := make([]float64, len(ph))
	for i := range frozen {
		frozen[i] = ph[ref]
	}
	return Piecewise(kickOff, frozen, ph), nil
}

// ConfinedPressure is the pointwise sum of hydrostatic and differential
// pressure, both in kPa.
func ConfinedPressure(hydrostatic, differential []float64) ([]float64, error) {
	if err := sameLength(StageConfined, series{"hydrostatic", hydrostatic}, series{"differential", differential}); err != nil {
		return nil, err
	}
	pc := make([]float64, len(hydrostatic))
	floats.AddTo(pc, hydrostatic, differential)
	return pc, nil
}
