package rockprops

import (
	"math"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/welllog"
)

// MechanicalSpecificEnergy computes Teale's MSE in psi:
//
//	MSE = WOB/A + 2π·RPM·T / (A·ROP)
//
// wob is kDaN, bitArea in², rpm rev/min, torque in/lb and rop ft/hr. WOB is
// converted to lbf and ROP to in/min before the formula is applied.
func MechanicalSpecificEnergy(wob []float64, bitArea float64, rpm, torque, rop []float64) ([]float64, error) {
	if err := sameLength(StageMSE,
		series{"wob", wob}, series{"rpm", rpm}, series{"torque", torque}, series{"rop", rop}); err != nil {
		return nil, err
	}
	if !(bitArea > 0) {
		return nil, apperrors.NewConfigurationError(StageMSE, "bit_area", "must be positive")
	}

	wobLbf, err := welllog.Convert(wob, welllog.UnitKiloDecaNewton, welllog.UnitPoundForce)
	if err != nil {
		return nil, err
	}
	ropInMin, err := welllog.Convert(rop, welllog.UnitFeetPerHour, welllog.UnitInchPerMinute)
	if err != nil {
		return nil, err
	}

	mse := make([]float64, len(wob))
	for i := range mse {
		mse[i] = wobLbf[i]/bitArea + 2*math.Pi*rpm[i]*torque[i]/(bitArea*ropInMin[i])
	}
	return mse, nil
}
