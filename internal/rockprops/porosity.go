package rockprops

import (
	"math"

	"wellmech/internal/welllog"
)

// porosityCoefficients holds φ% = k·UCS^p for the shale and non-shale branches
type porosityCoefficients struct {
	shaleK, shaleP       float64
	nonShaleK, nonShaleP float64
}

var porosityFits = map[PorosityMethod]porosityCoefficients{
	PorosityAADE:      {shaleK: 92.529, shaleP: -0.63, nonShaleK: 424.8, nonShaleP: -0.825},
	PorositySPE185741: {shaleK: 88.331, shaleP: -0.636, nonShaleK: 256.25, nonShaleP: -0.788},
}

// Porosity estimates porosity (fraction) from UCS (psi) and gamma ray (API).
// Methods 1 and 2 split on the shale mask; method 3 ignores the cutoff.
func Porosity(method PorosityMethod, ucsPsi, gr []float64, cutoff float64) ([]float64, error) {
	if err := method.check(); err != nil {
		return nil, err
	}
	if err := sameLength(StagePorosity, series{"ucs", ucsPsi}, series{"gr", gr}); err != nil {
		return nil, err
	}

	ucs, err := welllog.Convert(ucsPsi, welllog.UnitPsi, welllog.UnitMegaPascal)
	if err != nil {
		return nil, err
	}

	if method == PorosityGammaFit {
		phi := make([]float64, len(ucs))
		for i := range phi {
			phi[i] = 1.75 / (math.Pow(gr[i], 0.25) * math.Pow(ucs[i], 0.47))
		}
		return phi, nil
	}

	fit := porosityFits[method]
	shale := make([]float64, len(ucs))
	nonShale := make([]float64, len(ucs))
	for i := range ucs {
		// methods 1 and 2 were fitted against a second psi->MPa factor
		u := ucs[i] * 101.325 / 14.7
		shale[i] = fit.shaleK * math.Pow(u, fit.shaleP) / 100
		nonShale[i] = fit.nonShaleK * math.Pow(u, fit.nonShaleP) / 100
	}
	return Piecewise(ShaleMask(gr, cutoff), shale, nonShale), nil
}
