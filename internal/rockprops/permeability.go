package rockprops

import "math"

// Permeability estimates permeability (nD) from porosity (fraction):
//
//	k = 6.93 · (100·φ)^2.5313
//
// The fit was made against porosity method 1.
func Permeability(method PermeabilityMethod, phi []float64) ([]float64, error) {
	if err := method.check(); err != nil {
		return nil, err
	}
	k := make([]float64, len(phi))
	for i, p := range phi {
		k[i] = 6.93 * math.Pow(p*100, 2.5313)
	}
	return k, nil
}
