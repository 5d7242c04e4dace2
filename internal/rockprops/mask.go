package rockprops

import (
	"fmt"

	apperrors "wellmech/internal/errors"
)

// ShaleMask flags samples whose gamma ray reading is above the cutoff.
// Samples at exactly the cutoff count as non-shale.
func ShaleMask(gr []float64, cutoff float64) []bool {
	mask := make([]bool, len(gr))
	for i, v := range gr {
		mask[i] = v > cutoff
	}
	return mask
}

// Not returns the complement of a mask
func Not(mask []bool) []bool {
	out := make([]bool, len(mask))
	for i, m := range mask {
		out[i] = !m
	}
	return out
}

// Piecewise builds one array from two candidates: ifTrue where mask is set,
// ifFalse elsewhere. Every sample takes exactly one branch.
func Piecewise(mask []bool, ifTrue, ifFalse []float64) []float64 {
	out := make([]float64, len(mask))
	for i, m := range mask {
		if m {
			out[i] = ifTrue[i]
		} else {
			out[i] = ifFalse[i]
		}
	}
	return out
}

type series struct {
	name   string
	values []float64
}

// sameLength checks that all inputs of a stage have the same number of samples
func sameLength(stage string, in ...series) error {
	if len(in) == 0 {
		return nil
	}
	n := len(in[0].values)
	for _, s := range in[1:] {
		if len(s.values) != n {
			return apperrors.NewConfigurationError(stage, s.name,
				fmt.Sprintf("has %d samples, %s has %d", len(s.values), in[0].name, n))
		}
	}
	return nil
}
