package rockprops

import (
	"strconv"
	"strings"

	apperrors "wellmech/internal/errors"
)

// UCSMethod selects the correlation used to derive UCS from MSE
type UCSMethod string

const (
	// UCSPumpEfficiency scales MSE by a constant drilling efficiency (Joshua Love)
	UCSPumpEfficiency UCSMethod = "pump efficiency"
)

// ParseUCSMethod accepts the method name with spaces, dashes or underscores
func ParseUCSMethod(s string) (UCSMethod, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s)))
	m := UCSMethod(norm)
	if err := m.check(); err != nil {
		return "", apperrors.NewUnsupportedMethodError(StageUCS, s)
	}
	return m, nil
}

func (m UCSMethod) check() error {
	switch m {
	case UCSPumpEfficiency:
		return nil
	default:
		return apperrors.NewUnsupportedMethodError(StageUCS, string(m))
	}
}

// PorosityMethod selects one of the porosity-from-UCS correlations
type PorosityMethod int

const (
	// PorosityAADE uses the AADE-17-NTCE-134 / SPE-185115 coefficient pairs
	PorosityAADE PorosityMethod = 1
	// PorositySPE185741 uses the SPE-185741 coefficient pairs
	PorositySPE185741 PorosityMethod = 2
	// PorosityGammaFit is a closed-form fit over UCS and gamma ray; no cutoff
	PorosityGammaFit PorosityMethod = 3
)

// ParsePorosityMethod parses a numeric method id
func ParsePorosityMethod(s string) (PorosityMethod, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewUnsupportedMethodError(StagePorosity, s)
	}
	m := PorosityMethod(n)
	if err := m.check(); err != nil {
		return 0, err
	}
	return m, nil
}

func (m PorosityMethod) check() error {
	switch m {
	case PorosityAADE, PorositySPE185741, PorosityGammaFit:
		return nil
	default:
		return apperrors.NewUnsupportedMethodError(StagePorosity, int(m))
	}
}

// PermeabilityMethod selects the permeability-from-porosity correlation
type PermeabilityMethod int

const (
	// PermeabilityEagleFord is tied to porosity method 1 (AADE-17-NTCE-134)
	PermeabilityEagleFord PermeabilityMethod = 1
)

// ParsePermeabilityMethod parses a numeric method id
func ParsePermeabilityMethod(s string) (PermeabilityMethod, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewUnsupportedMethodError(StagePermeability, s)
	}
	m := PermeabilityMethod(n)
	if err := m.check(); err != nil {
		return 0, err
	}
	return m, nil
}

func (m PermeabilityMethod) check() error {
	switch m {
	case PermeabilityEagleFord:
		return nil
	default:
		return apperrors.NewUnsupportedMethodError(StagePermeability, int(m))
	}
}
