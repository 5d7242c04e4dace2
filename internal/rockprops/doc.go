// Package rockprops derives rock mechanical properties from a merged well log.
//
// Each derivation is a plain function over aligned sample vectors:
//
//	HydrostaticPressure  mud weight, depth, inclination -> PHYD (kPa)
//	ConfinedPressure     PHYD + differential pressure   -> PCONF (kPa)
//	MechanicalSpecificEnergy  WOB, bit area, RPM, torque, ROP -> MSE (psi)
//	UnconfinedStrength   MSE                            -> UCS (psi)
//	ConfinedStrength     UCS, gamma ray, diff. pressure -> CCS (psi)
//	YoungsModulus        CCS, PCONF                     -> YME
//	Porosity             UCS, gamma ray                 -> PHIE (fraction)
//	Permeability         PHIE                           -> PERM (nD)
//
// Pipeline wires them together over a welllog.CurveSet, resolving the input
// curves by name, checking units and running independent branches
// concurrently. Samples whose gamma ray is above the cutoff are treated as
// shale; the shale and non-shale branches of CCS and porosity are joined with
// Piecewise.
package rockprops
