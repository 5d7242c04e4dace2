// Package welllog holds the depth-indexed log data model and the alignment
// engine that puts logs from several sources on one depth axis.
//
// # Data Model
//
// A Curve is a named, unit-tagged slice of samples. A CurveSet groups curves
// of equal length that share a depth curve; sample i of every curve belongs
// to the depth at index i of the depth curve. CurveSets are never modified
// after construction, every stage builds a new one.
//
// # Data Flow
//
//	raw Table → Extract → CurveSet (per source) → Merge → CurveSet (common depth axis)
//
// Extract applies the header offset and the positivity filter. Merge keeps
// only the depths present in every source and joins rows by depth value.
//
// # Units
//
// Unit tags are plain strings (see the Unit* constants). Convert and
// ConvertCurve apply the fixed conversion factors used by the rock-property
// correlations; CanonicalUnits lists the unit expected for every known log.
package welllog
