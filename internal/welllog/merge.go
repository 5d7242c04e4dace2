package welllog

import (
	"fmt"
	"math"
	"sort"

	apperrors "wellmech/internal/errors"
)

// Merge aligns several CurveSets on the intersection of their depth values
// and stacks their non-key curves into one CurveSet.
//
// The merged depth axis is the set intersection of every input depth axis,
// sorted ascending. Rows are joined on depth equality, never on position, so
// sources may list their samples in any order. Non-key curves follow source
// order, the depth curve comes last.
//
// Depth values must be finite and unique within each source; anything else
// is reported as a configuration error. Two sources supplying a curve with the same name is
// also a configuration error. An empty intersection yields a zero-length set
// and no error.
func Merge(sets []*CurveSet, depthKey string) (*CurveSet, error) {
	if len(sets) == 0 {
		return nil, apperrors.NewConfigurationError("merge", depthKey, "no sources to merge")
	}

	indexes := make([]map[float64]int, len(sets))
	for i, cs := range sets {
		if cs == nil || !cs.Has(depthKey) {
			return nil, apperrors.NewMissingKeyError(sourceLabel(i), depthKey)
		}
		if u, first := cs.curves[depthKey].Unit, sets[0].curves[depthKey].Unit; u != first {
			return nil, apperrors.NewConfigurationError(sourceLabel(i), depthKey,
				fmt.Sprintf("depth unit %q does not match %q", u, first))
		}
		idx, err := depthIndex(sourceLabel(i), depthKey, cs.curves[depthKey].Values)
		if err != nil {
			return nil, err
		}
		indexes[i] = idx
	}

	common := commonDepths(indexes)

	merged := make([]Curve, 0)
	provider := make(map[string]int)
	for i, cs := range sets {
		rows := make([]int, len(common))
		for j, d := range common {
			rows[j] = indexes[i][d]
		}

		for _, name := range cs.order {
			if name == depthKey {
				continue
			}
			if prev, dup := provider[name]; dup {
				return nil, apperrors.NewConfigurationError(sourceLabel(i), name,
					fmt.Sprintf("curve already provided by %s", sourceLabel(prev)))
			}
			provider[name] = i
			merged = append(merged, project(cs.curves[name], rows))
		}
	}

	depthCurve := sets[0].curves[depthKey]
	merged = append(merged, Curve{
		Name:   depthKey,
		Unit:   depthCurve.Unit,
		Source: "merge",
		Values: common,
	})

	return NewCurveSet(depthKey, merged...)
}

// depthIndex maps every depth value of one source to its row. NaN never
// equals itself as a map key, so non-finite depths are rejected here.
func depthIndex(source, depthKey string, depth []float64) (map[float64]int, error) {
	idx := make(map[float64]int, len(depth))
	for row, d := range depth {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, apperrors.NewConfigurationError(source, depthKey,
				fmt.Sprintf("depth %g in row %d is not a finite number", d, row))
		}
		if prev, dup := idx[d]; dup {
			return nil, apperrors.NewConfigurationError(source, depthKey,
				fmt.Sprintf("depth %g appears in rows %d and %d", d, prev, row))
		}
		idx[d] = row
	}
	return idx, nil
}

// commonDepths folds the per-source depth sets into their intersection.
// Folding is iterative, so the number of sources is not bounded by stack
// depth.
func commonDepths(indexes []map[float64]int) []float64 {
	common := make(map[float64]struct{}, len(indexes[0]))
	for d := range indexes[0] {
		common[d] = struct{}{}
	}
	for _, idx := range indexes[1:] {
		for d := range common {
			if _, ok := idx[d]; !ok {
				delete(common, d)
			}
		}
	}

	out := make([]float64, 0, len(common))
	for d := range common {
		out = append(out, d)
	}
	sort.Float64s(out)
	return out
}

func project(c Curve, rows []int) Curve {
	values := make([]float64, len(rows))
	for j, r := range rows {
		values[j] = c.Values[r]
	}
	return Curve{Name: c.Name, Unit: c.Unit, Source: c.Source, Values: values}
}

func sourceLabel(i int) string {
	return fmt.Sprintf("source %d", i+1)
}
