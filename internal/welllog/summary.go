package welllog

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CurveSummary holds descriptive statistics for one curve
type CurveSummary struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Samples int     `json:"samples"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

// Summarize describes a curve. Empty curves report NaN statistics.
func Summarize(c Curve) CurveSummary {
	s := CurveSummary{Name: c.Name, Unit: c.Unit, Samples: c.Len()}
	if c.Len() == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(c.Values)
	s.Max = floats.Max(c.Values)
	s.Mean, s.StdDev = stat.MeanStdDev(c.Values, nil)
	return s
}

// SummarizeSet describes every curve of a set in order
func SummarizeSet(cs *CurveSet) []CurveSummary {
	out := make([]CurveSummary, 0, len(cs.order))
	for _, name := range cs.order {
		out = append(out, Summarize(cs.curves[name]))
	}
	return out
}
