package welllog

import (
	"fmt"
)

// Curve is a single named, unit-tagged log sampled on a depth axis.
type Curve struct {
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
	Source string    `json:"source"` // ingestion source or producing stage
	Values []float64 `json:"values"`
}

// Len returns the number of samples
func (c Curve) Len() int {
	return len(c.Values)
}

// Clone returns a deep copy of the curve
func (c Curve) Clone() Curve {
	values := make([]float64, len(c.Values))
	copy(values, c.Values)
	c.Values = values
	return c
}

// CurveSet is an ordered collection of curves sharing one depth axis. A
// CurveSet is immutable once built: accessors hand out copies and With
// returns a new set.
type CurveSet struct {
	depthKey string
	order    []string
	curves   map[string]Curve
	length   int
}

// NewCurveSet builds a CurveSet. Every curve must have the same length, names
// must be unique and one of them must be depthKey.
func NewCurveSet(depthKey string, curves ...Curve) (*CurveSet, error) {
	cs := &CurveSet{
		depthKey: depthKey,
		order:    make([]string, 0, len(curves)),
		curves:   make(map[string]Curve, len(curves)),
		length:   -1,
	}

	for _, c := range curves {
		if err := cs.add(c); err != nil {
			return nil, err
		}
	}

	if _, ok := cs.curves[depthKey]; !ok {
		return nil, fmt.Errorf("curve set has no depth curve %q", depthKey)
	}
	return cs, nil
}

func (cs *CurveSet) add(c Curve) error {
	if c.Name == "" {
		return fmt.Errorf("curve without a name")
	}
	if _, dup := cs.curves[c.Name]; dup {
		return fmt.Errorf("duplicate curve %q", c.Name)
	}
	if cs.length >= 0 && c.Len() != cs.length {
		return fmt.Errorf("curve %q has %d samples, want %d", c.Name, c.Len(), cs.length)
	}
	cs.length = c.Len()
	cs.order = append(cs.order, c.Name)
	cs.curves[c.Name] = c.Clone()
	return nil
}

// DepthKey returns the name of the depth curve
func (cs *CurveSet) DepthKey() string {
	return cs.depthKey
}

// Len returns the number of samples per curve
func (cs *CurveSet) Len() int {
	if cs.length < 0 {
		return 0
	}
	return cs.length
}

// IsEmpty reports whether the set holds zero samples
func (cs *CurveSet) IsEmpty() bool {
	return cs.Len() == 0
}

// Names returns the curve names in insertion order
func (cs *CurveSet) Names() []string {
	names := make([]string, len(cs.order))
	copy(names, cs.order)
	return names
}

// Has reports whether the set contains a curve
func (cs *CurveSet) Has(name string) bool {
	_, ok := cs.curves[name]
	return ok
}

// Curve returns a copy of the named curve
func (cs *CurveSet) Curve(name string) (Curve, bool) {
	c, ok := cs.curves[name]
	if !ok {
		return Curve{}, false
	}
	return c.Clone(), true
}

// Values returns a copy of the named curve's samples, or nil
func (cs *CurveSet) Values(name string) []float64 {
	c, ok := cs.Curve(name)
	if !ok {
		return nil
	}
	return c.Values
}

// Depth returns a copy of the depth axis
func (cs *CurveSet) Depth() []float64 {
	return cs.Values(cs.depthKey)
}

// Curves returns copies of all curves in insertion order
func (cs *CurveSet) Curves() []Curve {
	out := make([]Curve, 0, len(cs.order))
	for _, name := range cs.order {
		out = append(out, cs.curves[name].Clone())
	}
	return out
}

// With returns a new CurveSet holding the existing curves followed by the
// given ones. The receiver is left untouched.
func (cs *CurveSet) With(curves ...Curve) (*CurveSet, error) {
	all := append(cs.Curves(), curves...)
	return NewCurveSet(cs.depthKey, all...)
}

// Row returns the samples at index i keyed by curve name
func (cs *CurveSet) Row(i int) map[string]float64 {
	if i < 0 || i >= cs.Len() {
		return nil
	}
	row := make(map[string]float64, len(cs.order))
	for _, name := range cs.order {
		row[name] = cs.curves[name].Values[i]
	}
	return row
}
