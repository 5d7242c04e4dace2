package welllog

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wellmech/internal/errors"
)

func mustSet(t *testing.T, curves ...Curve) *CurveSet {
	t.Helper()
	cs, err := NewCurveSet("TVD", curves...)
	require.NoError(t, err)
	return cs
}

func depthCurve(values ...float64) Curve {
	return Curve{Name: "TVD", Unit: UnitFeet, Values: values}
}

// pairs returns the (depth, value) pairs of a curve
func pairs(cs *CurveSet, name string) map[float64]float64 {
	out := make(map[float64]float64)
	depth := cs.Depth()
	for i, v := range cs.Values(name) {
		out[depth[i]] = v
	}
	return out
}

func TestMerge_Intersection(t *testing.T) {
	edr := mustSet(t,
		depthCurve(100, 110, 120, 130),
		Curve{Name: "ROP", Unit: UnitFeetPerHour, Source: "edr", Values: []float64{60, 61, 62, 63}},
		Curve{Name: "WOB", Unit: UnitKiloDecaNewton, Source: "edr", Values: []float64{10, 11, 12, 13}},
	)
	// rows deliberately out of order relative to edr
	mwd := mustSet(t,
		depthCurve(130, 90, 110, 120),
		Curve{Name: "GR", Unit: UnitAPI, Source: "mwd", Values: []float64{83, 80, 81, 82}},
	)

	merged, err := Merge([]*CurveSet{edr, mwd}, "TVD")
	require.NoError(t, err)

	assert.Equal(t, []float64{110, 120, 130}, merged.Depth())
	assert.Equal(t, []string{"ROP", "WOB", "GR", "TVD"}, merged.Names())
	assert.Equal(t, []float64{61, 62, 63}, merged.Values("ROP"))
	assert.Equal(t, []float64{11, 12, 13}, merged.Values("WOB"))
	assert.Equal(t, []float64{81, 82, 83}, merged.Values("GR"), "rows are joined by depth, not position")

	gr, _ := merged.Curve("GR")
	assert.Equal(t, "mwd", gr.Source)
	assert.Equal(t, UnitAPI, gr.Unit)
}

func TestMerge_Commutative(t *testing.T) {
	a := mustSet(t, depthCurve(1, 2, 3, 4), Curve{Name: "A", Values: []float64{10, 20, 30, 40}})
	b := mustSet(t, depthCurve(4, 3, 5), Curve{Name: "B", Values: []float64{400, 300, 500}})

	ab, err := Merge([]*CurveSet{a, b}, "TVD")
	require.NoError(t, err)
	ba, err := Merge([]*CurveSet{b, a}, "TVD")
	require.NoError(t, err)

	assert.ElementsMatch(t, ab.Depth(), ba.Depth())
	assert.Equal(t, pairs(ab, "A"), pairs(ba, "A"))
	assert.Equal(t, pairs(ab, "B"), pairs(ba, "B"))
}

func TestMerge_ManySourcesProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(6)
		sets := make([]*CurveSet, n)
		depthSets := make([]map[float64]bool, n)

		for s := 0; s < n; s++ {
			perm := rng.Perm(40)[:10+rng.Intn(25)]
			depth := make([]float64, len(perm))
			vals := make([]float64, len(perm))
			depthSets[s] = make(map[float64]bool)
			for i, p := range perm {
				depth[i] = float64(p) * 0.5
				vals[i] = depth[i]*1000 + float64(s)
				depthSets[s][depth[i]] = true
			}
			sets[s] = mustSet(t, depthCurve(depth...), Curve{Name: fmt.Sprintf("C%d", s), Values: vals})
		}

		merged, err := Merge(sets, "TVD")
		require.NoError(t, err)

		want := 0
		for d := range depthSets[0] {
			inAll := true
			for _, ds := range depthSets[1:] {
				inAll = inAll && ds[d]
			}
			if inAll {
				want++
			}
		}
		assert.Equal(t, want, merged.Len())

		depth := merged.Depth()
		for _, d := range depth {
			for s := range depthSets {
				assert.True(t, depthSets[s][d], "depth %g missing from source %d", d, s)
			}
		}
		// every sample traces back to the source row with the same depth
		for s := 0; s < n; s++ {
			for i, v := range merged.Values(fmt.Sprintf("C%d", s)) {
				assert.Equal(t, depth[i]*1000+float64(s), v)
			}
		}
	}
}

func TestMerge_EmptyIntersection(t *testing.T) {
	a := mustSet(t, depthCurve(1, 2), Curve{Name: "A", Values: []float64{1, 2}})
	b := mustSet(t, depthCurve(3, 4), Curve{Name: "B", Values: []float64{3, 4}})

	merged, err := Merge([]*CurveSet{a, b}, "TVD")
	require.NoError(t, err)
	assert.True(t, merged.IsEmpty())
	assert.Equal(t, []float64{}, merged.Values("A"))
	assert.True(t, apperrors.IsEmptyResult(CheckEmpty("merge", merged)))
}

func TestMerge_SingleSource(t *testing.T) {
	a := mustSet(t, depthCurve(3, 1, 2), Curve{Name: "A", Values: []float64{30, 10, 20}})

	merged, err := Merge([]*CurveSet{a}, "TVD")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, merged.Depth())
	assert.Equal(t, []float64{10, 20, 30}, merged.Values("A"))
}

func TestMerge_Errors(t *testing.T) {
	good := mustSet(t, depthCurve(1, 2), Curve{Name: "A", Values: []float64{1, 2}})
	noDepth, err := NewCurveSet("MD", Curve{Name: "MD", Values: []float64{1}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		sets    []*CurveSet
		check   func(error) bool
		message []string
	}{
		{
			name:    "missing key names the source",
			sets:    []*CurveSet{good, noDepth},
			check:   apperrors.IsMissingKey,
			message: []string{"source 2", "TVD"},
		},
		{
			name: "duplicate depth",
			sets: []*CurveSet{
				good,
				mustSet(t, depthCurve(1, 1), Curve{Name: "B", Values: []float64{1, 2}}),
			},
			check:   apperrors.IsConfiguration,
			message: []string{"source 2", "depth 1"},
		},
		{
			name: "NaN depth",
			sets: []*CurveSet{
				mustSet(t, depthCurve(100, math.NaN()), Curve{Name: "A", Values: []float64{1, 2}}),
				mustSet(t, depthCurve(100, 200), Curve{Name: "B", Values: []float64{10, 20}}),
			},
			check:   apperrors.IsConfiguration,
			message: []string{"source 1", "NaN", "row 1"},
		},
		{
			name: "infinite depth",
			sets: []*CurveSet{
				good,
				mustSet(t, depthCurve(1, math.Inf(1)), Curve{Name: "B", Values: []float64{1, 2}}),
			},
			check:   apperrors.IsConfiguration,
			message: []string{"source 2", "+Inf", "row 1"},
		},
		{
			name: "curve name collision",
			sets: []*CurveSet{
				good,
				mustSet(t, depthCurve(1, 2), Curve{Name: "A", Values: []float64{5, 6}}),
			},
			check:   apperrors.IsConfiguration,
			message: []string{"source 2", "A", "source 1"},
		},
		{
			name: "depth unit mismatch",
			sets: []*CurveSet{
				good,
				mustSet(t, Curve{Name: "TVD", Unit: "m", Values: []float64{1}}, Curve{Name: "B", Values: []float64{1}}),
			},
			check:   apperrors.IsConfiguration,
			message: []string{"source 2", "unit"},
		},
		{
			name:  "no sources",
			sets:  nil,
			check: apperrors.IsConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := Merge(tt.sets, "TVD")
			require.Error(t, err)
			assert.Nil(t, merged)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			for _, m := range tt.message {
				assert.Contains(t, err.Error(), m)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		in       float64
		want     float64
	}{
		{"psi to MPa", UnitPsi, UnitMegaPascal, 5000, 5000 * 0.101325 / 14.7},
		{"kPa to psi", UnitKiloPascal, UnitPsi, 101.325, 14.7},
		{"kPa to MPa", UnitKiloPascal, UnitMegaPascal, 2500, 2.5},
		{"ft/hr to in/min", UnitFeetPerHour, UnitInchPerMinute, 60, 12},
		{"kDaN to lbf", UnitKiloDecaNewton, UnitPoundForce, 10, 22480.894387096},
		{"identity", UnitAPI, UnitAPI, 80, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertValue(tt.in, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)

			all, err := Convert([]float64{tt.in}, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, got, all[0])
		})
	}

	_, err := Convert([]float64{1}, UnitAPI, UnitPsi)
	assert.True(t, apperrors.IsConfiguration(err))
}
