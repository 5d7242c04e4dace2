package rockprops

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "wellmech/internal/errors"
	"wellmech/internal/infrastructure"
	"wellmech/internal/welllog"
)

// stageOrder fixes the order of reports regardless of completion order
var stageOrder = map[string]int{
	StageHydrostatic:  0,
	StageConfined:     1,
	StageMSE:          2,
	StageUCS:          3,
	StageCCS:          4,
	StageYoungs:       5,
	StagePorosity:     6,
	StagePermeability: 7,
}

// StageReport describes one completed stage
type StageReport struct {
	Name     string
	Curve    string
	Samples  int
	Duration time.Duration
}

// Result is the outcome of a pipeline run
type Result struct {
	RunID string
	// Curves holds the input curves plus every derived curve
	Curves   *welllog.CurveSet
	Stages   []StageReport
	Warnings []error
}

// Stage returns the report of the named stage
func (r *Result) Stage(name string) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageReport{}, false
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithTracer sets the tracer used for run and stage spans
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tel.tracer = tracer
	}
}

// WithMetrics records run and stage metrics on m
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(p *Pipeline) {
		p.tel.metrics = m
	}
}

// Pipeline derives rock properties from a merged curve set
type Pipeline struct {
	params Params
	logger *slog.Logger
	tel    *pipelineTracer
}

// NewPipeline validates params and returns a ready pipeline. A nil logger
// uses slog.Default().
func NewPipeline(params Params, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		params: params,
		logger: infrastructure.WithComponent(logger, "rockprops"),
		tel:    newPipelineTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Params returns the parameters the pipeline was built with
func (p *Pipeline) Params() Params {
	return p.params
}

// inputs are the resolved, unit-checked input vectors of one run
type inputs struct {
	depth        []float64
	inclination  []float64
	wob          []float64
	rpm          []float64
	torque       []float64
	rop          []float64
	diffPressure []float64
	gammaRay     []float64
}

type inputSpec struct {
	stage string
	name  string
	unit  string
	dst   *[]float64
}

// resolve looks up every input curve and brings it to the unit its stage expects
func (p *Pipeline) resolve(merged *welllog.CurveSet) (*inputs, error) {
	names := p.params.Curves
	in := &inputs{}

	specs := []inputSpec{
		{StageHydrostatic, names.Depth, welllog.UnitFeet, &in.depth},
		{StageMSE, names.WOB, welllog.UnitKiloDecaNewton, &in.wob},
		{StageMSE, names.RPM, welllog.UnitRevPerMinute, &in.rpm},
		{StageMSE, names.Torque, welllog.UnitInchPound, &in.torque},
		{StageMSE, names.ROP, welllog.UnitFeetPerHour, &in.rop},
		{StageConfined, names.DiffPressure, welllog.UnitKiloPascal, &in.diffPressure},
		{StageCCS, names.GammaRay, welllog.UnitAPI, &in.gammaRay},
	}
	if names.Inclination != "" {
		specs = append(specs, inputSpec{StageHydrostatic, names.Inclination, welllog.UnitDegree, &in.inclination})
	}

	for _, s := range specs {
		c, ok := merged.Curve(s.name)
		if !ok {
			return nil, apperrors.NewMissingKeyError(s.stage, s.name)
		}
		if c.Unit != s.unit {
			converted, err := welllog.ConvertCurve(c, s.unit)
			if err != nil {
				return nil, apperrors.NewConfigurationError(s.stage, s.name,
					fmt.Sprintf("unit %q does not match expected %q", c.Unit, s.unit))
			}
			c = converted
		}
		*s.dst = c.Values
	}

	return in, nil
}

// runState collects stage reports from concurrent branches
type runState struct {
	id  string
	p   *Pipeline
	mu  sync.Mutex
	out []StageReport
}

// stage runs fn as the named stage, with a span, metrics and a report
func (r *runState) stage(ctx context.Context, name, curve string, fn func() ([]float64, error)) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := r.p.tel.traceStage(ctx, r.id, name)
	defer span.End()

	start := time.Now()
	values, err := fn()
	duration := time.Since(start)

	r.p.tel.recordStage(ctx, span, name, duration, len(values), err)

	if err != nil {
		r.p.logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
		return nil, err
	}

	r.p.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.String("curve", curve),
		slog.Int("samples", len(values)),
		slog.Duration("duration", duration))

	r.mu.Lock()
	r.out = append(r.out, StageReport{Name: name, Curve: curve, Samples: len(values), Duration: duration})
	r.mu.Unlock()

	return values, nil
}

func (r *runState) reports() []StageReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]StageReport(nil), r.out...)
	sort.Slice(out, func(i, j int) bool { return stageOrder[out[i].Name] < stageOrder[out[j].Name] })
	return out
}

// Run derives every property curve from merged. The input set is not
// modified; the result carries a new set with the derived curves appended.
//
// Stages run in two waves. The first computes {hydrostatic, confined
// pressure} alongside {MSE, UCS}; the second {CCS, Young's modulus}
// alongside {porosity, permeability}. The first failing stage cancels its
// wave and its error is returned. An empty input is not an error: the
// derived curves are empty and an EMPTY_RESULT warning is attached.
func (p *Pipeline) Run(ctx context.Context, merged *welllog.CurveSet) (*Result, error) {
	if merged == nil {
		return nil, apperrors.NewConfigurationError("pipeline", "input", "no curve set given")
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)
	start := time.Now()

	ctx, span := p.tel.traceRun(ctx, runID, merged.Len())
	defer span.End()

	p.logger.InfoContext(ctx, "Property pipeline started",
		slog.Int("samples", merged.Len()))

	res, err := p.run(ctx, runID, merged)

	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	p.tel.recordRun(ctx, span, time.Since(start), warnings, err)

	if err != nil {
		p.logger.ErrorContext(ctx, "Property pipeline failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	p.logger.InfoContext(ctx, "Property pipeline completed",
		slog.Int("curves", len(res.Curves.Names())),
		slog.Int("warnings", warnings),
		slog.Duration("duration", time.Since(start)))

	return res, nil
}

func (p *Pipeline) run(ctx context.Context, runID string, merged *welllog.CurveSet) (*Result, error) {
	in, err := p.resolve(merged)
	if err != nil {
		return nil, err
	}

	r := &runState{id: runID, p: p}
	params := p.params

	var ph, pc, mse, ucs, ccs, yme, phi, perm []float64

	// wave 1
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ph, err = r.stage(gctx, StageHydrostatic, CurveHydrostatic, func() ([]float64, error) {
			return HydrostaticPressure(params.MudWeight, in.depth, in.inclination, params.KickOffThreshold)
		})
		if err != nil {
			return err
		}
		pc, err = r.stage(gctx, StageConfined, CurveConfined, func() ([]float64, error) {
			return ConfinedPressure(ph, in.diffPressure)
		})
		return err
	})
	g.Go(func() error {
		var err error
		mse, err = r.stage(gctx, StageMSE, CurveMSE, func() ([]float64, error) {
			return MechanicalSpecificEnergy(in.wob, params.BitArea, in.rpm, in.torque, in.rop)
		})
		if err != nil {
			return err
		}
		ucs, err = r.stage(gctx, StageUCS, CurveUCS, func() ([]float64, error) {
			return UnconfinedStrength(params.UCSMethod, mse, params.PumpEfficiency)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// wave 2
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ccs, err = r.stage(gctx, StageCCS, CurveCCS, func() ([]float64, error) {
			return ConfinedStrength(ucs, in.gammaRay, in.diffPressure, params.GammaRayCutoff)
		})
		if err != nil {
			return err
		}
		yme, err = r.stage(gctx, StageYoungs, CurveYoungs, func() ([]float64, error) {
			return YoungsModulus(ccs, pc)
		})
		return err
	})
	g.Go(func() error {
		var err error
		phi, err = r.stage(gctx, StagePorosity, CurvePorosity, func() ([]float64, error) {
			return Porosity(params.PorosityMethod, ucs, in.gammaRay, params.GammaRayCutoff)
		})
		if err != nil {
			return err
		}
		perm, err = r.stage(gctx, StagePermeability, CurvePermeability, func() ([]float64, error) {
			return Permeability(params.PermeabilityMethod, phi)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	derived := []welllog.Curve{
		{Name: CurveHydrostatic, Unit: welllog.UnitKiloPascal, Source: StageHydrostatic, Values: ph},
		{Name: CurveConfined, Unit: welllog.UnitKiloPascal, Source: StageConfined, Values: pc},
		{Name: CurveMSE, Unit: welllog.UnitPsi, Source: StageMSE, Values: mse},
		{Name: CurveUCS, Unit: welllog.UnitPsi, Source: StageUCS, Values: ucs},
		{Name: CurveCCS, Unit: welllog.UnitPsi, Source: StageCCS, Values: ccs},
		{Name: CurveYoungs, Unit: welllog.UnitGigaPascal, Source: StageYoungs, Values: yme},
		{Name: CurvePorosity, Unit: welllog.UnitFraction, Source: StagePorosity, Values: phi},
		{Name: CurvePermeability, Unit: welllog.UnitNanoDarcy, Source: StagePermeability, Values: perm},
	}

	curves, err := merged.With(derived...)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:  runID,
		Curves: curves,
		Stages: r.reports(),
	}

	if warn := welllog.CheckEmpty("pipeline", merged); warn != nil {
		p.logger.WarnContext(ctx, "Property pipeline ran on an empty curve set",
			slog.Int("samples", 0))
		res.Warnings = append(res.Warnings, warn)
	}

	return res, nil
}
