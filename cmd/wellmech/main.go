// Command wellmech merges well-log sources on depth and derives rock
// mechanical properties from the merged log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellmech/internal/config"
	"wellmech/internal/dataprocessing"
	apperrors "wellmech/internal/errors"
	"wellmech/internal/exporter"
	"wellmech/internal/infrastructure"
	"wellmech/internal/rockprops"
	"wellmech/internal/welllog"
)

func main() {
	configPath := flag.String("config", "wellmech.yaml", "path to the YAML configuration file")
	outPath := flag.String("out", "", "output file, overrides output.path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(2)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("wellmech failed",
			slog.String("error", err.Error()),
			slog.Bool("fatal", apperrors.IsFatal(err)))
		stop()
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run loads every source, merges them, runs the property pipeline and
// writes the result.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx = infrastructure.WithWell(infrastructure.EnsureTraceID(ctx), cfg.Well.Name)
	start := time.Now()

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	system, err := infrastructure.NewSystemMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create system metrics: %w", err)
	}

	logger.InfoContext(ctx, "Starting wellmech",
		slog.String("version", config.AppVersion),
		slog.Int("sources", len(cfg.Sources)),
		slog.String("template", cfg.Well.Template))

	well := cfg.Well
	depthKey := cfg.Pipeline.Curves.Depth
	loader := dataprocessing.NewLoader(depthKey, logger)

	var sets []*welllog.CurveSet
	if well.Template != "" {
		tmpl, cs, err := loader.LoadTemplate(ctx, well.Template)
		if err != nil {
			return fmt.Errorf("template %s: %w", well.Template, err)
		}
		if well.MudWeight == 0 {
			well.MudWeight = tmpl.MudWeight
		}
		if well.BitArea == 0 {
			well.BitArea = tmpl.BitArea
		}
		sets = append(sets, cs)
	}
	if len(cfg.Sources) > 0 {
		loaded, err := loader.LoadSources(ctx, cfg.Sources)
		if err != nil {
			return err
		}
		sets = append(sets, loaded...)
	}

	merged, err := welllog.Merge(sets, depthKey)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Sources merged",
		slog.Int("sources", len(sets)),
		slog.Int("samples", merged.Len()),
		slog.Int("curves", len(merged.Names())))

	params, err := pipelineParams(cfg.Pipeline, well)
	if err != nil {
		return err
	}
	pipeline, err := rockprops.NewPipeline(params, logger,
		rockprops.WithTracer(providers.Tracer),
		rockprops.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, merged)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.WarnContext(ctx, "Pipeline warning", slog.String("warning", w.Error()))
	}

	logSummaries(ctx, logger, res.Curves)

	if cfg.Output.Path != "" {
		if err := exporter.New(logger).Export(cfg.Output, res.Curves); err != nil {
			return err
		}
	}

	stats := system.Collect(ctx, start)
	logger.DebugContext(ctx, "Resource usage",
		slog.Int64("heap_bytes", stats.MemoryUsage),
		slog.Int64("allocated_bytes", stats.MemoryAllocated),
		slog.Uint64("gc_cycles", uint64(stats.GCCount)),
		slog.Duration("uptime", stats.ProcessUptime))

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetricsTextfile(cfg.Telemetry.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics textfile", slog.String("error", err.Error()))
		}
	}

	logger.InfoContext(ctx, "wellmech completed",
		slog.String("run_id", res.RunID),
		slog.String("output", cfg.Output.Path))
	return nil
}

// pipelineParams maps the configuration onto pipeline parameters. Well
// constants come from well, which already has template values filled in.
func pipelineParams(pc config.PipelineConfig, well config.WellConfig) (rockprops.Params, error) {
	ucs, err := rockprops.ParseUCSMethod(pc.UCSMethod)
	if err != nil {
		return rockprops.Params{}, err
	}

	return rockprops.Params{
		MudWeight:          well.MudWeight,
		BitArea:            well.BitArea,
		KickOffThreshold:   pc.KickOffThreshold,
		GammaRayCutoff:     pc.GammaRayCutoff,
		PumpEfficiency:     pc.PumpEfficiency,
		UCSMethod:          ucs,
		PorosityMethod:     rockprops.PorosityMethod(pc.PorosityMethod),
		PermeabilityMethod: rockprops.PermeabilityMethod(pc.PermeabilityMethod),
		Curves: rockprops.CurveNames{
			Depth:        pc.Curves.Depth,
			Inclination:  pc.Curves.Inclination,
			WOB:          pc.Curves.WOB,
			RPM:          pc.Curves.RPM,
			Torque:       pc.Curves.Torque,
			ROP:          pc.Curves.ROP,
			DiffPressure: pc.Curves.DiffPressure,
			GammaRay:     pc.Curves.GammaRay,
		},
	}, nil
}

func logSummaries(ctx context.Context, logger *slog.Logger, cs *welllog.CurveSet) {
	for _, s := range welllog.SummarizeSet(cs) {
		logger.DebugContext(ctx, "Curve summary",
			slog.String("curve", s.Name),
			slog.String("unit", s.Unit),
			slog.Int("samples", s.Samples),
			slog.Float64("min", s.Min),
			slog.Float64("max", s.Max),
			slog.Float64("mean", s.Mean),
			slog.Float64("std_dev", s.StdDev))
	}
}
