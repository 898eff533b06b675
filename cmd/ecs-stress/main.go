package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/tickecs/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	systemCount := flag.Int("systems", 50, "The number of systems to register.")
	churn := flag.Float64("churn", 0.001, "Share of entities destroyed and replaced every frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log at debug level.")
	flag.Parse()

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}

	err = run(logger, *duration, *entityCount, *systemCount, *churn, *gcPauseMetrics)
	if err != nil {
		logger.Error("stress test failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(logger *zap.Logger, duration time.Duration, entityCount, systemCount int, churnRate float64, gcPauseMetrics bool) error {
	logger.Info("starting ECS stress test")

	registry := ecs.NewComponentRegistry()
	kinds := registerComponents(registry)
	world := ecs.NewWorld(registry, ecs.WithLogger(logger.Named("world")))
	scheduler := ecs.NewScheduler(world)

	systems, err := registerSystems(world, kinds, systemCount)
	if err != nil {
		return fmt.Errorf("register systems: %w", err)
	}
	churn := &churnSystem{kinds: kinds, rate: churnRate}
	if err := world.Register(churn); err != nil {
		return fmt.Errorf("register churn: %w", err)
	}

	logger.Info("populating world", zap.Int("entities", entityCount))
	for range entityCount {
		if _, err := kinds.spawnRandomEntity(world, rand.IntN(5)+1); err != nil {
			return fmt.Errorf("populate: %w", err)
		}
	}

	report := &Report{
		Duration:       duration,
		Entities:       entityCount,
		Components:     registry.Len(),
		Systems:        len(systems) + 1,
		GCPauseMetrics: gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", duration))
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Step(deltaTime)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(scheduler.Frame())
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := world.CollectStats()
	report.FinalEntities = stats.EntityCount
	report.Destroyed = churn.destroyed
	report.Spawned = churn.spawned
	report.SlowestSystems = slowestSystems(scheduler.GetStats().Systems, 5)

	var added, removed int
	for _, sys := range systems {
		added += sys.added
		removed += sys.removed
	}
	logger.Debug("membership callbacks", zap.Int("added", added), zap.Int("removed", removed))

	logger.Info("simulation finished",
		zap.Int64("frames", report.TotalUpdates),
		zap.Int("entities", stats.EntityCount),
		zap.Int("destroyed", churn.destroyed),
	)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
