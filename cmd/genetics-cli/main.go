// Command genetics-cli runs the generational engine against a demo
// objective: minimizing the sphere function over a vector of floats.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/bakanatorz/genetics/pkg/archive"
	"github.com/bakanatorz/genetics/pkg/config"
	"github.com/bakanatorz/genetics/pkg/core"
	"github.com/bakanatorz/genetics/pkg/engine"
	"github.com/bakanatorz/genetics/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration file")
		dim        = flag.Int("dim", 8, "dimensionality of the sphere problem")
		spread     = flag.Float64("spread", 10.0, "initial gene spread")
		step       = flag.Float64("step", 0.5, "mutation step size")
		target     = flag.Float64("target", 0.01, "success threshold for the sphere value")
		numSeeds   = flag.Int("seeds", 4, "number of seed individuals")
		randSeed   = flag.Int64("rand-seed", 1, "random source seed")
	)
	flag.Parse()

	if err := run(*configPath, *dim, *spread, *step, *target, *numSeeds, *randSeed); err != nil {
		fmt.Fprintf(os.Stderr, "genetics-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, dim int, spread, step, target float64, numSeeds int, randSeed int64) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)

	ordering, err := core.ParseOrdering(cfg.Engine.Ordering)
	if err != nil {
		return err
	}
	termination, err := engine.ParseTermination(cfg.Engine.Termination)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(randSeed))
	seeds := make([]core.Individual, numSeeds)
	for i := range seeds {
		seeds[i] = newSphereSeed(dim, spread, step, rng)
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	runID := uuid.NewString()

	if cfg.Archive.Path != "" {
		arc, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer arc.Close()

		archiveRun, err := arc.StartRun(context.Background(), archive.RunMeta{
			Ordering:       cfg.Engine.Ordering,
			Termination:    cfg.Engine.Termination,
			PopulationSize: cfg.Engine.PopulationSize,
			Cycles:         cfg.Engine.Cycles,
		})
		if err != nil {
			return err
		}
		runID = archiveRun.ID()
		opts = append(opts, engine.WithRecorder(archiveRun))
	}

	eng, err := engine.New(&sphereEvaluator{target: target}, seeds, engine.Config{
		PopulationSize:  cfg.Engine.PopulationSize,
		SuccessorSize:   cfg.Engine.SuccessorSize,
		MinWorkloadSize: cfg.Engine.MinWorkloadSize,
		MaxWorkers:      cfg.Engine.MaxWorkers,
		Cycles:          cfg.Engine.Cycles,
		Ordering:        ordering,
		Termination:     termination,
		ReportDir:       cfg.Engine.ReportDir,
	}, opts...)
	if err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), runID)
	best, err := eng.Simulate(ctx)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Winner: %s success=%t value=%f",
		best.Individual.Summary(), best.Score.Success, best.Score.Value)
	return nil
}

func buildLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	outputs := []logging.Output{
		logging.NewConsoleOutput(false, logging.WithColor(cfg.Color)),
	}
	if cfg.File != "" {
		fileOut, err := logging.NewFileOutput(cfg.File)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, fileOut)
	}
	return logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(cfg.Level),
		Outputs:  outputs,
	}), nil
}
