// Package engine drives the generational loop: seed, evaluate in parallel,
// select the successor set, breed the next population with elitism, and
// repeat until a termination policy fires or the cycle budget runs out.
package engine

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"runtime"

	"github.com/bakanatorz/genetics/pkg/core"
	"github.com/bakanatorz/genetics/pkg/errors"
	"github.com/bakanatorz/genetics/pkg/logging"
	"github.com/bakanatorz/genetics/pkg/selection"
)

// Config holds the construction-time parameters of an Engine.
type Config struct {
	// PopulationSize is the fixed length of every generation's population.
	PopulationSize int
	// SuccessorSize is the size of the breeding pool retained per
	// generation. Must not exceed PopulationSize.
	SuccessorSize int
	// MinWorkloadSize is the minimum number of individuals one worker
	// evaluates; it bounds the worker count from above.
	MinWorkloadSize int
	// MaxWorkers caps the number of evaluation workers per generation.
	MaxWorkers int
	// Cycles is the generation budget.
	Cycles int
	// Ordering decides which of two scores is fitter. Defaults to
	// core.Minimize.
	Ordering core.Ordering
	// Termination decides whether to stop before the cycle budget is
	// exhausted. Defaults to PatientComplete.
	Termination Termination
	// ReportDir is where per-generation report artifacts are written.
	// Empty means the current directory.
	ReportDir string
}

// GenerationRecord is the per-generation summary handed to a Recorder.
type GenerationRecord struct {
	Generation  int
	Mean        float64
	StdDev      float64
	BestSuccess bool
	BestValue   float64
	BestSummary string
}

// Recorder persists per-generation summaries. Recording failures are
// logged and do not abort the run.
type Recorder interface {
	RecordGeneration(ctx context.Context, rec GenerationRecord) error
}

// Engine owns the population across its lifetime and runs the generational
// state machine. An Engine is single-use: Simulate consumes the seeds.
type Engine struct {
	cfg       Config
	evaluator core.Evaluator
	seeds     []core.Individual
	recorder  Recorder
	logger    *logging.Logger
}

// Option configures optional collaborators of an Engine.
type Option func(*Engine)

// WithRecorder attaches a per-generation recorder, e.g. a sqlite archive
// run.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger overrides the global logger for this engine.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New validates the configuration and builds an engine. Ownership of the
// seed individuals transfers to the engine; they are consumed when the
// first generation is spawned.
func New(evaluator core.Evaluator, seeds []core.Individual, cfg Config, opts ...Option) (*Engine, error) {
	if evaluator == nil {
		return nil, errors.New(errors.InvalidConfig, "evaluator is required")
	}
	if len(seeds) == 0 {
		return nil, errors.New(errors.InvalidConfig, "at least one seed individual is required")
	}
	if cfg.PopulationSize < 1 {
		return nil, errors.New(errors.InvalidConfig, "population size must be positive")
	}
	if cfg.SuccessorSize < 1 {
		return nil, errors.New(errors.InvalidConfig, "successor size must be positive")
	}
	if cfg.SuccessorSize > cfg.PopulationSize {
		return nil, errors.WithFields(
			errors.New(errors.InvalidConfig, "successor size must not exceed population size"),
			errors.Fields{"successor_size": cfg.SuccessorSize, "population_size": cfg.PopulationSize})
	}
	if cfg.Cycles < 1 {
		return nil, errors.New(errors.InvalidConfig, "cycle budget must be positive")
	}
	if cfg.MinWorkloadSize < 1 {
		cfg.MinWorkloadSize = 1
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.Ordering == nil {
		cfg.Ordering = core.Minimize
	}
	if cfg.Termination == nil {
		cfg.Termination = PatientComplete{}
	}

	e := &Engine{
		cfg:       cfg,
		evaluator: evaluator,
		seeds:     seeds,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.GetLogger()
	}
	return e, nil
}

// Simulate runs the generational loop and returns the best scored
// individual found. All failures inside the loop are fatal: evaluator
// errors and worker panics propagate out, and no partial result is
// returned alongside an error.
func (e *Engine) Simulate(ctx context.Context) (core.ScoredIndividual, error) {
	population := make([]core.Individual, e.cfg.PopulationSize)
	global := selection.New(e.cfg.Ordering, e.cfg.SuccessorSize)
	successors := make([]core.ScoredIndividual, 0, e.cfg.SuccessorSize)

	var (
		best               core.ScoredIndividual
		prevMean, prevBest float64
	)

	for gen := 1; gen <= e.cfg.Cycles; gen++ {
		genCtx := logging.WithGeneration(ctx, gen)
		if err := errors.CheckContext(genCtx, "simulate"); err != nil {
			return core.ScoredIndividual{}, err
		}
		e.logger.Info(genCtx, "Generation %d/%d", gen, e.cfg.Cycles)

		if gen == 1 {
			// Seed the first generation by cycling through the seeds, then
			// drop them: the seeds are consumed, not part of the run.
			for j := range population {
				population[j] = e.seeds[j%len(e.seeds)].Derive()
			}
			e.seeds = nil
		} else {
			// Fresh snapshot per generation. Slot 0 carries the previous
			// best forward unmutated (elitism); every other slot is bred
			// from the successor set. The old population is dropped
			// wholesale, no aliasing between generations.
			next := make([]core.Individual, e.cfg.PopulationSize)
			next[0] = best.Individual
			for j := 1; j < e.cfg.PopulationSize; j++ {
				next[j] = successors[j%len(successors)].Individual.Derive()
			}
			population = next
		}

		global.Flush()
		popStats, err := e.evaluateGeneration(genCtx, population, global)
		if err != nil {
			return core.ScoredIndividual{}, err
		}

		// Drain best-first: successors[0] is the generation's best under
		// the same ordering the selector used.
		successors = successors[:0]
		for {
			item, ok := global.Pop()
			if !ok {
				break
			}
			successors = append(successors, item)
		}
		best = successors[0]

		mean := popStats.Mean()
		sigma := math.Sqrt(popStats.SumSqDev() / float64(e.cfg.PopulationSize))
		e.reportProgress(genCtx, gen, mean, sigma, best, prevMean, prevBest)

		if e.recorder != nil {
			rec := GenerationRecord{
				Generation:  gen,
				Mean:        mean,
				StdDev:      sigma,
				BestSuccess: best.Score.Success,
				BestValue:   best.Score.Value,
				BestSummary: best.Individual.Summary(),
			}
			if err := e.recorder.RecordGeneration(genCtx, rec); err != nil {
				e.logger.Warn(genCtx, "failed to record generation: %v", err)
			}
		}

		dest := filepath.Join(e.cfg.ReportDir, fmt.Sprintf("%d.log", gen))
		if err := e.evaluator.Report(genCtx, best.Individual, dest); err != nil {
			e.logger.Warn(genCtx, "failed to write generation report to %s: %v", dest, err)
		}

		prevMean, prevBest = mean, best.Score.Value

		if e.cfg.Termination.Complete(successors, gen) {
			e.logger.Info(genCtx, "Termination policy %s fired at generation %d", e.cfg.Termination, gen)
			return best, nil
		}
	}

	return best, nil
}

// reportProgress emits the per-generation metrics. The previous-generation
// deltas are undefined on generation 1 (there is no previous mean or best),
// so they are omitted there rather than computed as divisions by zero.
func (e *Engine) reportProgress(ctx context.Context, gen int, mean, sigma float64, best core.ScoredIndividual, prevMean, prevBest float64) {
	e.logger.Info(ctx, "Population of %d evaluated: mean=%f sigma=%f", e.cfg.PopulationSize, mean, sigma)
	e.logger.Info(ctx, "Best individual: %s", best.Individual.Summary())
	e.logger.Info(ctx, "Best score: success=%t value=%f", best.Score.Success, best.Score.Value)

	if mean != 0 {
		e.logger.Info(ctx, "Best vs mean: %f%%", (mean-best.Score.Value)/mean*100.0)
	}
	if sigma != 0 {
		e.logger.Info(ctx, "Best vs mean: %f sigma", (mean-best.Score.Value)/sigma)
	}

	if gen == 1 {
		e.logger.Info(ctx, "Change from previous generation: n/a")
		return
	}
	if prevMean != 0 && prevBest != 0 {
		e.logger.Info(ctx, "Change from previous generation: mean=%f%% best=%f%%",
			(prevMean-mean)/prevMean*100.0,
			(prevBest-best.Score.Value)/prevBest*100.0)
	}
}
