package engine

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/bakanatorz/genetics/pkg/core"
	"github.com/bakanatorz/genetics/pkg/errors"
	"github.com/bakanatorz/genetics/pkg/selection"
	"github.com/bakanatorz/genetics/pkg/stats"
)

// numWorkers sizes the worker count so each worker gets at least
// minWorkload individuals, capped at maxWorkers and never below 1.
func numWorkers(populationSize, minWorkload, maxWorkers int) int {
	n := populationSize / minWorkload
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// evaluateGeneration evaluates the whole population in parallel. The
// population is split into contiguous near-equal slices, one worker per
// slice; each worker accumulates a local top-k and local statistics over
// its slice with no shared state, then merges both into the globals under
// a single mutex. The critical section is O(successorSize) per worker,
// independent of slice size.
//
// Merge order across workers is scheduling dependent, but both merge
// operations are commutative and associative, so the merged statistics and
// the retained top-k contents do not depend on it (exact score ties aside).
//
// An evaluator error from any worker aborts the generation and propagates;
// there are no retries.
func (e *Engine) evaluateGeneration(ctx context.Context, population []core.Individual, global *selection.TopK) (stats.Running, error) {
	workers := numWorkers(len(population), e.cfg.MinWorkloadSize, e.cfg.MaxWorkers)

	var (
		mu       sync.Mutex
		popStats stats.Running
	)

	p := pool.New().WithErrors().WithMaxGoroutines(workers)
	for w := 0; w < workers; w++ {
		start := w * len(population) / workers
		stop := (w + 1) * len(population) / workers
		if w == workers-1 {
			// Last slice absorbs the integer-division remainder.
			stop = len(population)
		}
		slice := population[start:stop]

		p.Go(func() error {
			local := selection.New(e.cfg.Ordering, e.cfg.SuccessorSize)
			var localStats stats.Running

			for _, ind := range slice {
				score, err := e.evaluator.Evaluate(ctx, ind)
				if err != nil {
					return errors.Wrap(err, errors.EvaluationFailed, "evaluating individual")
				}
				local.Insert(core.ScoredIndividual{Individual: ind, Score: score})
				localStats.Observe(score.Value)
			}

			mu.Lock()
			defer mu.Unlock()
			popStats.Merge(localStats)
			for {
				item, ok := local.Pop()
				if !ok {
					break
				}
				global.Insert(item)
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return stats.Running{}, err
	}
	return popStats, nil
}
