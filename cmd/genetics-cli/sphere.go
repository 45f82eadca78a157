package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/bakanatorz/genetics/pkg/core"
)

// sphereIndividual is a float-vector candidate for minimizing the sphere
// function sum(x_i^2). Derivation perturbs every gene with Gaussian noise.
//
// Breeding happens on a single goroutine between generations, so sharing
// one rand source across individuals is safe; evaluation never mutates.
type sphereIndividual struct {
	genes []float64
	step  float64
	rng   *rand.Rand
}

func newSphereSeed(dim int, spread, step float64, rng *rand.Rand) *sphereIndividual {
	genes := make([]float64, dim)
	for i := range genes {
		genes[i] = (rng.Float64()*2 - 1) * spread
	}
	return &sphereIndividual{genes: genes, step: step, rng: rng}
}

func (s *sphereIndividual) Derive() core.Individual {
	child := &sphereIndividual{
		genes: make([]float64, len(s.genes)),
		step:  s.step,
		rng:   s.rng,
	}
	for i, g := range s.genes {
		child.genes[i] = g + s.rng.NormFloat64()*s.step
	}
	return child
}

func (s *sphereIndividual) Summary() string {
	parts := make([]string, len(s.genes))
	for i, g := range s.genes {
		parts[i] = fmt.Sprintf("%.4f", g)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// sphereEvaluator scores individuals by the sphere function; an individual
// is a success once its value drops below target.
type sphereEvaluator struct {
	target float64
}

func (e *sphereEvaluator) Evaluate(_ context.Context, ind core.Individual) (core.Score, error) {
	s, ok := ind.(*sphereIndividual)
	if !ok {
		return core.Score{}, fmt.Errorf("unexpected individual type %T", ind)
	}
	var sum float64
	for _, g := range s.genes {
		sum += g * g
	}
	return core.Score{Success: sum < e.target, Value: sum}, nil
}

func (e *sphereEvaluator) Report(_ context.Context, ind core.Individual, dest string) error {
	score, err := e.Evaluate(context.Background(), ind)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("genes: %s\nvalue: %f\nsuccess: %t\n", ind.Summary(), score.Value, score.Success)
	return os.WriteFile(dest, []byte(content), 0o644)
}
