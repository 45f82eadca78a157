// Package core defines the central abstractions of the genetics engine:
// individuals, scores, evaluators, and the ordering policies that decide
// which of two scored individuals is fitter.
package core

import "context"

// Score is the outcome of evaluating one Individual. Success is a dominant
// criterion: any successful score outranks any unsuccessful one regardless
// of Value.
type Score struct {
	Success bool
	Value   float64
}

// Individual is a single candidate solution. The engine treats individuals
// as opaque: it only derives new ones from them and asks for summaries.
type Individual interface {
	// Derive returns a new, independently owned individual mutated or
	// recombined from the receiver. The receiver is not modified.
	Derive() Individual

	// Summary returns a human-readable description of the individual.
	Summary() string
}

// Evaluator scores individuals against an objective. An unfit individual is
// an ordinary domain outcome (Score.Success == false), not an error; a
// returned error means the evaluation machinery itself failed and aborts
// the run.
type Evaluator interface {
	// Evaluate scores a single individual. It must not mutate it.
	Evaluate(ctx context.Context, ind Individual) (Score, error)

	// Report writes an external artifact describing the individual to the
	// given destination, typically once per generation for the generation's
	// best performer.
	Report(ctx context.Context, ind Individual, dest string) error
}

// ScoredIndividual pairs an individual with its evaluation outcome. It does
// not own the individual; ownership stays with the population.
type ScoredIndividual struct {
	Individual Individual
	Score      Score
}
