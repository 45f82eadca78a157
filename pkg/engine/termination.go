package engine

import (
	"fmt"
	"strings"

	"github.com/bakanatorz/genetics/pkg/core"
)

// Termination decides, once per generation, whether the generational loop
// stops early. It sees the generation's successor set (drained best-first)
// and the 1-based generation index.
type Termination interface {
	Complete(successors []core.ScoredIndividual, generation int) bool
	String() string
}

// GreedyComplete stops as soon as any member of the successor set is
// successful: the first acceptable solution wins.
type GreedyComplete struct{}

func (GreedyComplete) Complete(successors []core.ScoredIndividual, _ int) bool {
	for _, s := range successors {
		if s.Score.Success {
			return true
		}
	}
	return false
}

func (GreedyComplete) String() string { return "greedy" }

// PatientComplete never stops early: the engine runs its full cycle budget
// and returns the best individual found at the end.
type PatientComplete struct{}

func (PatientComplete) Complete([]core.ScoredIndividual, int) bool { return false }

func (PatientComplete) String() string { return "patient" }

// ParseTermination resolves a termination policy name ("greedy" or
// "patient").
func ParseTermination(name string) (Termination, error) {
	switch strings.ToLower(name) {
	case "greedy":
		return GreedyComplete{}, nil
	case "patient":
		return PatientComplete{}, nil
	}
	return nil, fmt.Errorf("unknown termination policy %q", name)
}
