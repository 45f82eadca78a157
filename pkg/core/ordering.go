package core

import (
	"fmt"
	"strings"
)

// Ordering ranks two scores. Compare returns a negative value if a ranks
// below b (a is worse), zero if they rank equal, and a positive value if a
// ranks above b (a is better). All orderings are success-dominant: a
// successful score always ranks above an unsuccessful one.
type Ordering interface {
	Compare(a, b Score) int
	String() string
}

// Minimize ranks lower values as better among equally successful scores.
var Minimize Ordering = minimize{}

// Maximize ranks higher values as better among equally successful scores.
var Maximize Ordering = maximize{}

type minimize struct{}

func (minimize) Compare(a, b Score) int {
	if c := compareSuccess(a, b); c != 0 {
		return c
	}
	switch {
	case a.Value < b.Value:
		return 1
	case a.Value > b.Value:
		return -1
	}
	return 0
}

func (minimize) String() string { return "minimize" }

type maximize struct{}

func (maximize) Compare(a, b Score) int {
	if c := compareSuccess(a, b); c != 0 {
		return c
	}
	switch {
	case a.Value > b.Value:
		return 1
	case a.Value < b.Value:
		return -1
	}
	return 0
}

func (maximize) String() string { return "maximize" }

func compareSuccess(a, b Score) int {
	if a.Success == b.Success {
		return 0
	}
	if a.Success {
		return 1
	}
	return -1
}

// ParseOrdering resolves an ordering name ("minimize" or "maximize") to its
// policy.
func ParseOrdering(name string) (Ordering, error) {
	switch strings.ToLower(name) {
	case "minimize", "min":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	}
	return nil, fmt.Errorf("unknown ordering %q", name)
}
