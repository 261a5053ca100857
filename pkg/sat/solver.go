package sat

import (
	"context"
	"errors"
	"fmt"
)

// Status is the terminal outcome of a search
type Status int

const (
	Satisfiable Status = iota
	Unsatisfiable
	Cancelled
)

func (status Status) String() string {
	switch status {
	case Satisfiable:
		return "satisfiable"
	case Unsatisfiable:
		return "unsatisfiable"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", int(status))
}

// Stats counts the work done by a single Solve call
type Stats struct {
	Decisions    uint64
	Propagations uint64
	Backtracks   uint64
}

// Result of a Solve call. Solution is nil unless Status is Satisfiable
type Result struct {
	Status   Status
	Solution Solution
	Stats    Stats
}

type Solver interface {
	// Solve returns a satisfying solution if one exists. Unsatisfiable and Cancelled are valid
	// outcomes reported through Result with a nil error; a malformed problem yields a *ModelError
	Solve(ctx context.Context, problem Problem) (Result, error)
}

var ErrTooManyVariables = errors.New("too many variables for exhaustive enumeration")

// ModelError reports a group that is self-contradictory or malformed before any search starts
type ModelError struct {
	Group  string
	Reason string
}

func (err *ModelError) Error() string {
	return fmt.Sprintf("malformed constraint group \"%v\": %v", err.Group, err.Reason)
}

// Validate reports the first malformed group of the problem as a *ModelError
func Validate(problem Problem) error {
	for _, group := range problem.Groups {
		seen := make(map[uint64]bool, len(group.Variables))
		for _, variable := range group.Variables {
			if variable >= problem.Variables {
				return &ModelError{Group: group.Name, Reason: fmt.Sprintf("variable %d is out of range (%d variables)", variable, problem.Variables)}
			} else if seen[variable] {
				return &ModelError{Group: group.Name, Reason: fmt.Sprintf("variable %d appears more than once", variable)}
			}
			seen[variable] = true
		}

		if group.Kind == Exactly && group.Bound > uint64(len(group.Variables)) {
			return &ModelError{Group: group.Name, Reason: fmt.Sprintf("requires %d true variables but only %d are available", group.Bound, len(group.Variables))}
		} else if group.Kind != Exactly && group.Kind != AtMost {
			return &ModelError{Group: group.Name, Reason: fmt.Sprintf("unknown bound kind %v", group.Kind)}
		}
	}
	return nil
}
