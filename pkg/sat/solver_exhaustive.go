package sat

import (
	"context"
	"fmt"
)

// MaxExhaustiveVariables caps the instances the exhaustive solver accepts
const MaxExhaustiveVariables = 24

type exhaustiveSolver struct{}

// NewExhaustiveSolver returns a brute-force solver that enumerates every valuation in increasing
// binary order. It is meant as a reference for small instances
func NewExhaustiveSolver() Solver {
	return &exhaustiveSolver{}
}

func (solver *exhaustiveSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := Validate(problem); err != nil {
		return Result{}, err
	} else if problem.Variables > MaxExhaustiveVariables {
		return Result{}, fmt.Errorf("%w: %d variables exceed the limit of %d", ErrTooManyVariables, problem.Variables, MaxExhaustiveVariables)
	}

	stats := Stats{}
	solution := make(Solution, problem.Variables)
	total := uint64(1) << problem.Variables
	for mask := uint64(0); mask < total; mask++ {
		if mask%4096 == 0 && ctx.Err() != nil {
			return Result{Status: Cancelled, Stats: stats}, nil
		}

		for variable := range solution {
			solution[variable] = mask&(uint64(1)<<variable) != 0
		}
		stats.Decisions++

		if problem.Satisfied(solution) {
			return Result{Status: Satisfiable, Solution: solution, Stats: stats}, nil
		}
	}

	return Result{Status: Unsatisfiable, Stats: stats}, nil
}
