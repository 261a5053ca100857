package model

import (
	"slices"

	"github.com/limaJavier/coursetable/pkg/sat"
)

type compilation struct {
	problem sat.Problem
	state   constraintState
}

// Compile translates the domain model into a cardinality problem. Identical inputs always yield an
// identical problem
func Compile(modelInput ModelInput) (sat.Problem, error) {
	compiled, err := compile(modelInput)
	return compiled.problem, err
}

func compile(modelInput ModelInput) (compilation, error) {
	state := newConstraintState(modelInput)

	// Constraints functions
	constraints := []func(state constraintState) ([]sat.Group, error){
		roomConstraints,
		professorConstraints,
		batchConstraints,
		hourConstraints,
	}

	problem, err := buildProblem(state.indexer.Size(), constraints, state)
	return compilation{problem: problem, state: state}, err
}

func buildProblem(variables uint64, constraints []func(state constraintState) ([]sat.Group, error), state constraintState) (sat.Problem, error) {
	type family struct {
		index  int
		groups []sat.Group
		err    error
	}

	familiesChannel := make(chan family) // Channel to collect constraints

	// Execute constraints functions on different goroutines to improve performance
	for index, constraint := range constraints {
		go func() {
			groups, err := constraint(state)
			familiesChannel <- family{index: index, groups: groups, err: err}
		}()
	}

	// Collect generated constraints, keeping the order of the constraints functions
	collected := make([][]sat.Group, len(constraints))
	errs := make([]error, len(constraints))
	for range constraints {
		family := <-familiesChannel
		collected[family.index], errs[family.index] = family.groups, family.err
	}
	close(familiesChannel)

	for _, err := range errs {
		if err != nil {
			return sat.Problem{}, err
		}
	}

	return sat.Problem{
		Variables: variables,
		Groups:    slices.Concat(collected...),
	}, nil
}

// decode turns a solution into a total assignment over the variable space
func decode(solution sat.Solution, state constraintState) Assignment {
	assignment := make(Assignment, len(solution))
	for index, value := range solution {
		course, slot := state.indexer.Attributes(uint64(index))
		timeSlot := state.slots[slot]
		assignment[Variable{
			Course: state.modelInput.courses[course].Id,
			Day:    timeSlot.Day,
			Hour:   timeSlot.Hour,
		}] = value
	}
	return assignment
}
