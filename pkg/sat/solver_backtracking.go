package sat

import (
	"context"

	"go.uber.org/zap"
)

const unassigned int8 = -1

type backtrackingSolver struct {
	logger *zap.Logger
}

// NewBacktrackingSolver returns a complete solver that interleaves depth-first search with
// cardinality propagation. It is deterministic: the same problem always yields the same solution
func NewBacktrackingSolver(logger *zap.Logger) Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backtrackingSolver{logger: logger}
}

func (solver *backtrackingSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := Validate(problem); err != nil {
		return Result{}, err
	}

	state := newSearchState(problem)

	//** Root propagation
	// Every group is revised once so that zero bounds and saturated groups take effect before the first choice
	for group := range problem.Groups {
		state.enqueue(group)
	}
	status := Unsatisfiable
	if state.propagate() {
		status = state.search(ctx)
	}

	result := Result{Status: status, Stats: state.stats}
	if status == Satisfiable {
		result.Solution = state.solution()
	}

	solver.logger.Debug("search finished",
		zap.Stringer("status", status),
		zap.Uint64("variables", problem.Variables),
		zap.Int("groups", len(problem.Groups)),
		zap.Uint64("decisions", state.stats.Decisions),
		zap.Uint64("propagations", state.stats.Propagations),
		zap.Uint64("backtracks", state.stats.Backtracks),
	)
	return result, nil
}

// searchState is owned by exactly one Solve call
type searchState struct {
	problem  Problem
	values   []int8  // unassigned, 0 or 1 per variable
	groupsOf [][]int // Groups each variable participates in
	trues    []uint64
	free     []uint64 // Unassigned members per group
	scores   []int    // Binding groups each variable participates in
	trail    []uint64 // Assigned variables in assignment order
	queue    []int
	queued   []bool
	stats    Stats
}

func newSearchState(problem Problem) *searchState {
	state := &searchState{
		problem:  problem,
		values:   make([]int8, problem.Variables),
		groupsOf: make([][]int, problem.Variables),
		trues:    make([]uint64, len(problem.Groups)),
		free:     make([]uint64, len(problem.Groups)),
		scores:   make([]int, problem.Variables),
		trail:    make([]uint64, 0, problem.Variables),
		queued:   make([]bool, len(problem.Groups)),
	}

	for variable := range state.values {
		state.values[variable] = unassigned
	}
	for index, group := range problem.Groups {
		state.free[index] = uint64(len(group.Variables))
		for _, variable := range group.Variables {
			state.groupsOf[variable] = append(state.groupsOf[variable], index)
		}
		if state.binding(index) {
			state.rescore(index, 1)
		}
	}
	return state
}

func (state *searchState) search(ctx context.Context) Status {
	// Cooperative cancellation point, inspected once per choice point
	if ctx.Err() != nil {
		return Cancelled
	}

	variable, ok := state.pick()
	if !ok {
		if state.complete() {
			return Satisfiable
		}
		return Unsatisfiable
	}

	state.stats.Decisions++
	first := state.preferTrue(variable)
	for _, value := range []bool{first, !first} {
		mark := len(state.trail)
		if state.assign(variable, value) && state.propagate() {
			if status := state.search(ctx); status != Unsatisfiable {
				return status
			}
		}
		state.undo(mark)
		state.stats.Backtracks++
	}
	return Unsatisfiable
}

// pick selects the unassigned variable taking part in the most binding groups; ties go to the lowest index
func (state *searchState) pick() (uint64, bool) {
	best, bestScore, found := uint64(0), -1, false
	for variable, value := range state.values {
		if value != unassigned {
			continue
		}

		if state.scores[variable] > bestScore {
			best, bestScore, found = uint64(variable), state.scores[variable], true
		}
	}
	return best, found
}

// binding reports whether a group can still be violated: an Exactly group short of its bound, or an
// AtMost group with more unassigned members than remaining slack
func (state *searchState) binding(group int) bool {
	bound := state.problem.Groups[group].Bound
	if state.problem.Groups[group].Kind == Exactly {
		return state.trues[group] < bound
	}
	return state.trues[group] <= bound && state.free[group] > bound-state.trues[group]
}

// rescore adds delta to the score of every member of the group
func (state *searchState) rescore(group int, delta int) {
	for _, variable := range state.problem.Groups[group].Variables {
		state.scores[variable] += delta
	}
}

// count applies an assignment (sign 1) or its undoing (sign -1) to a group's counters and keeps the
// member scores in step with the group's binding status
func (state *searchState) count(group int, value bool, sign int) {
	before := state.binding(group)
	if sign > 0 {
		state.free[group]--
		if value {
			state.trues[group]++
		}
	} else {
		state.free[group]++
		if value {
			state.trues[group]--
		}
	}

	if after := state.binding(group); after != before {
		if after {
			state.rescore(group, 1)
		} else {
			state.rescore(group, -1)
		}
	}
}

func (state *searchState) preferTrue(variable uint64) bool {
	for _, group := range state.groupsOf[variable] {
		if state.problem.Groups[group].Kind == Exactly && state.trues[group] < state.problem.Groups[group].Bound {
			return true
		}
	}
	return false
}

// assign returns false if the variable already holds the opposite value
func (state *searchState) assign(variable uint64, value bool) bool {
	encoded := int8(0)
	if value {
		encoded = 1
	}
	if state.values[variable] != unassigned {
		return state.values[variable] == encoded
	}

	state.values[variable] = encoded
	state.trail = append(state.trail, variable)
	for _, group := range state.groupsOf[variable] {
		state.count(group, value, 1)
		state.enqueue(group)
	}
	return true
}

func (state *searchState) undo(mark int) {
	for len(state.trail) > mark {
		variable := state.trail[len(state.trail)-1]
		state.trail = state.trail[:len(state.trail)-1]

		value := state.values[variable] == 1
		state.values[variable] = unassigned
		for _, group := range state.groupsOf[variable] {
			state.count(group, value, -1)
		}
	}
}

func (state *searchState) enqueue(group int) {
	if !state.queued[group] {
		state.queued[group] = true
		state.queue = append(state.queue, group)
	}
}

// propagate revises queued groups until a fixpoint or a conflict
func (state *searchState) propagate() bool {
	for head := 0; head < len(state.queue); head++ {
		group := state.queue[head]
		state.queued[group] = false
		if !state.revise(group) {
			for _, pending := range state.queue[head+1:] {
				state.queued[pending] = false
			}
			state.queue = state.queue[:0]
			return false
		}
	}
	state.queue = state.queue[:0]
	return true
}

func (state *searchState) revise(index int) bool {
	group := state.problem.Groups[index]
	trues, free := state.trues[index], state.free[index]

	var forced bool
	switch {
	case trues > group.Bound:
		return false
	case group.Kind == Exactly && trues+free < group.Bound:
		return false
	case free == 0:
		return true
	case trues == group.Bound:
		forced = false
	case group.Kind == Exactly && trues+free == group.Bound:
		forced = true
	default:
		return true
	}

	for _, variable := range group.Variables {
		if state.values[variable] == unassigned {
			state.stats.Propagations++
			state.assign(variable, forced)
		}
	}
	return true
}

func (state *searchState) complete() bool {
	for index, group := range state.problem.Groups {
		if state.free[index] > 0 || state.trues[index] > group.Bound ||
			(group.Kind == Exactly && state.trues[index] != group.Bound) {
			return false
		}
	}
	return true
}

func (state *searchState) solution() Solution {
	solution := make(Solution, len(state.values))
	for variable, value := range state.values {
		solution[variable] = value == 1
	}
	return solution
}
