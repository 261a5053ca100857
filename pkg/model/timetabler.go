package model

import (
	"context"
	"fmt"

	"github.com/limaJavier/coursetable/pkg/sat"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Variable is a decision variable: whether Course occupies the (Day, Hour) slot
type Variable struct {
	Course string
	Day    string
	Hour   uint64
}

// Assignment maps every decision variable to its value. Absent variables are false
type Assignment map[Variable]bool

type Outcome int

const (
	Feasible Outcome = iota
	Infeasible
	Cancelled
)

func (outcome Outcome) String() string {
	switch outcome {
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("outcome(%d)", int(outcome))
}

type Timetable struct {
	RunId      string
	Outcome    Outcome
	Assignment Assignment // Nil unless Outcome is Feasible
	Variables  uint64
	Groups     uint64
	Stats      sat.Stats
}

type Timetabler interface {
	// Build compiles the model and searches for a conflict-free timetable. Infeasible and cancelled runs
	// are reported through Timetable.Outcome; a self-contradictory model yields a *sat.ModelError
	Build(ctx context.Context, modelInput ModelInput) (Timetable, error)

	Verify(assignment Assignment, modelInput ModelInput) []Violation
}

type timetabler struct {
	solver sat.Solver
	probe  bool
	logger *zap.Logger
}

func NewTimetabler(solver sat.Solver, probe bool, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &timetabler{
		solver: solver,
		probe:  probe,
		logger: logger,
	}
}

func (timetabler *timetabler) Build(ctx context.Context, modelInput ModelInput) (Timetable, error) {
	timetable := Timetable{RunId: uuid.NewString()}
	logger := timetabler.logger.With(zap.String("run", timetable.RunId))

	//** Compile constraint set
	compiled, err := compile(modelInput)
	if err != nil {
		return timetable, err
	}
	timetable.Variables, timetable.Groups = compiled.problem.Variables, uint64(len(compiled.problem.Groups))
	if err := sat.Validate(compiled.problem); err != nil {
		return timetable, err
	}
	logger.Info("constraint set compiled",
		zap.Uint64("variables", timetable.Variables),
		zap.Uint64("groups", timetable.Groups),
	)

	//** Rule out overloaded resources before searching
	if timetabler.probe {
		shortage, err := probeCapacity(modelInput)
		if err != nil {
			return timetable, fmt.Errorf("capacity probe failed: %w", err)
		} else if shortage != nil {
			logger.Info("capacity probe proved the instance infeasible", zap.Stringer("shortage", shortage))
			timetable.Outcome = Infeasible
			return timetable, nil
		}
	}

	//** Solve
	result, err := timetabler.solver.Solve(ctx, compiled.problem)
	if err != nil {
		return timetable, err
	}
	timetable.Stats = result.Stats

	switch result.Status {
	case sat.Satisfiable:
		timetable.Outcome = Feasible
		timetable.Assignment = decode(result.Solution, compiled.state)
	case sat.Unsatisfiable:
		timetable.Outcome = Infeasible
	case sat.Cancelled:
		timetable.Outcome = Cancelled
	}

	logger.Info("search finished",
		zap.Stringer("outcome", timetable.Outcome),
		zap.Uint64("decisions", result.Stats.Decisions),
		zap.Uint64("backtracks", result.Stats.Backtracks),
	)
	return timetable, nil
}

func (timetabler *timetabler) Verify(assignment Assignment, modelInput ModelInput) []Violation {
	return Verify(assignment, modelInput)
}
