package sat

import (
	"fmt"
	"strings"
)

// Kind is the bound semantics of a Group
type Kind int

const (
	AtMost Kind = iota
	Exactly
)

func (kind Kind) String() string {
	switch kind {
	case AtMost:
		return "at-most"
	case Exactly:
		return "exactly"
	}
	return fmt.Sprintf("kind(%d)", int(kind))
}

// Group is a named cardinality constraint: the number of true variables in Variables must be
// at most (or exactly) Bound
type Group struct {
	Name      string
	Kind      Kind
	Bound     uint64
	Variables []uint64
}

// Solution holds one value per variable, indexed by variable
type Solution []bool

// Problem is a boolean cardinality problem over variables 0..Variables-1
type Problem struct {
	Variables uint64
	Groups    []Group
}

// Count returns how many of the group's variables are true in the solution
func (group Group) Count(solution Solution) uint64 {
	count := uint64(0)
	for _, variable := range group.Variables {
		if variable < uint64(len(solution)) && solution[variable] {
			count++
		}
	}
	return count
}

// Holds reports whether the solution satisfies the group's bound
func (group Group) Holds(solution Solution) bool {
	count := group.Count(solution)
	if group.Kind == Exactly {
		return count == group.Bound
	}
	return count <= group.Bound
}

// Satisfied reports whether the solution is complete and satisfies every group
func (problem Problem) Satisfied(solution Solution) bool {
	if uint64(len(solution)) != problem.Variables {
		return false
	}
	for _, group := range problem.Groups {
		if !group.Holds(solution) {
			return false
		}
	}
	return true
}

// ToOPB renders the problem in the pseudo-boolean OPB text format (variables are 1-based there)
func (problem Problem) ToOPB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", problem.Variables, len(problem.Groups))
	for _, group := range problem.Groups {
		fmt.Fprintf(&builder, "* %s\n", group.Name)
		for _, variable := range group.Variables {
			fmt.Fprintf(&builder, "+1 x%d ", variable+1)
		}
		operator := "<="
		if group.Kind == Exactly {
			operator = "="
		}
		fmt.Fprintf(&builder, "%s %d ;\n", operator, group.Bound)
	}
	return builder.String()
}
