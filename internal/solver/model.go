// Package solver wraps a pseudo-boolean feasibility solver behind a small
// model/result vocabulary, so that the rest of the scheduler never touches
// solver-specific mechanics.
package solver

import "context"

// Constr bounds the number of true literals among Lits: AtLeast <= sum <=
// AtMost. Literals are 1-based variable indices, negative for negation.
// AtMost < 0 means unbounded above.
type Constr struct {
	Lits    []int
	AtLeast int
	AtMost  int
}

// AtMostK caps the number of true literals.
func AtMostK(lits []int, k int) Constr {
	return Constr{Lits: lits, AtLeast: 0, AtMost: k}
}

// ExactlyK pins the number of true literals.
func ExactlyK(lits []int, k int) Constr {
	return Constr{Lits: lits, AtLeast: k, AtMost: k}
}

// Forbid forces a single variable to false.
func Forbid(v int) Constr {
	return Constr{Lits: []int{-v}, AtLeast: 1, AtMost: -1}
}

// Model is a feasibility-only constraint model: boolean variables 1..Vars
// and cardinality bounds over them. There is no objective.
type Model struct {
	Vars    int
	Constrs []Constr
}

func (m *Model) Add(c Constr) {
	m.Constrs = append(m.Constrs, c)
}

// Outcome classifies a solve.
type Outcome int

const (
	// Unknown means the solver stopped before deciding feasibility.
	Unknown Outcome = iota
	// Feasible means a satisfying assignment was found.
	Feasible
	// Infeasible means no satisfying assignment exists.
	Infeasible
)

func (o Outcome) String() string {
	switch o {
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Result carries the outcome and, when feasible, the truth value of each
// variable (Assignment[v] for variable v; index 0 is unused).
type Result struct {
	Outcome    Outcome
	Assignment []bool
}

// Solver decides feasibility of a Model. Solve blocks until the model is
// decided or ctx expires; an expired ctx yields the Unknown outcome, not an
// error. Errors are reserved for solver malfunctions.
type Solver interface {
	Solve(ctx context.Context, model Model) (Result, error)
}
