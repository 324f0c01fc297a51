package solver

import (
	"context"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersat returns a Solver backed by the in-process gophersat
// pseudo-boolean solver.
func NewGophersat() Solver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(ctx context.Context, model Model) (Result, error) {
	constrs := make([]gophersat.PBConstr, 0, len(model.Constrs))
	for _, c := range model.Constrs {
		if len(c.Lits) == 0 {
			if c.AtLeast > 0 {
				// No literal can ever satisfy a positive lower bound.
				return Result{Outcome: Infeasible}, nil
			}
			continue
		}
		switch {
		case c.AtLeast == c.AtMost:
			// Eq requires explicit weights, one per literal.
			ones := lo.Times(len(c.Lits), func(int) int { return 1 })
			constrs = append(constrs, gophersat.Eq(c.Lits, ones, c.AtLeast)...)
		case c.AtMost < 0 && c.AtLeast == 1:
			constrs = append(constrs, gophersat.PropClause(c.Lits...))
		default:
			if c.AtLeast > 0 {
				constrs = append(constrs, gophersat.AtLeast(c.Lits, c.AtLeast))
			}
			if c.AtMost >= 0 {
				constrs = append(constrs, gophersat.AtMost(c.Lits, c.AtMost))
			}
		}
	}

	pb := gophersat.ParsePBConstrs(constrs)
	engine := gophersat.New(pb)

	// Optimal supports premature interruption through the stop channel,
	// which Solve cannot; the model has no objective, so the first model of
	// cost 0 ends the search.
	stop := make(chan struct{})
	settled := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			close(stop)
		case <-settled:
		}
	}()
	res := engine.Optimal(nil, stop)
	close(settled)

	switch res.Status {
	case gophersat.Sat:
		// res.Model is zero-based: variable v lives at res.Model[v-1].
		assignment := make([]bool, model.Vars+1)
		for v := 1; v <= model.Vars; v++ {
			if res.Model[v-1] {
				assignment[v] = true
			}
		}
		return Result{Outcome: Feasible, Assignment: assignment}, nil
	case gophersat.Unsat:
		return Result{Outcome: Infeasible}, nil
	default:
		return Result{Outcome: Unknown}, nil
	}
}
