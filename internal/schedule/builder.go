package schedule

import (
	"classtab/internal/domain"
	"classtab/internal/solver"
)

type builderState struct {
	grid         domain.PeriodGrid
	requirements []domain.SubjectRequirement
	occupancy    Occupancy
	indexer      slotIndexer
}

// buildModel translates the curriculum, grid and availability snapshot into
// a feasibility model over boolean variables assign[day, period,
// requirement]. All constraints are hard; there is no objective.
func buildModel(grid domain.PeriodGrid, requirements []domain.SubjectRequirement, occupancy Occupancy) (solver.Model, slotIndexer) {
	indexer := newSlotIndexer(grid, len(requirements))
	state := builderState{
		grid:         grid,
		requirements: requirements,
		occupancy:    occupancy,
		indexer:      indexer,
	}

	model := solver.Model{Vars: indexer.Vars()}
	for _, constraints := range []func(builderState) []solver.Constr{
		slotConstraints,
		weeklyLoadConstraints,
		occupancyConstraints,
		dailyCapConstraints,
	} {
		for _, constraint := range constraints(state) {
			model.Add(constraint)
		}
	}
	return model, indexer
}

// slotConstraints: a class cannot attend two subjects simultaneously, so at
// most one requirement occupies each assignable slot.
func slotConstraints(state builderState) []solver.Constr {
	constraints := make([]solver.Constr, 0)
	for day := domain.Day(0); int(day) < state.grid.DaysPerWeek; day++ {
		for period := 1; period <= state.grid.PeriodsPerDay; period++ {
			if !state.grid.Assignable(day, period) {
				continue
			}
			lits := make([]int, 0, len(state.requirements))
			for requirement := range state.requirements {
				lits = append(lits, state.indexer.Index(day, period, requirement))
			}
			if len(lits) > 0 {
				constraints = append(constraints, solver.AtMostK(lits, 1))
			}
		}
	}
	return constraints
}

// weeklyLoadConstraints: each requirement occupies exactly its
// periods-per-week slots. An equality, not a minimum: an over-constrained
// curriculum must surface as infeasibility, never as silent truncation.
func weeklyLoadConstraints(state builderState) []solver.Constr {
	constraints := make([]solver.Constr, 0, len(state.requirements))
	for requirement, subject := range state.requirements {
		lits := make([]int, 0, state.grid.AssignableSlots())
		for day := domain.Day(0); int(day) < state.grid.DaysPerWeek; day++ {
			for period := 1; period <= state.grid.PeriodsPerDay; period++ {
				if state.grid.Assignable(day, period) {
					lits = append(lits, state.indexer.Index(day, period, requirement))
				}
			}
		}
		constraints = append(constraints, solver.ExactlyK(lits, subject.PeriodsPerWeek))
	}
	return constraints
}

// occupancyConstraints: slots where the requirement's teacher is already
// committed to another class-section are forced off. This encodes the
// cross-class coupling against the availability snapshot.
func occupancyConstraints(state builderState) []solver.Constr {
	constraints := make([]solver.Constr, 0)
	for requirement, subject := range state.requirements {
		for day := domain.Day(0); int(day) < state.grid.DaysPerWeek; day++ {
			for period := 1; period <= state.grid.PeriodsPerDay; period++ {
				if !state.grid.Assignable(day, period) {
					continue
				}
				if state.occupancy.Occupied(day, period, subject.Teacher) {
					constraints = append(constraints, solver.Forbid(state.indexer.Index(day, period, requirement)))
				}
			}
		}
	}
	return constraints
}

// dailyCapConstraints: no subject clusters beyond its max-periods-per-day.
func dailyCapConstraints(state builderState) []solver.Constr {
	constraints := make([]solver.Constr, 0)
	for requirement, subject := range state.requirements {
		for day := domain.Day(0); int(day) < state.grid.DaysPerWeek; day++ {
			lits := make([]int, 0, state.grid.PeriodsPerDay)
			for period := 1; period <= state.grid.PeriodsPerDay; period++ {
				if state.grid.Assignable(day, period) {
					lits = append(lits, state.indexer.Index(day, period, requirement))
				}
			}
			if len(lits) > 0 {
				constraints = append(constraints, solver.AtMostK(lits, subject.MaxPerDay))
			}
		}
	}
	return constraints
}
