package schedule

import "classtab/internal/domain"

// slotIndexer maps (day, period, requirement) triples onto 1-based solver
// variables and back. The index space spans the full cross product,
// including break periods; break slots simply never appear in any
// constraint.
type slotIndexer struct {
	periods      int
	days         int
	requirements int
}

func newSlotIndexer(grid domain.PeriodGrid, requirements int) slotIndexer {
	return slotIndexer{
		periods:      grid.PeriodsPerDay,
		days:         grid.DaysPerWeek,
		requirements: requirements,
	}
}

func (indexer slotIndexer) Vars() int {
	return indexer.periods * indexer.days * indexer.requirements
}

func (indexer slotIndexer) Index(day domain.Day, period, requirement int) int {
	return (int(day)*indexer.periods+(period-1))*indexer.requirements + requirement + 1
}

func (indexer slotIndexer) Attributes(index int) (day domain.Day, period, requirement int) {
	index--
	requirement = index % indexer.requirements
	index /= indexer.requirements

	period = index%indexer.periods + 1
	index /= indexer.periods

	day = domain.Day(index)
	return day, period, requirement
}
