package schedule

import (
	"fmt"

	"classtab/internal/domain"
)

// diagnose lists provable causes of infeasibility: conditions under which no
// assignment can exist regardless of how the solver searches. An empty
// result does not imply feasibility; it only means the cause is an
// interaction the quick checks cannot name.
func diagnose(grid domain.PeriodGrid, requirements []domain.SubjectRequirement, occupancy Occupancy) []string {
	details := make([]string, 0)

	totalRequired := 0
	for _, requirement := range requirements {
		totalRequired += requirement.PeriodsPerWeek
	}
	if available := grid.AssignableSlots(); totalRequired > available {
		details = append(details, fmt.Sprintf(
			"curriculum requires %d periods per week but the grid has only %d assignable slots",
			totalRequired, available))
	}

	for _, requirement := range requirements {
		if weekCap := requirement.MaxPerDay * grid.DaysPerWeek; requirement.PeriodsPerWeek > weekCap {
			details = append(details, fmt.Sprintf(
				"subject %s requires %d periods per week but its daily cap of %d allows at most %d",
				requirement.SubjectName, requirement.PeriodsPerWeek, requirement.MaxPerDay, weekCap))
		}

		free := 0
		for day := domain.Day(0); int(day) < grid.DaysPerWeek; day++ {
			for period := 1; period <= grid.PeriodsPerDay; period++ {
				if grid.Assignable(day, period) && !occupancy.Occupied(day, period, requirement.Teacher) {
					free++
				}
			}
		}
		if requirement.PeriodsPerWeek > free {
			details = append(details, fmt.Sprintf(
				"subject %s requires %d periods per week but its teacher is free in only %d slots",
				requirement.SubjectName, requirement.PeriodsPerWeek, free))
		}
	}

	return details
}
