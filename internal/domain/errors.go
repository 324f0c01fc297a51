package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCurriculum means no subject requirements exist for the
	// class-section and term; there is nothing to schedule.
	ErrEmptyCurriculum = errors.New("no subjects configured for this class-section")

	// ErrAlreadyExists means a timetable is already committed and overwrite
	// was not requested. Nothing has been mutated.
	ErrAlreadyExists = errors.New("timetable already exists for this class-section")

	// ErrSolverTimeout means the solver exhausted its budget without
	// deciding feasibility. Nothing has been mutated.
	ErrSolverTimeout = errors.New("solver could not decide within budget")
)

// InfeasibleError reports that no timetable satisfies the curriculum under
// the current grid and teacher occupancy. Details name the requirements most
// likely responsible.
type InfeasibleError struct {
	Details []string
}

func (e *InfeasibleError) Error() string {
	if len(e.Details) == 0 {
		return "no feasible timetable exists"
	}
	return fmt.Sprintf("no feasible timetable exists: %s", strings.Join(e.Details, "; "))
}
