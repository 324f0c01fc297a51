package domain

import "github.com/google/uuid"

// TimetableEntry is one persisted cell of a class-section's weekly
// timetable. RequirementID, SubjectName and Teacher are zero for BREAK,
// ASSEMBLY, GAMES and FREE entries.
type TimetableEntry struct {
	SectionID     uuid.UUID
	TermID        uuid.UUID
	Day           Day
	Period        int
	Type          PeriodType
	RequirementID uuid.UUID
	SubjectName   string
	Teacher       uuid.UUID
	Start         ClockTime
	End           ClockTime
	Room          string
}

// Teaching reports whether the entry occupies a teacher.
func (e TimetableEntry) Teaching() bool {
	return e.Teacher != uuid.Nil
}
