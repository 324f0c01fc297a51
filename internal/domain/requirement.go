package domain

import "github.com/google/uuid"

// SubjectRequirement is one curriculum obligation for a class-section in a
// term: a subject, the teacher who delivers it, and how many periods of it
// the week must contain. The scheduler treats requirements as read-only
// input and never mutates them.
type SubjectRequirement struct {
	ID             uuid.UUID
	SubjectName    string
	Teacher        uuid.UUID // uuid.Nil when the subject has no assigned teacher
	PeriodsPerWeek int
	MaxPerDay      int
	Practical      bool
	CoCurricular   bool
}
