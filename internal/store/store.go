// Package store persists committed timetables. The scheduler only needs
// three reads and one atomic write; anything richer (tenancy, history,
// display queries) belongs to the surrounding system.
package store

import (
	"context"

	"github.com/google/uuid"

	"classtab/internal/domain"
)

// TimetableStore is the global timetable state shared by every
// class-section of a term.
type TimetableStore interface {
	// Exists reports whether any entries are committed for the
	// class-section and term.
	Exists(ctx context.Context, sectionID, termID uuid.UUID) (bool, error)

	// ListBySection returns the committed entries for one class-section,
	// ordered by day then period.
	ListBySection(ctx context.Context, sectionID, termID uuid.UUID) ([]domain.TimetableEntry, error)

	// ListOthers returns every committed entry of the term except those of
	// the excluded class-section. This feeds the availability snapshot: the
	// excluded section's own entries are about to be replaced.
	ListOthers(ctx context.Context, termID, excludeSectionID uuid.UUID) ([]domain.TimetableEntry, error)

	// Replace atomically swaps the class-section's committed entries for the
	// given set. Readers never observe a partial timetable.
	Replace(ctx context.Context, sectionID, termID uuid.UUID, entries []domain.TimetableEntry) error
}
