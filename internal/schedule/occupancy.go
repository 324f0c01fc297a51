package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"classtab/internal/domain"
	"classtab/internal/store"
)

// Occupancy is the availability index: the set of (day, period, teacher)
// slots already committed to other class-sections of the same term. It is a
// read-only snapshot; staleness across concurrent generations is prevented
// by the generator's per-term serialization, not here.
type Occupancy map[domain.SlotKey]struct{}

// OccupancyOf indexes the teaching entries of the given committed
// timetables.
func OccupancyOf(entries []domain.TimetableEntry) Occupancy {
	occupancy := make(Occupancy, len(entries))
	for _, entry := range entries {
		if !entry.Teaching() {
			continue
		}
		occupancy[domain.SlotKey{Day: entry.Day, Period: entry.Period, Teacher: entry.Teacher}] = struct{}{}
	}
	return occupancy
}

// BuildOccupancy snapshots the term's committed teacher commitments,
// excluding the class-section whose timetable is being replaced.
func BuildOccupancy(ctx context.Context, timetables store.TimetableStore, termID, excludeSectionID uuid.UUID) (Occupancy, error) {
	others, err := timetables.ListOthers(ctx, termID, excludeSectionID)
	if err != nil {
		return nil, errors.Wrap(err, "schedule: snapshot teacher occupancy")
	}
	return OccupancyOf(others), nil
}

// Occupied reports whether the teacher is already committed in the slot.
func (o Occupancy) Occupied(day domain.Day, period int, teacher uuid.UUID) bool {
	if teacher == uuid.Nil {
		return false
	}
	_, ok := o[domain.SlotKey{Day: day, Period: period, Teacher: teacher}]
	return ok
}
