package schedule

import (
	"fmt"

	"github.com/samber/lo"

	"classtab/internal/domain"
)

// Finding is one human-readable problem discovered by a timetable audit.
// Findings are data, not errors: a persisted timetable may legitimately be
// in an invalid state (hand-edited, generated under older rules) and the
// audit must describe it rather than refuse to run.
type Finding string

// ValidateEntries audits a class-section's persisted timetable against its
// curriculum. It accumulates findings instead of failing fast and returns
// them in a stable order: teacher conflicts, room conflicts, weekly-count
// mismatches. An empty result means the timetable is valid.
func ValidateEntries(entries []domain.TimetableEntry, requirements []domain.SubjectRequirement) []Finding {
	findings := make([]Finding, 0)

	// Every entry sharing a (day, start, teacher) key with an earlier one is
	// flagged, naming both sides of the clash.
	type teacherKey struct {
		day     domain.Day
		start   domain.ClockTime
		teacher string
	}
	teacherSeen := make(map[teacherKey]domain.TimetableEntry)
	for _, entry := range entries {
		if !entry.Teaching() {
			continue
		}
		key := teacherKey{day: entry.Day, start: entry.Start, teacher: entry.Teacher.String()}
		if first, ok := teacherSeen[key]; ok {
			findings = append(findings, Finding(fmt.Sprintf(
				"teacher %s has overlapping classes on %s at %s (%s and %s)",
				entry.Teacher, entry.Day, entry.Start, first.SubjectName, entry.SubjectName)))
			continue
		}
		teacherSeen[key] = entry
	}

	type roomSlot struct {
		day   domain.Day
		start domain.ClockTime
		room  string
	}
	roomSeen := make(map[roomSlot]domain.TimetableEntry)
	for _, entry := range entries {
		if entry.Room == "" {
			continue
		}
		key := roomSlot{day: entry.Day, start: entry.Start, room: entry.Room}
		if _, ok := roomSeen[key]; ok {
			findings = append(findings, Finding(fmt.Sprintf(
				"room %s is double-booked on %s at %s",
				entry.Room, entry.Day, entry.Start)))
			continue
		}
		roomSeen[key] = entry
	}

	scheduled := lo.CountValuesBy(entries, func(entry domain.TimetableEntry) string {
		return entry.RequirementID.String()
	})
	for _, requirement := range requirements {
		actual := scheduled[requirement.ID.String()]
		switch {
		case actual < requirement.PeriodsPerWeek:
			findings = append(findings, Finding(fmt.Sprintf(
				"subject %s has %d periods, but requires %d periods per week",
				requirement.SubjectName, actual, requirement.PeriodsPerWeek)))
		case actual > requirement.PeriodsPerWeek:
			findings = append(findings, Finding(fmt.Sprintf(
				"subject %s has %d periods, exceeding the required %d periods per week",
				requirement.SubjectName, actual, requirement.PeriodsPerWeek)))
		}
	}

	return findings
}
