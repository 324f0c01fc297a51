package schedule

import (
	"github.com/google/uuid"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"classtab/internal/domain"
)

// RoomPlan is the placeholder room-assignment policy: practical subjects
// draw from a lab pool, co-curricular subjects use the activity room,
// everything else uses the section's own room. Rooms are not a solver
// constraint; conflicts the policy cannot avoid are a validator concern.
type RoomPlan struct {
	LabRooms     []string
	ActivityRoom string
	FallbackRoom string
}

type slotRef struct {
	Day    domain.Day
	Period int
}

// assignment maps each chosen slot to the index of the requirement
// occupying it.
type assignment map[slotRef]int

type roomKey struct {
	day   domain.Day
	start domain.ClockTime
	room  string
}

// materialize converts a solved assignment into the complete entry set for
// the class-section: assembly and break blocks, lectures and practicals with
// wall-clock times, and GAMES/FREE fillers for leftover slots.
func materialize(
	grid domain.PeriodGrid,
	section domain.ClassSection,
	termID uuid.UUID,
	requirements []domain.SubjectRequirement,
	chosen assignment,
	rooms RoomPlan,
	others []domain.TimetableEntry,
) []domain.TimetableEntry {
	occupiedRooms := roomOccupancyOf(others)

	entries := make([]domain.TimetableEntry, 0, grid.DaysPerWeek*(grid.PeriodsPerDay+1))
	for day := domain.Day(0); int(day) < grid.DaysPerWeek; day++ {
		starts, ends := dayTimes(grid, day)
		labByPeriod := matchLabs(grid, day, requirements, chosen, starts, rooms.LabRooms, occupiedRooms)

		base := domain.TimetableEntry{SectionID: section.ID, TermID: termID, Day: day}

		if grid.AssemblyMinutes > 0 && grid.AssemblyDays[day] {
			entry := base
			entry.Period = 0
			entry.Type = domain.Assembly
			entry.Start = grid.StartOfDay
			entry.End = grid.StartOfDay.Add(grid.AssemblyMinutes)
			entry.Room = "Assembly Hall"
			entries = append(entries, entry)
		}

		for period := 1; period <= grid.PeriodsPerDay; period++ {
			entry := base
			entry.Period = period
			entry.Start = starts[period]
			entry.End = ends[period]

			if grid.BreakPeriods[period] {
				entry.Type = domain.Break
				entries = append(entries, entry)
				continue
			}

			if requirement, ok := chosen[slotRef{Day: day, Period: period}]; ok {
				subject := requirements[requirement]
				entry.RequirementID = subject.ID
				entry.SubjectName = subject.SubjectName
				entry.Teacher = subject.Teacher
				entry.Type = domain.Lecture
				if subject.Practical {
					entry.Type = domain.Practical
				}
				entry.Room = pickRoom(section, subject, rooms, labByPeriod, period, day)
			} else if day == domain.Saturday {
				entry.Type = domain.Games
				entry.Room = "Playground"
			} else {
				entry.Type = domain.Free
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// dayTimes walks the running clock through one day, yielding each period's
// start and end, indexed by 1-based period number.
func dayTimes(grid domain.PeriodGrid, day domain.Day) (starts, ends []domain.ClockTime) {
	starts = make([]domain.ClockTime, grid.PeriodsPerDay+1)
	ends = make([]domain.ClockTime, grid.PeriodsPerDay+1)

	clock := grid.StartOfDay
	if grid.AssemblyMinutes > 0 && grid.AssemblyDays[day] {
		clock = clock.Add(grid.AssemblyMinutes)
	}
	for period := 1; period <= grid.PeriodsPerDay; period++ {
		duration := grid.PeriodMinutes
		if grid.BreakPeriods[period] {
			duration = grid.BreakMinutes
		}
		starts[period] = clock
		ends[period] = clock.Add(duration)
		clock = ends[period]
	}
	return starts, ends
}

func roomOccupancyOf(entries []domain.TimetableEntry) map[roomKey]bool {
	occupied := make(map[roomKey]bool, len(entries))
	for _, entry := range entries {
		if entry.Room != "" {
			occupied[roomKey{day: entry.Day, start: entry.Start, room: entry.Room}] = true
		}
	}
	return occupied
}

// matchLabs assigns lab rooms to the day's practical periods by maximum
// bipartite matching, preferring labs not already claimed by another
// class-section at the same wall-clock slot.
func matchLabs(
	grid domain.PeriodGrid,
	day domain.Day,
	requirements []domain.SubjectRequirement,
	chosen assignment,
	starts []domain.ClockTime,
	labRooms []string,
	occupiedRooms map[roomKey]bool,
) map[int]string {
	labByPeriod := make(map[int]string)
	if len(labRooms) == 0 {
		return labByPeriod
	}

	practicalPeriods := make([]int, 0)
	for period := 1; period <= grid.PeriodsPerDay; period++ {
		if requirement, ok := chosen[slotRef{Day: day, Period: period}]; ok && requirements[requirement].Practical {
			practicalPeriods = append(practicalPeriods, period)
		}
	}
	if len(practicalPeriods) == 0 {
		return labByPeriod
	}

	neighbors := func(periodAny any, labAny any) (bool, error) {
		period := periodAny.(int)
		lab := labAny.(string)
		return !occupiedRooms[roomKey{day: day, start: starts[period], room: lab}], nil
	}
	periodsAny := lo.Map(practicalPeriods, func(period int, _ int) any { return period })
	labsAny := lo.Map(labRooms, func(lab string, _ int) any { return lab })

	graph, err := bipartitegraph.NewBipartiteGraph(periodsAny, labsAny, neighbors)
	if err == nil {
		for _, edge := range graph.LargestMatching() {
			periodIndex, labIndex := edge.Node1, edge.Node2-len(practicalPeriods)
			labByPeriod[practicalPeriods[periodIndex]] = labRooms[labIndex]
		}
	}

	// Periods the matching could not cover still get a lab; the validator
	// reports any resulting double-booking.
	for i, period := range practicalPeriods {
		if _, ok := labByPeriod[period]; !ok {
			labByPeriod[period] = labRooms[i%len(labRooms)]
		}
	}
	return labByPeriod
}

func pickRoom(
	section domain.ClassSection,
	subject domain.SubjectRequirement,
	rooms RoomPlan,
	labByPeriod map[int]string,
	period int,
	day domain.Day,
) string {
	switch {
	case subject.Practical:
		if lab, ok := labByPeriod[period]; ok {
			return lab
		}
		if len(rooms.LabRooms) > 0 {
			return rooms.LabRooms[(int(day)+period)%len(rooms.LabRooms)]
		}
		return rooms.FallbackRoom
	case subject.CoCurricular:
		return rooms.ActivityRoom
	case section.Room != "":
		return section.Room
	default:
		return rooms.FallbackRoom
	}
}
