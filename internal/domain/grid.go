package domain

import "fmt"

// PeriodGrid describes the weekly slot layout shared by every class-section
// of a term. Periods are 1-based; period indices listed in BreakPeriods are
// fixed non-teaching blocks and are never assignable. An AssemblyMinutes of
// zero disables the leading assembly block entirely.
type PeriodGrid struct {
	DaysPerWeek     int
	PeriodsPerDay   int
	BreakPeriods    map[int]bool
	StartOfDay      ClockTime
	PeriodMinutes   int
	BreakMinutes    int
	AssemblyMinutes int
	AssemblyDays    map[Day]bool
}

// DefaultGrid mirrors the school routine the scheduler was written against:
// six days of eight periods, lunch at period 4, 45-minute periods starting
// at 08:00, with a 15-minute Monday-Friday assembly.
func DefaultGrid() PeriodGrid {
	return PeriodGrid{
		DaysPerWeek:     6,
		PeriodsPerDay:   8,
		BreakPeriods:    map[int]bool{4: true},
		StartOfDay:      8 * 60,
		PeriodMinutes:   45,
		BreakMinutes:    45,
		AssemblyMinutes: 15,
		AssemblyDays: map[Day]bool{
			Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		},
	}
}

func (g PeriodGrid) Validate() error {
	if g.DaysPerWeek < 1 || g.DaysPerWeek > 7 {
		return fmt.Errorf("days per week must be within 1..7, got %d", g.DaysPerWeek)
	}
	if g.PeriodsPerDay < 1 {
		return fmt.Errorf("periods per day must be positive, got %d", g.PeriodsPerDay)
	}
	if g.PeriodMinutes < 1 {
		return fmt.Errorf("period duration must be positive, got %d", g.PeriodMinutes)
	}
	for p := range g.BreakPeriods {
		if p < 1 || p > g.PeriodsPerDay {
			return fmt.Errorf("break period %d out of range 1..%d", p, g.PeriodsPerDay)
		}
	}
	for d := range g.AssemblyDays {
		if int(d) < 0 || int(d) >= g.DaysPerWeek {
			return fmt.Errorf("assembly day %v outside the %d-day week", d, g.DaysPerWeek)
		}
	}
	return nil
}

// Assignable reports whether a subject may occupy the slot.
func (g PeriodGrid) Assignable(day Day, period int) bool {
	if int(day) < 0 || int(day) >= g.DaysPerWeek {
		return false
	}
	if period < 1 || period > g.PeriodsPerDay {
		return false
	}
	return !g.BreakPeriods[period]
}

// AssignableSlots counts the slots available for subject assignment over the
// whole week.
func (g PeriodGrid) AssignableSlots() int {
	perDay := g.PeriodsPerDay - len(g.BreakPeriods)
	return g.DaysPerWeek * perDay
}
