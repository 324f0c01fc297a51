package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Day is a zero-based weekday index, Monday first. The persisted schema
// stores the upper-case day name, so String yields MONDAY..SUNDAY.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

func (d Day) String() string {
	if d < 0 || int(d) >= len(dayNames) {
		return fmt.Sprintf("DAY(%d)", int(d))
	}
	return dayNames[d]
}

// PeriodType classifies a timetable entry.
type PeriodType string

const (
	Lecture   PeriodType = "LECTURE"
	Practical PeriodType = "PRACTICAL"
	Break     PeriodType = "BREAK"
	Assembly  PeriodType = "ASSEMBLY"
	Games     PeriodType = "GAMES"
	Free      PeriodType = "FREE"
)

// ClockTime is a wall-clock time of day expressed as minutes since midnight.
// Entries carry no date: a timetable is a weekly template.
type ClockTime int

func (t ClockTime) Add(minutes int) ClockTime {
	return t + ClockTime(minutes)
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %v", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime(hour*60 + minute), nil
}

// ClassSection is the cohort a timetable is produced for.
type ClassSection struct {
	ID   uuid.UUID
	Name string
	Room string
}

// SlotKey identifies one teacher commitment in the weekly grid.
type SlotKey struct {
	Day     Day
	Period  int
	Teacher uuid.UUID
}
