// Package config loads scheduler configuration from defaults, environment
// variables (CLASSTAB_ prefix) and an optional .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"classtab/internal/domain"
	"classtab/internal/schedule"
)

type Config struct {
	DatabaseURL  string
	SolverBudget time.Duration

	DaysPerWeek     int
	PeriodsPerDay   int
	BreakPeriods    []int
	StartOfDay      string
	PeriodMinutes   int
	BreakMinutes    int
	AssemblyMinutes int
	AssemblyDays    []int

	LabRooms     []string
	ActivityRoom string
	FallbackRoom string
}

func Load() (Config, error) {
	// Load .env if it exists (ignore if it does not).
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, errors.Wrap(err, "config: load .env")
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("databaseUrl", "")
	v.SetDefault("solverBudget", 30*time.Second)
	v.SetDefault("daysPerWeek", 6)
	v.SetDefault("periodsPerDay", 8)
	v.SetDefault("breakPeriods", []int{4})
	v.SetDefault("startOfDay", "08:00")
	v.SetDefault("periodMinutes", 45)
	v.SetDefault("breakMinutes", 45)
	v.SetDefault("assemblyMinutes", 15)
	v.SetDefault("assemblyDays", []int{0, 1, 2, 3, 4})
	v.SetDefault("labRooms", []string{"Lab 1", "Lab 2", "Lab 3", "Lab 4", "Lab 5"})
	v.SetDefault("activityRoom", "Activity Room")
	v.SetDefault("fallbackRoom", "Room 1")
	v.SetEnvPrefix("CLASSTAB")
	v.AutomaticEnv()

	cfg := Config{
		DatabaseURL:     v.GetString("databaseUrl"),
		SolverBudget:    v.GetDuration("solverBudget"),
		DaysPerWeek:     v.GetInt("daysPerWeek"),
		PeriodsPerDay:   v.GetInt("periodsPerDay"),
		BreakPeriods:    v.GetIntSlice("breakPeriods"),
		StartOfDay:      v.GetString("startOfDay"),
		PeriodMinutes:   v.GetInt("periodMinutes"),
		BreakMinutes:    v.GetInt("breakMinutes"),
		AssemblyMinutes: v.GetInt("assemblyMinutes"),
		AssemblyDays:    v.GetIntSlice("assemblyDays"),
		LabRooms:        v.GetStringSlice("labRooms"),
		ActivityRoom:    v.GetString("activityRoom"),
		FallbackRoom:    v.GetString("fallbackRoom"),
	}
	return cfg, nil
}

// Grid assembles and validates the period grid described by the
// configuration.
func (c Config) Grid() (domain.PeriodGrid, error) {
	start, err := domain.ParseClock(c.StartOfDay)
	if err != nil {
		return domain.PeriodGrid{}, errors.Wrap(err, "config: start of day")
	}

	breaks := make(map[int]bool, len(c.BreakPeriods))
	for _, period := range c.BreakPeriods {
		breaks[period] = true
	}
	assemblyDays := make(map[domain.Day]bool, len(c.AssemblyDays))
	for _, day := range c.AssemblyDays {
		assemblyDays[domain.Day(day)] = true
	}

	grid := domain.PeriodGrid{
		DaysPerWeek:     c.DaysPerWeek,
		PeriodsPerDay:   c.PeriodsPerDay,
		BreakPeriods:    breaks,
		StartOfDay:      start,
		PeriodMinutes:   c.PeriodMinutes,
		BreakMinutes:    c.BreakMinutes,
		AssemblyMinutes: c.AssemblyMinutes,
		AssemblyDays:    assemblyDays,
	}
	return grid, errors.Wrap(grid.Validate(), "config: period grid")
}

// Rooms assembles the room-assignment policy described by the
// configuration.
func (c Config) Rooms() schedule.RoomPlan {
	return schedule.RoomPlan{
		LabRooms:     c.LabRooms,
		ActivityRoom: c.ActivityRoom,
		FallbackRoom: c.FallbackRoom,
	}
}
