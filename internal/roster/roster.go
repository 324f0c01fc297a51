// Package roster decodes the curriculum roster a generation run consumes:
// which subjects a class-section takes, who teaches them, and their weekly
// and daily period loads.
package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"classtab/internal/domain"
)

const defaultMaxPerDay = 2

var validate = validator.New()

type RawSection struct {
	Id   string `validate:"required,uuid"`
	Name string `validate:"required"`
	Room string
}

type RawRequirement struct {
	Subject        string `validate:"required"`
	Teacher        string `validate:"omitempty,uuid"`
	PeriodsPerWeek int    `mapstructure:"periods_per_week" validate:"gte=0"`
	MaxPerDay      int    `mapstructure:"max_per_day" validate:"gte=0"`
	Practical      bool
	CoCurricular   bool `mapstructure:"co_curricular"`
}

type RawRoster struct {
	Section      RawSection
	Requirements []RawRequirement
}

// FromJSON reads a roster file and returns the class-section it describes
// together with its subject requirements.
func FromJSON(file string) (domain.ClassSection, []domain.SubjectRequirement, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return domain.ClassSection{}, nil, err
	}

	var rosterJson map[string]any
	if err := json.Unmarshal(bytes, &rosterJson); err != nil {
		return domain.ClassSection{}, nil, err
	}

	var raw RawRoster
	if err := mapstructure.Decode(rosterJson, &raw); err != nil {
		return domain.ClassSection{}, nil, err
	}
	return Process(raw)
}

// Process validates a raw roster and lifts it into domain types. An empty
// requirement list is not an error here; the generator decides whether an
// empty curriculum is fatal.
func Process(raw RawRoster) (domain.ClassSection, []domain.SubjectRequirement, error) {
	if err := validate.Struct(raw.Section); err != nil {
		return domain.ClassSection{}, nil, fmt.Errorf("invalid section: %w", err)
	}
	section := domain.ClassSection{
		ID:   uuid.MustParse(raw.Section.Id),
		Name: raw.Section.Name,
		Room: raw.Section.Room,
	}

	requirements := make([]domain.SubjectRequirement, 0, len(raw.Requirements))
	for _, rawRequirement := range raw.Requirements {
		if err := validate.Struct(rawRequirement); err != nil {
			return domain.ClassSection{}, nil, fmt.Errorf("invalid requirement %q: %w", rawRequirement.Subject, err)
		}

		// A subject-teacher pair may appear only once per class-section.
		if _, ok := lo.Find(requirements, func(existing domain.SubjectRequirement) bool {
			return existing.SubjectName == rawRequirement.Subject && existing.Teacher.String() == teacherOrNil(rawRequirement.Teacher).String()
		}); ok {
			return domain.ClassSection{}, nil, fmt.Errorf("duplicate requirement for subject %q", rawRequirement.Subject)
		}

		maxPerDay := rawRequirement.MaxPerDay
		if maxPerDay == 0 {
			maxPerDay = defaultMaxPerDay
		}
		requirements = append(requirements, domain.SubjectRequirement{
			ID:             uuid.New(),
			SubjectName:    rawRequirement.Subject,
			Teacher:        teacherOrNil(rawRequirement.Teacher),
			PeriodsPerWeek: rawRequirement.PeriodsPerWeek,
			MaxPerDay:      maxPerDay,
			Practical:      rawRequirement.Practical,
			CoCurricular:   rawRequirement.CoCurricular,
		})
	}

	return section, requirements, nil
}

func teacherOrNil(id string) uuid.UUID {
	if id == "" {
		return uuid.Nil
	}
	return uuid.MustParse(id)
}
