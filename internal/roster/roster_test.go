package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRoster(requirements ...RawRequirement) RawRoster {
	return RawRoster{
		Section: RawSection{
			Id:   uuid.New().String(),
			Name: "Grade 8 - Section B",
			Room: "Room 12",
		},
		Requirements: requirements,
	}
}

func TestProcessDefaultsAndIdentity(t *testing.T) {
	//** Arrange
	teacher := uuid.New()
	raw := rawRoster(RawRequirement{
		Subject:        "Mathematics",
		Teacher:        teacher.String(),
		PeriodsPerWeek: 5,
	})

	//** Act
	section, requirements, err := Process(raw)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "Grade 8 - Section B", section.Name)
	require.Len(t, requirements, 1)
	assert.Equal(t, teacher, requirements[0].Teacher)
	assert.Equal(t, 5, requirements[0].PeriodsPerWeek)
	assert.Equal(t, 2, requirements[0].MaxPerDay, "max-per-day must default to 2")
	assert.NotEqual(t, uuid.Nil, requirements[0].ID)
}

func TestProcessAcceptsAnyUUIDVersion(t *testing.T) {
	//** Arrange
	// Deterministic v5 identities, as an SIS export might carry.
	sectionID := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("grade8b.school.example"))
	teacherID := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("staff.school.example"))
	raw := rawRoster(RawRequirement{Subject: "History", Teacher: teacherID.String(), PeriodsPerWeek: 3})
	raw.Section.Id = sectionID.String()

	//** Act
	section, requirements, err := Process(raw)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, sectionID, section.ID)
	assert.Equal(t, teacherID, requirements[0].Teacher)
}

func TestProcessRejectsDuplicateSubjectTeacherPair(t *testing.T) {
	teacher := uuid.New().String()
	raw := rawRoster(
		RawRequirement{Subject: "Physics", Teacher: teacher, PeriodsPerWeek: 3},
		RawRequirement{Subject: "Physics", Teacher: teacher, PeriodsPerWeek: 2},
	)

	_, _, err := Process(raw)
	assert.ErrorContains(t, err, "duplicate requirement")
}

func TestProcessRejectsInvalidInput(t *testing.T) {
	_, _, err := Process(RawRoster{Section: RawSection{Id: "not-a-uuid", Name: "x"}})
	assert.Error(t, err)

	raw := rawRoster(RawRequirement{Subject: "", PeriodsPerWeek: 1})
	_, _, err = Process(raw)
	assert.Error(t, err)

	raw = rawRoster(RawRequirement{Subject: "Art", PeriodsPerWeek: -1})
	_, _, err = Process(raw)
	assert.Error(t, err)
}

func TestProcessAllowsTeacherlessAndEmptyRosters(t *testing.T) {
	raw := rawRoster(RawRequirement{Subject: "Library", PeriodsPerWeek: 1})
	_, requirements, err := Process(raw)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, requirements[0].Teacher)

	// Empty curricula are the generator's call, not the decoder's.
	_, requirements, err = Process(rawRoster())
	require.NoError(t, err)
	assert.Empty(t, requirements)
}

func TestFromJSON(t *testing.T) {
	//** Arrange
	sectionID, teacherID := uuid.New(), uuid.New()
	file := filepath.Join(t.TempDir(), "grade8b.json")
	payload := `{
		"section": {"id": "` + sectionID.String() + `", "name": "Grade 8 - Section B", "room": "Room 12"},
		"requirements": [
			{"subject": "Mathematics", "teacher": "` + teacherID.String() + `", "periods_per_week": 5},
			{"subject": "Chemistry", "teacher": "` + uuid.New().String() + `", "periods_per_week": 3, "practical": true, "max_per_day": 1}
		]
	}`
	require.NoError(t, os.WriteFile(file, []byte(payload), 0o644))

	//** Act
	section, requirements, err := FromJSON(file)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, sectionID, section.ID)
	require.Len(t, requirements, 2)
	assert.Equal(t, teacherID, requirements[0].Teacher)
	assert.True(t, requirements[1].Practical)
	assert.Equal(t, 1, requirements[1].MaxPerDay)

	_, _, err = FromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
