package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classtab/internal/domain"
)

func entryFor(sectionID, termID uuid.UUID, day domain.Day, period int) domain.TimetableEntry {
	return domain.TimetableEntry{
		SectionID:   sectionID,
		TermID:      termID,
		Day:         day,
		Period:      period,
		Type:        domain.Lecture,
		SubjectName: "Mathematics",
		Teacher:     uuid.New(),
	}
}

func TestMemoryReplaceSwapsAtomically(t *testing.T) {
	//** Arrange
	ctx := context.Background()
	memory := NewMemory()
	sectionID, termID := uuid.New(), uuid.New()

	exists, err := memory.Exists(ctx, sectionID, termID)
	require.NoError(t, err)
	assert.False(t, exists)

	//** Act
	first := []domain.TimetableEntry{
		entryFor(sectionID, termID, domain.Tuesday, 2),
		entryFor(sectionID, termID, domain.Monday, 1),
	}
	require.NoError(t, memory.Replace(ctx, sectionID, termID, first))

	second := []domain.TimetableEntry{entryFor(sectionID, termID, domain.Wednesday, 3)}
	require.NoError(t, memory.Replace(ctx, sectionID, termID, second))

	//** Assert
	entries, err := memory.ListBySection(ctx, sectionID, termID)
	require.NoError(t, err)
	require.Len(t, entries, 1, "old entries must not survive a replace")
	assert.Equal(t, domain.Wednesday, entries[0].Day)

	exists, err = memory.Exists(ctx, sectionID, termID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryListBySectionIsOrdered(t *testing.T) {
	ctx := context.Background()
	memory := NewMemory()
	sectionID, termID := uuid.New(), uuid.New()

	require.NoError(t, memory.Replace(ctx, sectionID, termID, []domain.TimetableEntry{
		entryFor(sectionID, termID, domain.Tuesday, 5),
		entryFor(sectionID, termID, domain.Monday, 3),
		entryFor(sectionID, termID, domain.Monday, 1),
	}))

	entries, err := memory.ListBySection(ctx, sectionID, termID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.Monday, entries[0].Day)
	assert.Equal(t, 1, entries[0].Period)
	assert.Equal(t, domain.Tuesday, entries[2].Day)
}

func TestMemoryListOthersExcludesTargetSection(t *testing.T) {
	//** Arrange
	ctx := context.Background()
	memory := NewMemory()
	termID, otherTermID := uuid.New(), uuid.New()
	sectionA, sectionB, sectionC := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, memory.Replace(ctx, sectionA, termID, []domain.TimetableEntry{entryFor(sectionA, termID, domain.Monday, 1)}))
	require.NoError(t, memory.Replace(ctx, sectionB, termID, []domain.TimetableEntry{entryFor(sectionB, termID, domain.Monday, 1)}))
	require.NoError(t, memory.Replace(ctx, sectionC, otherTermID, []domain.TimetableEntry{entryFor(sectionC, otherTermID, domain.Monday, 1)}))

	//** Act
	entries, err := memory.ListOthers(ctx, termID, sectionA)

	//** Assert
	require.NoError(t, err)
	require.Len(t, entries, 1, "must exclude the target section and other terms")
	assert.Equal(t, sectionB, entries[0].SectionID)
}
