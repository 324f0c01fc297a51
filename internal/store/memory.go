package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"classtab/internal/domain"
)

type memoryKey struct {
	section uuid.UUID
	term    uuid.UUID
}

// Memory is a mutex-guarded in-process TimetableStore, used by tests and by
// dry runs that must not touch a database.
type Memory struct {
	mu      sync.RWMutex
	entries map[memoryKey][]domain.TimetableEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[memoryKey][]domain.TimetableEntry)}
}

func (m *Memory) Exists(_ context.Context, sectionID, termID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries[memoryKey{sectionID, termID}]) > 0, nil
}

func (m *Memory) ListBySection(_ context.Context, sectionID, termID uuid.UUID) ([]domain.TimetableEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[memoryKey{sectionID, termID}]
	out := make([]domain.TimetableEntry, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *Memory) ListOthers(_ context.Context, termID, excludeSectionID uuid.UUID) ([]domain.TimetableEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.TimetableEntry, 0)
	for key, stored := range m.entries {
		if key.term != termID || key.section == excludeSectionID {
			continue
		}
		out = append(out, stored...)
	}
	sortEntries(out)
	return out, nil
}

func (m *Memory) Replace(_ context.Context, sectionID, termID uuid.UUID, entries []domain.TimetableEntry) error {
	stored := make([]domain.TimetableEntry, len(entries))
	copy(stored, entries)
	sortEntries(stored)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[memoryKey{sectionID, termID}] = stored
	return nil
}

func sortEntries(entries []domain.TimetableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SectionID != entries[j].SectionID {
			return entries[i].SectionID.String() < entries[j].SectionID.String()
		}
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return entries[i].Period < entries[j].Period
	})
}
