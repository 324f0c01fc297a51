package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"classtab/internal/domain"
	"classtab/internal/solver"
	"classtab/internal/store"
)

// Generator produces timetables for class-sections of a term: one
// read-snapshot, solve and commit per section. Generations touching the
// same term are serialized; interleaving them could let two sections claim
// the same teacher slot against equally stale availability snapshots.
type Generator struct {
	timetables store.TimetableStore
	feasible   solver.Solver
	grid       domain.PeriodGrid
	rooms      RoomPlan
	budget     time.Duration
	logger     *zap.Logger

	mu        sync.Mutex
	termLocks map[uuid.UUID]*sync.Mutex
}

// NewGenerator wires the generator. A zero budget means the solver runs
// without a deadline; a nil logger is replaced with a no-op one.
func NewGenerator(
	timetables store.TimetableStore,
	feasible solver.Solver,
	grid domain.PeriodGrid,
	rooms RoomPlan,
	budget time.Duration,
	logger *zap.Logger,
) (*Generator, error) {
	if err := grid.Validate(); err != nil {
		return nil, errors.Wrap(err, "schedule: invalid period grid")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		timetables: timetables,
		feasible:   feasible,
		grid:       grid,
		rooms:      rooms,
		budget:     budget,
		logger:     logger,
		termLocks:  make(map[uuid.UUID]*sync.Mutex),
	}, nil
}

// Generate builds and commits a complete timetable for the class-section,
// returning the number of entries written. All failures abort before any
// write: a pre-existing timetable survives an infeasible or timed-out run
// untouched.
func (g *Generator) Generate(
	ctx context.Context,
	section domain.ClassSection,
	termID uuid.UUID,
	requirements []domain.SubjectRequirement,
	overwrite bool,
) (int, error) {
	lock := g.termLock(termID)
	lock.Lock()
	defer lock.Unlock()

	log := g.logger.With(
		zap.String("section", section.Name),
		zap.Stringer("sectionId", section.ID),
		zap.Stringer("termId", termID),
	)

	if len(requirements) == 0 {
		return 0, domain.ErrEmptyCurriculum
	}

	exists, err := g.timetables.Exists(ctx, section.ID, termID)
	if err != nil {
		return 0, errors.Wrap(err, "schedule: check existing timetable")
	}
	if exists && !overwrite {
		return 0, domain.ErrAlreadyExists
	}

	others, err := g.timetables.ListOthers(ctx, termID, section.ID)
	if err != nil {
		return 0, errors.Wrap(err, "schedule: snapshot committed timetables")
	}
	occupancy := OccupancyOf(others)

	// Provably impossible curricula are rejected before the solver runs,
	// with the offending requirements named.
	if details := diagnose(g.grid, requirements, occupancy); len(details) > 0 {
		return 0, &domain.InfeasibleError{Details: details}
	}

	model, indexer := buildModel(g.grid, requirements, occupancy)
	log.Info("constraint model built",
		zap.Int("variables", model.Vars),
		zap.Int("constraints", len(model.Constrs)),
		zap.Int("occupiedSlots", len(occupancy)),
	)

	solveCtx := ctx
	if g.budget > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, g.budget)
		defer cancel()
	}
	result, err := g.feasible.Solve(solveCtx, model)
	if err != nil {
		return 0, errors.Wrap(err, "schedule: solve")
	}
	switch result.Outcome {
	case solver.Feasible:
	case solver.Infeasible:
		return 0, &domain.InfeasibleError{Details: diagnose(g.grid, requirements, occupancy)}
	default:
		return 0, domain.ErrSolverTimeout
	}

	chosen := extractAssignment(result, indexer, g.grid, len(requirements))
	entries := materialize(g.grid, section, termID, requirements, chosen, g.rooms, others)

	if err := g.timetables.Replace(ctx, section.ID, termID, entries); err != nil {
		return 0, errors.Wrap(err, "schedule: commit timetable")
	}
	log.Info("timetable committed", zap.Int("entries", len(entries)))
	return len(entries), nil
}

// GenerationResult reports the outcome of one section within a
// generate-all run.
type GenerationResult struct {
	Section domain.ClassSection
	Entries int
	Err     error
}

// SectionCurriculum pairs a class-section with its roster for bulk
// generation.
type SectionCurriculum struct {
	Section      domain.ClassSection
	Requirements []domain.SubjectRequirement
}

// GenerateAll schedules every given class-section in order. The loop is
// deliberately sequential: each section's availability snapshot must
// include the commitments of the sections generated before it. One
// section's failure does not stop the rest.
func (g *Generator) GenerateAll(
	ctx context.Context,
	curricula []SectionCurriculum,
	termID uuid.UUID,
	overwrite bool,
) []GenerationResult {
	results := make([]GenerationResult, 0, len(curricula))
	for _, curriculum := range curricula {
		count, err := g.Generate(ctx, curriculum.Section, termID, curriculum.Requirements, overwrite)
		if err != nil {
			g.logger.Warn("generation failed",
				zap.String("section", curriculum.Section.Name),
				zap.Error(err),
			)
		}
		results = append(results, GenerationResult{Section: curriculum.Section, Entries: count, Err: err})
	}
	return results
}

// Validate audits the committed timetable of a class-section against its
// curriculum and returns the findings.
func (g *Generator) Validate(
	ctx context.Context,
	sectionID, termID uuid.UUID,
	requirements []domain.SubjectRequirement,
) ([]Finding, error) {
	entries, err := g.timetables.ListBySection(ctx, sectionID, termID)
	if err != nil {
		return nil, errors.Wrap(err, "schedule: load timetable for audit")
	}
	return ValidateEntries(entries, requirements), nil
}

func (g *Generator) termLock(termID uuid.UUID) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.termLocks[termID]
	if !ok {
		lock = &sync.Mutex{}
		g.termLocks[termID] = lock
	}
	return lock
}

// extractAssignment reads the chosen requirement for every assignable slot.
// The at-most-one slot constraint guarantees no ties.
func extractAssignment(result solver.Result, indexer slotIndexer, grid domain.PeriodGrid, requirements int) assignment {
	chosen := make(assignment)
	for day := domain.Day(0); int(day) < grid.DaysPerWeek; day++ {
		for period := 1; period <= grid.PeriodsPerDay; period++ {
			if !grid.Assignable(day, period) {
				continue
			}
			for requirement := 0; requirement < requirements; requirement++ {
				if result.Assignment[indexer.Index(day, period, requirement)] {
					chosen[slotRef{Day: day, Period: period}] = requirement
					break
				}
			}
		}
	}
	return chosen
}
