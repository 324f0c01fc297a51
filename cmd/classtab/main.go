// Command classtab generates and audits class-section timetables.
//
//	classtab -roster grade8b.json -term TERM_UUID            generate one section
//	classtab -rosters ./rosters -term TERM_UUID -all         generate every section
//	classtab -roster grade8b.json -term TERM_UUID -validate  audit a committed timetable
//
// With no -dsn the run uses an in-process store, which is only useful for
// dry runs and experiments; point -dsn at Postgres to commit for real.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"classtab/internal/config"
	"classtab/internal/domain"
	"classtab/internal/roster"
	"classtab/internal/schedule"
	"classtab/internal/solver"
	"classtab/internal/store"
)

func main() {
	rosterPtr := flag.String("roster", "", "Path to a roster JSON file (single-section modes)")
	rostersPtr := flag.String("rosters", "", "Directory of roster JSON files, one per class-section (with -all)")
	termPtr := flag.String("term", "", "Academic term/year UUID")
	allPtr := flag.Bool("all", false, "Generate timetables for every roster in -rosters, in file order")
	validatePtr := flag.Bool("validate", false, "Audit the committed timetable instead of generating")
	forcePtr := flag.Bool("force", false, "Overwrite an existing timetable")
	budgetPtr := flag.Duration("budget", 0, "Solver time budget; 0 uses the configured default")
	dsnPtr := flag.String("dsn", "", "Postgres DSN; empty uses an in-memory store")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // stderr flush

	termID, err := uuid.Parse(*termPtr)
	if err != nil {
		logger.Fatal("a valid -term UUID is required", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("cannot load configuration", zap.Error(err))
	}
	grid, err := cfg.Grid()
	if err != nil {
		logger.Fatal("invalid period grid", zap.Error(err))
	}
	budget := cfg.SolverBudget
	if *budgetPtr > 0 {
		budget = *budgetPtr
	}

	var timetables store.TimetableStore = store.NewMemory()
	dsn := *dsnPtr
	if dsn == "" {
		dsn = cfg.DatabaseURL
	}
	if dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logger.Fatal("cannot connect to database", zap.Error(err))
		}
		defer db.Close()
		timetables = store.NewPostgres(db)
	} else {
		logger.Warn("no DSN configured; using in-memory store, nothing will persist")
	}

	generator, err := schedule.NewGenerator(timetables, solver.NewGophersat(), grid, cfg.Rooms(), budget, logger)
	if err != nil {
		logger.Fatal("cannot construct generator", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch {
	case *validatePtr:
		validateTimetable(ctx, logger, generator, *rosterPtr, termID)
	case *allPtr:
		generateAll(ctx, logger, generator, *rostersPtr, termID, *forcePtr)
	default:
		generateSingle(ctx, logger, generator, *rosterPtr, termID, *forcePtr)
	}
}

func generateSingle(ctx context.Context, logger *zap.Logger, generator *schedule.Generator, rosterFile string, termID uuid.UUID, force bool) {
	section, requirements, err := loadRoster(logger, rosterFile)
	if err != nil {
		logger.Fatal("cannot load roster", zap.Error(err))
	}

	count, err := generator.Generate(ctx, section, termID, requirements, force)
	if err != nil {
		logger.Fatal("generation failed", zap.String("section", section.Name), zap.Error(err))
	}
	fmt.Printf("generated %d entries for %s\n", count, section.Name)
}

func generateAll(ctx context.Context, logger *zap.Logger, generator *schedule.Generator, dir string, termID uuid.UUID, force bool) {
	files, err := os.ReadDir(dir)
	if err != nil {
		logger.Fatal("cannot read rosters directory", zap.Error(err))
	}

	curricula := make([]schedule.SectionCurriculum, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		section, requirements, err := loadRoster(logger, filepath.Join(dir, file.Name()))
		if err != nil {
			logger.Fatal("cannot load roster", zap.String("file", file.Name()), zap.Error(err))
		}
		curricula = append(curricula, schedule.SectionCurriculum{Section: section, Requirements: requirements})
	}
	sort.Slice(curricula, func(i, j int) bool { return curricula[i].Section.Name < curricula[j].Section.Name })

	failed := 0
	for _, result := range generator.GenerateAll(ctx, curricula, termID, force) {
		if result.Err != nil {
			failed++
			fmt.Printf("%s: FAILED: %v\n", result.Section.Name, result.Err)
			continue
		}
		fmt.Printf("%s: %d entries\n", result.Section.Name, result.Entries)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func validateTimetable(ctx context.Context, logger *zap.Logger, generator *schedule.Generator, rosterFile string, termID uuid.UUID) {
	section, requirements, err := loadRoster(logger, rosterFile)
	if err != nil {
		logger.Fatal("cannot load roster", zap.Error(err))
	}

	findings, err := generator.Validate(ctx, section.ID, termID, requirements)
	if err != nil {
		logger.Fatal("validation failed", zap.Error(err))
	}
	if len(findings) == 0 {
		fmt.Printf("%s: timetable is valid\n", section.Name)
		return
	}
	for _, finding := range findings {
		fmt.Printf("%s: %s\n", section.Name, finding)
	}
	os.Exit(1)
}

func loadRoster(logger *zap.Logger, file string) (domain.ClassSection, []domain.SubjectRequirement, error) {
	if file == "" {
		logger.Fatal("a -roster file is required")
	}
	return roster.FromJSON(file)
}
