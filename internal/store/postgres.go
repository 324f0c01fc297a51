package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"classtab/internal/domain"
)

// Schema is the reference DDL for the Postgres store. Start and end times
// are stored as minutes since midnight; the timetable is a weekly template
// and carries no dates.
const Schema = `
CREATE TABLE IF NOT EXISTS timetable_entries (
    section_id     UUID        NOT NULL,
    term_id        UUID        NOT NULL,
    day            SMALLINT    NOT NULL,
    period         SMALLINT    NOT NULL,
    period_type    TEXT        NOT NULL,
    requirement_id UUID,
    subject_name   TEXT        NOT NULL DEFAULT '',
    teacher_id     UUID,
    start_minute   SMALLINT    NOT NULL,
    end_minute     SMALLINT    NOT NULL,
    room           TEXT        NOT NULL DEFAULT '',
    PRIMARY KEY (section_id, term_id, day, period)
);
CREATE INDEX IF NOT EXISTS timetable_entries_term_idx ON timetable_entries (term_id);
`

// Postgres implements TimetableStore on an sqlx database handle
// (lib/pq driver).
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

type entryRow struct {
	SectionID     uuid.UUID  `db:"section_id"`
	TermID        uuid.UUID  `db:"term_id"`
	Day           int        `db:"day"`
	Period        int        `db:"period"`
	PeriodType    string     `db:"period_type"`
	RequirementID *uuid.UUID `db:"requirement_id"`
	SubjectName   string     `db:"subject_name"`
	TeacherID     *uuid.UUID `db:"teacher_id"`
	StartMinute   int        `db:"start_minute"`
	EndMinute     int        `db:"end_minute"`
	Room          string     `db:"room"`
}

func (r entryRow) toDomain() domain.TimetableEntry {
	entry := domain.TimetableEntry{
		SectionID:   r.SectionID,
		TermID:      r.TermID,
		Day:         domain.Day(r.Day),
		Period:      r.Period,
		Type:        domain.PeriodType(r.PeriodType),
		SubjectName: r.SubjectName,
		Start:       domain.ClockTime(r.StartMinute),
		End:         domain.ClockTime(r.EndMinute),
		Room:        r.Room,
	}
	if r.RequirementID != nil {
		entry.RequirementID = *r.RequirementID
	}
	if r.TeacherID != nil {
		entry.Teacher = *r.TeacherID
	}
	return entry
}

func rowFromDomain(e domain.TimetableEntry) entryRow {
	row := entryRow{
		SectionID:   e.SectionID,
		TermID:      e.TermID,
		Day:         int(e.Day),
		Period:      e.Period,
		PeriodType:  string(e.Type),
		SubjectName: e.SubjectName,
		StartMinute: int(e.Start),
		EndMinute:   int(e.End),
		Room:        e.Room,
	}
	if e.RequirementID != uuid.Nil {
		id := e.RequirementID
		row.RequirementID = &id
	}
	if e.Teacher != uuid.Nil {
		id := e.Teacher
		row.TeacherID = &id
	}
	return row
}

const selectColumns = `
SELECT section_id, term_id, day, period, period_type, requirement_id,
       subject_name, teacher_id, start_minute, end_minute, room
FROM timetable_entries
`

func (p *Postgres) Exists(ctx context.Context, sectionID, termID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM timetable_entries WHERE section_id = $1 AND term_id = $2)`

	var exists bool
	if err := p.db.GetContext(ctx, &exists, query, sectionID, termID); err != nil {
		return false, errors.Wrap(err, "store: existence check")
	}
	return exists, nil
}

func (p *Postgres) ListBySection(ctx context.Context, sectionID, termID uuid.UUID) ([]domain.TimetableEntry, error) {
	query := selectColumns + `WHERE section_id = $1 AND term_id = $2 ORDER BY day, period`

	var rows []entryRow
	if err := p.db.SelectContext(ctx, &rows, query, sectionID, termID); err != nil {
		return nil, errors.Wrap(err, "store: list by section")
	}
	return rowsToDomain(rows), nil
}

func (p *Postgres) ListOthers(ctx context.Context, termID, excludeSectionID uuid.UUID) ([]domain.TimetableEntry, error) {
	query := selectColumns + `WHERE term_id = $1 AND section_id <> $2 ORDER BY section_id, day, period`

	var rows []entryRow
	if err := p.db.SelectContext(ctx, &rows, query, termID, excludeSectionID); err != nil {
		return nil, errors.Wrap(err, "store: list others")
	}
	return rowsToDomain(rows), nil
}

func (p *Postgres) Replace(ctx context.Context, sectionID, termID uuid.UUID, entries []domain.TimetableEntry) error {
	const deleteQuery = `DELETE FROM timetable_entries WHERE section_id = $1 AND term_id = $2`
	const insertQuery = `
INSERT INTO timetable_entries
    (section_id, term_id, day, period, period_type, requirement_id,
     subject_name, teacher_id, start_minute, end_minute, room)
VALUES
    (:section_id, :term_id, :day, :period, :period_type, :requirement_id,
     :subject_name, :teacher_id, :start_minute, :end_minute, :room)
`

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "store: begin replace")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err = tx.ExecContext(ctx, deleteQuery, sectionID, termID); err != nil {
		return errors.Wrap(err, "store: clear existing entries")
	}
	for _, entry := range entries {
		if _, err = tx.NamedExecContext(ctx, insertQuery, rowFromDomain(entry)); err != nil {
			return errors.Wrapf(err, "store: insert entry %v period %d", entry.Day, entry.Period)
		}
	}
	return errors.Wrap(tx.Commit(), "store: commit replace")
}

func rowsToDomain(rows []entryRow) []domain.TimetableEntry {
	entries := make([]domain.TimetableEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries
}
