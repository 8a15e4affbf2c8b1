// Package fact stores advisory family facts (recurring daily windows).
package fact

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/family-planner/internal/adapter/postgres"
	"github.com/heartmarshall/family-planner/internal/domain"
)

const table = "family_facts"

var columns = []string{"id", "family_id", "label", "start_minute", "end_minute", "created_at"}

// Repo provides family fact persistence.
type Repo struct {
	db postgres.Querier
}

// New creates a new fact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type factRow struct {
	ID          uuid.UUID `db:"id"`
	FamilyID    string    `db:"family_id"`
	Label       string    `db:"label"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r factRow) toDomain() domain.FamilyFact {
	return domain.FamilyFact{
		ID:          r.ID,
		FamilyID:    domain.FamilyID(r.FamilyID),
		Label:       r.Label,
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
		CreatedAt:   r.CreatedAt,
	}
}

// Upsert stores a fact; a fact with the same label in the family is replaced.
func (r *Repo) Upsert(ctx context.Context, f *domain.FamilyFact) (*domain.FamilyFact, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(f.ID, f.FamilyID.String(), f.Label, f.StartMinute, f.EndMinute, time.Now().UTC()).
		Suffix(`ON CONFLICT (family_id, label) DO UPDATE
			SET start_minute = EXCLUDED.start_minute, end_minute = EXCLUDED.end_minute
			RETURNING id, family_id, label, start_minute, end_minute, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert fact: %w", err)
	}

	var row factRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "family fact", f.FamilyID)
	}

	result := row.toDomain()
	return &result, nil
}

// ListByFamily returns the facts of a family ordered by window start.
func (r *Repo) ListByFamily(ctx context.Context, family domain.FamilyID) ([]domain.FamilyFact, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"family_id": family.String()}).
		OrderBy("start_minute", "label").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list facts: %w", err)
	}

	var rows []factRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "family facts", family)
	}

	facts := make([]domain.FamilyFact, len(rows))
	for i, row := range rows {
		facts[i] = row.toDomain()
	}
	return facts, nil
}
