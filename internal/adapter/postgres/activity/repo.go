// Package activity implements the per-family activity cache store.
package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/family-planner/internal/adapter/postgres"
	"github.com/heartmarshall/family-planner/internal/domain"
)

const table = "activities"

var (
	columns = []string{
		"id", "family_id", "title", "start_at", "price", "location",
		"description", "photo_ref", "source_url", "source_kind", "parsed_at",
	}
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides activity persistence.
type Repo struct {
	db  postgres.Querier
	loc *time.Location
}

// New creates a new activity repository reading times in loc.
func New(db postgres.Querier, loc *time.Location) *Repo {
	if loc == nil {
		loc = time.UTC
	}
	return &Repo{db: db, loc: loc}
}

type activityRow struct {
	ID          uuid.UUID  `db:"id"`
	FamilyID    string     `db:"family_id"`
	Title       string     `db:"title"`
	StartAt     *time.Time `db:"start_at"`
	Price       *int       `db:"price"`
	Location    *string    `db:"location"`
	Description *string    `db:"description"`
	PhotoRef    *string    `db:"photo_ref"`
	SourceURL   string     `db:"source_url"`
	SourceKind  string     `db:"source_kind"`
	ParsedAt    time.Time  `db:"parsed_at"`
}

func (r *Repo) toDomain(row activityRow) domain.Activity {
	a := domain.Activity{
		ID:          row.ID,
		Title:       row.Title,
		Price:       row.Price,
		Location:    row.Location,
		Description: row.Description,
		PhotoRef:    row.PhotoRef,
		SourceURL:   row.SourceURL,
		SourceKind:  domain.SourceKind(row.SourceKind),
		ParsedAt:    row.ParsedAt.In(r.loc),
		FamilyID:    domain.FamilyID(row.FamilyID),
	}
	if row.StartAt != nil {
		start := row.StartAt.In(r.loc)
		a.StartAt = &start
	}
	return a
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// Create inserts a new activity.
func (r *Repo) Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			a.ID, a.FamilyID.String(), a.Title, utcPtr(a.StartAt), a.Price, a.Location,
			a.Description, a.PhotoRef, a.SourceURL, string(a.SourceKind), a.ParsedAt.UTC(),
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert activity: %w", err)
	}

	var row activityRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity", a.ID)
	}

	result := r.toDomain(row)
	return &result, nil
}

// FindBySource returns the family's activity cached from sourceURL.
func (r *Repo) FindBySource(ctx context.Context, family domain.FamilyID, sourceURL string) (*domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"family_id": family.String(), "source_url": sourceURL}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select activity by source: %w", err)
	}

	var row activityRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity", sourceURL)
	}

	result := r.toDomain(row)
	return &result, nil
}

// Update overwrites the content of an existing activity in place. The id,
// family and source stay as they are.
func (r *Repo) Update(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("title", a.Title).
		Set("start_at", utcPtr(a.StartAt)).
		Set("price", a.Price).
		Set("location", a.Location).
		Set("description", a.Description).
		Set("photo_ref", a.PhotoRef).
		Set("source_kind", string(a.SourceKind)).
		Set("parsed_at", a.ParsedAt.UTC()).
		Where(squirrel.Eq{"id": a.ID, "family_id": a.FamilyID.String()}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update activity: %w", err)
	}

	var row activityRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity", a.ID)
	}

	result := r.toDomain(row)
	return &result, nil
}

// CountByFamily returns the number of cached activities of a family.
func (r *Repo) CountByFamily(ctx context.Context, family domain.FamilyID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"family_id": family.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count activities: %w", err)
	}

	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "activities", family)
	}
	return n, nil
}

// DeleteOldest removes up to n activities of a family with the smallest
// parsed_at, never touching keep. Returns the number of deleted rows.
func (r *Repo) DeleteOldest(ctx context.Context, family domain.FamilyID, n int, keep uuid.UUID) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	// Built with ? placeholders; the outer statement renumbers them.
	oldest := squirrel.
		Select("id").
		From(table).
		Where(squirrel.Eq{"family_id": family.String()}).
		Where(squirrel.NotEq{"id": keep}).
		OrderBy("parsed_at ASC", "id ASC").
		Limit(uint64(n))

	sub, subArgs, err := oldest.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select oldest activities: %w", err)
	}

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Expr("id IN ("+sub+")", subArgs...)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete oldest activities: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "activities", family)
	}
	return tag.RowsAffected(), nil
}

// List returns a family's activities ordered by start (unknown last),
// then most recently parsed first.
func (r *Repo) List(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"family_id": f.FamilyID.String()}).
		OrderBy("start_at ASC NULLS LAST", "parsed_at DESC", "id")
	if f.From != nil {
		query = query.Where(squirrel.GtOrEq{"start_at": f.From.UTC()})
	}
	if f.To != nil {
		query = query.Where(squirrel.Lt{"start_at": f.To.UTC()})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activities: %w", err)
	}

	var rows []activityRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activities", f.FamilyID)
	}

	out := make([]domain.Activity, len(rows))
	for i, row := range rows {
		out[i] = r.toDomain(row)
	}
	return out, nil
}

// Delete removes an activity only if it belongs to family.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID, family domain.FamilyID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "family_id": family.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete activity: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "activity", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteStartedBefore purges activities whose start passed before cutoff.
// Activities without a start are kept.
func (r *Repo) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Lt{"start_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete stale activities: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "activities", "stale")
	}
	return tag.RowsAffected(), nil
}
