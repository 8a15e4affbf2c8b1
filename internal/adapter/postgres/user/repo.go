// Package user implements the User repository using PostgreSQL.
package user

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

const table = "users"

var (
	columns   = []string{"id", "external_id", "name", "partner_external_id", "digest_time", "created_at"}
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID                uuid.UUID `db:"id"`
	ExternalID        int64     `db:"external_id"`
	Name              string    `db:"name"`
	PartnerExternalID *int64    `db:"partner_external_id"`
	DigestTime        string    `db:"digest_time"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:                r.ID,
		ExternalID:        r.ExternalID,
		Name:              r.Name,
		PartnerExternalID: r.PartnerExternalID,
		DigestTime:        r.DigestTime,
		CreatedAt:         r.CreatedAt,
	}
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.ExternalID, u.Name, u.PartnerExternalID, u.DigestTime, u.CreatedAt).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", u.ExternalID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByExternalID returns a user by its chat platform id.
func (r *Repo) GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error) {
	return r.getByExternalID(ctx, externalID, "")
}

// GetByExternalIDForUpdate is GetByExternalID holding a row lock until the
// surrounding transaction ends.
func (r *Repo) GetByExternalIDForUpdate(ctx context.Context, externalID int64) (*domain.User, error) {
	return r.getByExternalID(ctx, externalID, "FOR UPDATE")
}

func (r *Repo) getByExternalID(ctx context.Context, externalID int64, suffix string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"external_id": externalID})
	if suffix != "" {
		query = query.Suffix(suffix)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", externalID)
	}

	result := row.toDomain()
	return &result, nil
}

// SetPartner updates the partner of a single user. partnerID 0 clears it.
func (r *Repo) SetPartner(ctx context.Context, externalID, partnerID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var partner *int64
	if partnerID != 0 {
		partner = &partnerID
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("partner_external_id", partner).
		Where(squirrel.Eq{"external_id": externalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update partner: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", externalID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", externalID, domain.ErrNotFound)
	}
	return nil
}

// UpdateDigestTime sets the local time of the daily agenda.
func (r *Repo) UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("digest_time", digestTime).
		Where(squirrel.Eq{"external_id": externalID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update digest time: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", externalID)
	}

	result := row.toDomain()
	return &result, nil
}

// ListByDigestTime returns the users whose digest is due at hhmm.
func (r *Repo) ListByDigestTime(ctx context.Context, hhmm string) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"digest_time": hhmm}).
		OrderBy("external_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select users by digest time: %w", err)
	}

	var rows []userRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "users digest_time", hhmm)
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}
