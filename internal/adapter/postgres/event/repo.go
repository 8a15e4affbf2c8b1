// Package event implements the calendar event store using PostgreSQL.
//
// Start instants are written in UTC and converted to the configured local
// zone on every read, so a create/read round trip preserves the instant.
package event

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

const (
	table             = "events"
	participantsTable = "event_participants"
)

var (
	columns = []string{
		"id", "title", "start_at", "duration_minutes", "creator_id",
		"status", "category", "partner_notified", "created_at",
	}
	returning = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides event and participant persistence.
type Repo struct {
	db  postgres.Querier
	loc *time.Location
}

// New creates a new event repository. Reads are converted to loc;
// nil means UTC.
func New(db postgres.Querier, loc *time.Location) *Repo {
	if loc == nil {
		loc = time.UTC
	}
	return &Repo{db: db, loc: loc}
}

type eventRow struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	StartAt         time.Time `db:"start_at"`
	DurationMinutes int       `db:"duration_minutes"`
	CreatorID       int64     `db:"creator_id"`
	Status          string    `db:"status"`
	Category        string    `db:"category"`
	PartnerNotified bool      `db:"partner_notified"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *Repo) toDomain(row eventRow) domain.Event {
	return domain.Event{
		ID:              row.ID,
		Title:           row.Title,
		StartAt:         row.StartAt.In(r.loc),
		DurationMinutes: row.DurationMinutes,
		CreatorID:       row.CreatorID,
		Status:          domain.EventStatus(row.Status),
		Category:        domain.EventCategory(row.Category),
		PartnerNotified: row.PartnerNotified,
		CreatedAt:       row.CreatedAt.In(r.loc),
	}
}

// Create inserts a new event and returns it as stored.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			e.ID, e.Title, e.StartAt.UTC(), e.DurationMinutes, e.CreatorID,
			string(e.Status), string(e.Category), e.PartnerNotified, createdAt.UTC(),
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert event: %w", err)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", e.ID)
	}

	result := r.toDomain(row)
	return &result, nil
}

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select event: %w", err)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	result := r.toDomain(row)
	return &result, nil
}

// Update sets only the fields present in p and returns the updated event.
// An empty p is a read.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.EventUpdateParams) (*domain.Event, error) {
	set := updateMap(p)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(table).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update event: %w", err)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	result := r.toDomain(row)
	return &result, nil
}

func updateMap(p domain.EventUpdateParams) map[string]any {
	set := make(map[string]any)
	if p.Title != nil {
		set["title"] = strings.TrimSpace(*p.Title)
	}
	if p.StartAt != nil {
		set["start_at"] = p.StartAt.UTC()
	}
	if p.DurationMinutes != nil {
		set["duration_minutes"] = *p.DurationMinutes
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.PartnerNotified != nil {
		set["partner_notified"] = *p.PartnerNotified
	}
	return set
}

// Delete removes an event; participants cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkNotified flags the partner notification as delivered. Idempotent.
func (r *Repo) MarkNotified(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("partner_notified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark notified: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByCreatorInRange returns events created by creator starting in [from, to).
func (r *Repo) ListByCreatorInRange(ctx context.Context, creator int64, from, to time.Time) ([]domain.Event, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"creator_id": creator},
		squirrel.GtOrEq{"start_at": from.UTC()},
		squirrel.Lt{"start_at": to.UTC()},
	})
}

// ListByParticipant returns events in which user participates, optionally
// bounded by start time.
func (r *Repo) ListByParticipant(ctx context.Context, user int64, from, to *time.Time) ([]domain.Event, error) {
	where := squirrel.And{
		squirrel.Expr("id IN (SELECT event_id FROM "+participantsTable+" WHERE user_id = ?)", user),
	}
	if from != nil {
		where = append(where, squirrel.GtOrEq{"start_at": from.UTC()})
	}
	if to != nil {
		where = append(where, squirrel.Lt{"start_at": to.UTC()})
	}
	return r.list(ctx, where)
}

// ListOverlapping returns the events of q.UserIDs whose interval intersects
// [q.From, q.To). The exact half-open check is repeated by the caller.
func (r *Repo) ListOverlapping(ctx context.Context, oq domain.EventOverlapQuery) ([]domain.Event, error) {
	if len(oq.UserIDs) == 0 {
		return []domain.Event{}, nil
	}

	owner := squirrel.Or{squirrel.Eq{"creator_id": oq.UserIDs}}
	if oq.IncludeParticipants {
		owner = append(owner, squirrel.Expr(
			"id IN (SELECT event_id FROM "+participantsTable+" WHERE user_id = ANY(?))", oq.UserIDs,
		))
	}

	where := squirrel.And{
		owner,
		squirrel.Lt{"start_at": oq.To.UTC()},
		squirrel.Expr("start_at + make_interval(mins => duration_minutes) > ?", oq.From.UTC()),
	}
	if oq.ExcludeID != uuid.Nil {
		where = append(where, squirrel.NotEq{"id": oq.ExcludeID})
	}
	return r.list(ctx, where)
}

func (r *Repo) list(ctx context.Context, where squirrel.Sqlizer) ([]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_at", "created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "events", "list")
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = r.toDomain(row)
	}
	return events, nil
}

// AddParticipants links users to an event; existing links are kept.
func (r *Repo) AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	insert := postgres.Builder().
		Insert(participantsTable).
		Columns("event_id", "user_id")
	for _, u := range userIDs {
		insert = insert.Values(eventID, u)
	}

	sql, args, err := insert.Suffix("ON CONFLICT (event_id, user_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build insert participants: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "event participants", eventID)
	}
	return nil
}

// Participants returns the participant links of an event.
func (r *Repo) Participants(ctx context.Context, eventID uuid.UUID) ([]domain.EventParticipant, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select("event_id", "user_id", "created_at").
		From(participantsTable).
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at", "user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select participants: %w", err)
	}

	var rows []struct {
		EventID   uuid.UUID `db:"event_id"`
		UserID    int64     `db:"user_id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "event participants", eventID)
	}

	out := make([]domain.EventParticipant, len(rows))
	for i, row := range rows {
		out[i] = domain.EventParticipant{EventID: row.EventID, UserID: row.UserID, CreatedAt: row.CreatedAt.In(r.loc)}
	}
	return out, nil
}
