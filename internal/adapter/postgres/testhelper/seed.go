package testhelper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// External ids are unique per test process; every package gets its own container.
var externalSeq atomic.Int64

func init() {
	externalSeq.Store(time.Now().UnixMilli() % 1_000_000 * 1000)
}

// NextExternalID returns a fresh external (chat) user id.
func NextExternalID() int64 {
	return externalSeq.Add(1)
}

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an unpaired user with the default digest time.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		ID:         uuid.New(),
		ExternalID: NextExternalID(),
		Name:       "Parent " + uniqueSuffix(),
		DigestTime: domain.DefaultDigestTime,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, external_id, name, digest_time, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.ExternalID, user.Name, user.DigestTime, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedPartners creates two users linked to each other.
func SeedPartners(t *testing.T, pool *pgxpool.Pool) (domain.User, domain.User) {
	t.Helper()
	ctx := context.Background()

	a := SeedUser(t, pool)
	b := SeedUser(t, pool)

	_, err := pool.Exec(ctx,
		`UPDATE users SET partner_external_id = CASE external_id WHEN $1 THEN $2 ELSE $1 END
		 WHERE external_id IN ($1, $2)`,
		a.ExternalID, b.ExternalID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPartners link: %v", err)
	}

	a.PartnerExternalID = &b.ExternalID
	b.PartnerExternalID = &a.ExternalID
	return a, b
}

// SeedEvent inserts a proposed event created by creator and registers the
// creator as participant.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, creator int64, title string, start time.Time, minutes int) domain.Event {
	t.Helper()
	ctx := context.Background()

	e := domain.Event{
		ID:              uuid.New(),
		Title:           title,
		StartAt:         start.UTC(),
		DurationMinutes: minutes,
		CreatorID:       creator,
		Status:          domain.EventStatusProposed,
		Category:        domain.EventCategoryHome,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, title, start_at, duration_minutes, creator_id, status, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.StartAt, e.DurationMinutes, e.CreatorID, string(e.Status), string(e.Category), e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`,
		e.ID, creator,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert participant: %v", err)
	}

	return e
}

// SeedActivity inserts a cached activity for family with the given parsed_at.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, family domain.FamilyID, parsedAt time.Time) domain.Activity {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	a := domain.Activity{
		ID:         uuid.New(),
		Title:      "Workshop " + suffix,
		SourceURL:  "https://events.example.com/" + suffix,
		SourceKind: domain.SourceKindURL,
		ParsedAt:   parsedAt.UTC().Truncate(time.Microsecond),
		FamilyID:   family,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO activities (id, family_id, title, source_url, source_kind, parsed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.FamilyID.String(), a.Title, a.SourceURL, string(a.SourceKind), a.ParsedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity insert: %v", err)
	}

	return a
}
